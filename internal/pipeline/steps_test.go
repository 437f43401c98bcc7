package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/gatherctl/gather/internal/model"
)

// fakeCollector fills a run with a fixed number of samples.
type fakeCollector struct {
	samples int
	err     error
}

func (c *fakeCollector) Collect(_ context.Context, run *model.Run) error {
	for i := 0; i < c.samples; i++ {
		run.Samples = append(run.Samples, model.PriceSample{
			Time:     "2026-08-25 10:00:00",
			Symbol:   "BTC",
			USDPrice: 114000,
		})
	}
	return c.err
}

// fakeWriter records whether it was invoked.
type fakeWriter struct {
	name   string
	err    error
	called bool
}

func (w *fakeWriter) Write(_ *model.Run) error {
	w.called = true
	return w.err
}

func (w *fakeWriter) Name() string {
	return w.name
}

// fakeStore records persisted runs.
type fakeStore struct {
	saved int
	err   error
}

func (s *fakeStore) SaveRun(_ context.Context, _ *model.Run) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.saved++
	return int64(s.saved), nil
}

// TestCollectStep verifies collection runs and the finish time is stamped.
func TestCollectStep(t *testing.T) {
	t.Parallel()

	step := NewCollectStep("collect_crypto", &fakeCollector{samples: 2})
	if step.Name() != "collect_crypto" {
		t.Errorf("Name() = %q", step.Name())
	}

	run := model.NewRun(model.RunCrypto)
	if err := step.Do(context.Background(), run); err != nil {
		t.Fatalf("Do() error = %v", err)
	}

	if len(run.Samples) != 2 {
		t.Errorf("len(Samples) = %d, want 2", len(run.Samples))
	}
	if run.FinishedAt.IsZero() {
		t.Error("FinishedAt not stamped")
	}
}

// TestExportStepWritesAll verifies every writer runs for a non-empty run.
func TestExportStepWritesAll(t *testing.T) {
	t.Parallel()

	csvW := &fakeWriter{name: "csv"}
	jsonW := &fakeWriter{name: "json"}
	step := NewExportStep(discardLogger(), csvW, jsonW)

	run := model.NewRun(model.RunCrypto)
	run.Samples = []model.PriceSample{{Time: "2026-08-25 10:00:00", Symbol: "BTC", USDPrice: 1}}

	if err := step.Do(context.Background(), run); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if !csvW.called || !jsonW.called {
		t.Error("not all writers invoked")
	}
}

// TestExportStepEmptyRun verifies empty runs produce no artifacts and fail.
func TestExportStepEmptyRun(t *testing.T) {
	t.Parallel()

	w := &fakeWriter{name: "csv"}
	step := NewExportStep(discardLogger(), w)

	run := model.NewRun(model.RunCrypto)
	if err := step.Do(context.Background(), run); !errors.Is(err, ErrNothingCollected) {
		t.Fatalf("Do() error = %v, want ErrNothingCollected", err)
	}
	if w.called {
		t.Error("writer invoked for empty run")
	}
}

// TestExportStepWriterFailure verifies the failing writer is named.
func TestExportStepWriterFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk full")
	step := NewExportStep(discardLogger(), &fakeWriter{name: "markdown", err: boom})

	run := model.NewRun(model.RunNews)
	run.Articles = []model.Article{{Title: "t"}}

	err := step.Do(context.Background(), run)
	if !errors.Is(err, boom) {
		t.Fatalf("Do() error = %v, want wrapped %v", err, boom)
	}
}

// TestHistoryStep verifies persistence and the empty-run skip.
func TestHistoryStep(t *testing.T) {
	t.Parallel()

	t.Run("persists non-empty run", func(t *testing.T) {
		t.Parallel()

		store := &fakeStore{}
		step := NewHistoryStep(store, discardLogger())

		run := model.NewRun(model.RunCrypto)
		run.Samples = []model.PriceSample{{Time: "2026-08-25 10:00:00", Symbol: "BTC", USDPrice: 1}}

		if err := step.Do(context.Background(), run); err != nil {
			t.Fatalf("Do() error = %v", err)
		}
		if store.saved != 1 {
			t.Errorf("saved = %d, want 1", store.saved)
		}
	})

	t.Run("skips empty run", func(t *testing.T) {
		t.Parallel()

		store := &fakeStore{}
		step := NewHistoryStep(store, discardLogger())

		if err := step.Do(context.Background(), model.NewRun(model.RunCrypto)); err != nil {
			t.Fatalf("Do() error = %v", err)
		}
		if store.saved != 0 {
			t.Errorf("saved = %d, want 0", store.saved)
		}
	})

	t.Run("store failure surfaces", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("locked")
		step := NewHistoryStep(&fakeStore{err: boom}, discardLogger())

		run := model.NewRun(model.RunCrypto)
		run.Samples = []model.PriceSample{{Time: "2026-08-25 10:00:00", Symbol: "BTC", USDPrice: 1}}

		if err := step.Do(context.Background(), run); !errors.Is(err, boom) {
			t.Fatalf("Do() error = %v, want wrapped %v", err, boom)
		}
	})
}
