package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gatherctl/gather/internal/model"
)

// timeNow is swapped in tests.
var timeNow = time.Now

// ErrNothingCollected is returned by the export step when a run produced
// zero records. Empty runs write no artifacts and fail the command.
var ErrNothingCollected = errors.New("nothing collected")

// Collector gathers records into a run. The news, weather, and crypto
// collectors all satisfy this.
type Collector interface {
	Collect(ctx context.Context, run *model.Run) error
}

// RunWriter writes one artifact (or console summary) for a finished run.
// Satisfied by the export package's writers.
type RunWriter interface {
	// Write renders the run. Implementations must not modify it.
	Write(run *model.Run) error

	// Name identifies the writer for logging.
	Name() string
}

// HistoryStore persists finished runs. Satisfied by the database package.
type HistoryStore interface {
	SaveRun(ctx context.Context, run *model.Run) (int64, error)
}

// CollectStep runs a collector and stamps the run's completion time.
type CollectStep struct {
	name      string
	collector Collector
}

// NewCollectStep wraps collector as a pipeline step named name.
func NewCollectStep(name string, collector Collector) *CollectStep {
	return &CollectStep{name: name, collector: collector}
}

// Name returns the step name.
func (s *CollectStep) Name() string {
	return s.name
}

// Do executes the collection and marks the run finished.
func (s *CollectStep) Do(ctx context.Context, run *model.Run) error {
	err := s.collector.Collect(ctx, run)
	run.FinishedAt = timeNow()
	return err
}

// ExportStep writes all configured artifacts for the run.
//
// Design decision: one step fanning out to multiple writers rather than one
// step per writer, so a run either exports everything or reports which
// artifact failed. An empty run exports nothing and fails here, which is
// what makes "collected zero records" a command failure.
type ExportStep struct {
	writers []RunWriter
	logger  *slog.Logger
}

// NewExportStep creates an export step over writers.
func NewExportStep(logger *slog.Logger, writers ...RunWriter) *ExportStep {
	return &ExportStep{writers: writers, logger: logger}
}

// Name returns the step name.
func (s *ExportStep) Name() string {
	return "export"
}

// Do writes every artifact, stopping at the first writer failure.
func (s *ExportStep) Do(ctx context.Context, run *model.Run) error {
	if run.Empty() {
		return ErrNothingCollected
	}

	for _, w := range s.writers {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := w.Write(run); err != nil {
			return fmt.Errorf("%s: %w", w.Name(), err)
		}
		s.logger.Debug("artifact written", "writer", w.Name())
	}

	return nil
}

// HistoryStep persists the run to the local history database.
type HistoryStep struct {
	store  HistoryStore
	logger *slog.Logger
}

// NewHistoryStep creates a history persistence step.
func NewHistoryStep(store HistoryStore, logger *slog.Logger) *HistoryStep {
	return &HistoryStep{store: store, logger: logger}
}

// Name returns the step name.
func (s *HistoryStep) Name() string {
	return "history"
}

// Do saves the run. Empty runs are skipped silently; the export step has
// already failed the pipeline for those.
func (s *HistoryStep) Do(ctx context.Context, run *model.Run) error {
	if run.Empty() {
		return nil
	}

	id, err := s.store.SaveRun(ctx, run)
	if err != nil {
		return fmt.Errorf("failed to persist run: %w", err)
	}

	s.logger.Debug("run persisted", "run_id", id)
	return nil
}
