package crypto

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gatherctl/gather/internal/config"
	"github.com/gatherctl/gather/internal/model"
)

// Collector runs the sampling loop and threshold classification.
type Collector struct {
	client  *Client
	cfg     *config.Config
	logger  *slog.Logger
	sleepFn func(ctx context.Context, d time.Duration) error
}

// NewCollector creates a Collector using cfg's sampling settings.
func NewCollector(client *Client, cfg *config.Config, logger *slog.Logger) *Collector {
	return &Collector{
		client:  client,
		cfg:     cfg,
		logger:  logger,
		sleepFn: sleepContext,
	}
}

// Collect performs cfg.Samples sampling rounds separated by
// cfg.SampleInterval, fills run.Samples with the deduplicated and sorted
// observations, classifies them into run.Alerts, and stores the last raw
// payload under the "prices" key.
//
// A failed round contributes zero records and a run error; remaining rounds
// still execute. Only context cancellation aborts the loop.
func (c *Collector) Collect(ctx context.Context, run *model.Run) error {
	symbols := c.cfg.Sources.Crypto.Symbols
	labelByID := make(map[string]string, len(symbols))
	for _, sym := range symbols {
		labelByID[sym.ID] = sym.Label
	}

	var samples []model.PriceSample
	for round := 1; round <= c.cfg.Samples; round++ {
		if round > 1 {
			if err := c.sleepFn(ctx, c.cfg.SampleInterval); err != nil {
				return err
			}
		}

		c.logger.Debug("sampling prices", "round", round, "of", c.cfg.Samples)

		prices, raw, err := c.client.FetchPrices(ctx, symbols)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			run.AddError(fmt.Sprintf("round %d: %v", round, err))
			c.logger.Warn("sampling round failed", "round", round, "error", err)
			continue
		}

		now := model.FormatTimestamp(time.Now())
		for _, sym := range symbols {
			price, ok := prices[sym.ID]
			if !ok {
				run.AddError(fmt.Sprintf("round %d: no price for %s", round, sym.ID))
				continue
			}
			samples = append(samples, model.PriceSample{
				Time:     now,
				Symbol:   labelByID[sym.ID],
				USDPrice: price,
			})
		}

		run.AddRawPayload("prices", raw)
	}

	run.Samples = model.DedupeSamples(samples)
	run.Alerts = Classify(run.Samples, symbols)
	return nil
}

// Classify checks each sample against its symbol's configured bounds.
// Samples for symbols without a complete alert band produce no alert.
// Prices strictly above High classify as HIGH_ALERT, strictly below Low as
// LOW_ALERT, and everything on or between the bounds as NORMAL.
func Classify(samples []model.PriceSample, symbols []config.Symbol) []model.Alert {
	boundsByLabel := make(map[string]config.Symbol, len(symbols))
	for _, sym := range symbols {
		if sym.HasBounds() {
			boundsByLabel[sym.Label] = sym
		}
	}

	var alerts []model.Alert
	for _, s := range samples {
		sym, ok := boundsByLabel[s.Symbol]
		if !ok {
			continue
		}

		level := model.AlertNormal
		switch {
		case s.USDPrice > *sym.High:
			level = model.AlertHigh
		case s.USDPrice < *sym.Low:
			level = model.AlertLow
		}

		alerts = append(alerts, model.Alert{
			Time:          s.Time,
			Symbol:        s.Symbol,
			Price:         s.USDPrice,
			Level:         level,
			LevelText:     level.String(),
			ThresholdLow:  *sym.Low,
			ThresholdHigh: *sym.High,
		})
	}

	return alerts
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
