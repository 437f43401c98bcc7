package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gatherctl/gather/internal/config"
	"github.com/gatherctl/gather/internal/crypto"
	"github.com/gatherctl/gather/internal/fetch"
	"github.com/gatherctl/gather/internal/model"
)

// NewCryptoCmd creates the crypto command.
func NewCryptoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crypto",
		Short: "Sample cryptocurrency prices and classify threshold alerts",
		Long: `Sample USD prices for the configured symbols in batched rounds and
classify each sample against the configured alert bounds. Prices strictly
above the high bound raise HIGH_ALERT, strictly below the low bound raise
LOW_ALERT; symbols without bounds are tracked but never classified.

Set GATHER_PRICE_API_KEY to authenticate against the price API.

Artifacts written to the output directory:
  crypto_prices.csv           - one row per sample
  crypto_prices_detailed.csv  - samples with collection metadata
  crypto_alerts.csv           - written only when alerts fired
  crypto_prices_raw.json      - samples plus the raw API response
  crypto_report.md            - per-symbol statistics report`,
		Example: `  gather crypto
  gather crypto --samples 5 --interval 30s
  gather crypto --samples 1 --no-db`,
		RunE: runCryptoCmd,
	}

	addCollectionFlags(cmd)
	cmd.Flags().Int("samples", config.DefaultSamples, "Number of sampling rounds")
	cmd.Flags().Duration("interval", config.DefaultSampleInterval, "Delay between sampling rounds")

	return cmd
}

// runCryptoCmd executes the crypto collection pipeline.
func runCryptoCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if cfg.Samples, err = cmd.Flags().GetInt("samples"); err != nil {
		return fmt.Errorf("failed to get samples flag: %w", err)
	}
	if cfg.SampleInterval, err = cmd.Flags().GetDuration("interval"); err != nil {
		return fmt.Errorf("failed to get interval flag: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := setupLogger(cfg.Verbose)
	ctx, cancel := signalContext(cmd.Context(), logger)
	defer cancel()

	var extra []fetch.Option
	if cfg.PriceAPIKey != "" {
		extra = append(extra, fetch.WithHeader("x-cg-demo-api-key", cfg.PriceAPIKey))
	}

	client := crypto.NewClient(newFetcher(cfg, extra...), cfg.PriceAPIURL)
	collector := crypto.NewCollector(client, cfg, logger)
	return runCollection(ctx, cmd.OutOrStdout(), cfg, logger, model.RunCrypto, collector)
}
