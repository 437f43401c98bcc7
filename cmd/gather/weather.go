package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gatherctl/gather/internal/config"
	"github.com/gatherctl/gather/internal/model"
	"github.com/gatherctl/gather/internal/weather"
)

// NewWeatherCmd creates the weather command.
func NewWeatherCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weather",
		Short: "Fetch hourly and daily forecasts for the configured cities",
		Long: `Fetch forecasts for the configured cities concurrently, one API call
per city, and derive the wind index and compass direction for every record.

Artifacts written to the output directory:
  weather_hourly.csv  - one row per city per hour
  weather_daily.csv   - one row per city per day
  weather_raw.json    - raw API responses keyed by city
  weather_report.md   - per-city summary report`,
		Example: `  gather weather
  gather weather --days 3
  gather weather --concurrency 1 -o ./out`,
		RunE: runWeatherCmd,
	}

	addCollectionFlags(cmd)
	cmd.Flags().Int("days", config.DefaultForecastDays, "Forecast horizon in days (1-16)")
	cmd.Flags().Int("concurrency", config.DefaultCityConcurrency, "Concurrent city fetches")

	return cmd
}

// runWeatherCmd executes the weather collection pipeline.
func runWeatherCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if cfg.ForecastDays, err = cmd.Flags().GetInt("days"); err != nil {
		return fmt.Errorf("failed to get days flag: %w", err)
	}
	if cfg.CityConcurrency, err = cmd.Flags().GetInt("concurrency"); err != nil {
		return fmt.Errorf("failed to get concurrency flag: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := setupLogger(cfg.Verbose)
	ctx, cancel := signalContext(cmd.Context(), logger)
	defer cancel()

	client := weather.NewClient(newFetcher(cfg), cfg.WeatherAPIURL)
	collector := weather.NewCollector(client, cfg, logger)
	return runCollection(ctx, cmd.OutOrStdout(), cfg, logger, model.RunWeather, collector)
}
