package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for gather.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gather",
		Short: "Collect news, weather, and cryptocurrency data",
		Long: `gather collects data from public sources and writes CSV, JSON, and
markdown artifacts into an output directory.

Three collectors are available:
  news     - scrape article headlines and summaries from vnexpress.net
  weather  - fetch hourly and daily forecasts for Vietnamese cities
  crypto   - sample cryptocurrency prices and classify threshold alerts

Collection targets (categories, cities, symbols, alert bounds) come from
a .gather sources file; run "gather init" to create one. Each run is also
saved to a local history database so "gather compare" can diff the two
most recent price runs.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose (debug) logging")

	cmd.AddCommand(NewNewsCmd())
	cmd.AddCommand(NewWeatherCmd())
	cmd.AddCommand(NewCryptoCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
