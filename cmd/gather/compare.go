package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gatherctl/gather/internal/config"
	"github.com/gatherctl/gather/internal/database"
	"github.com/gatherctl/gather/internal/model"
)

// NewCompareCmd creates the compare command.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the two most recent crypto price runs",
		Long: `Compare the two most recent crypto runs from the history database and
print per-symbol mean price changes. At least two persisted crypto runs
are required; run "gather crypto" (without --no-db) to record them.`,
		Example: `  gather compare
  gather compare --list`,
		RunE: runCompareCmd,
	}

	cmd.Flags().String("db-dir", "", "History database directory (default: XDG data directory)")
	cmd.Flags().Bool("list", false, "List recent crypto runs instead of comparing")

	return cmd
}

// runCompareCmd loads the two newest crypto runs and prints the diff.
func runCompareCmd(cmd *cobra.Command, _ []string) error {
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return fmt.Errorf("failed to get db-dir flag: %w", err)
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}
	list, err := cmd.Flags().GetBool("list")
	if err != nil {
		return fmt.Errorf("failed to get list flag: %w", err)
	}

	// Comparing must never create an empty database.
	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false

	hdb, err := database.Open(dbDir, opts)
	if err != nil {
		return err
	}
	defer hdb.Close() //nolint:errcheck

	ctx := cmd.Context()

	if list {
		stored, err := hdb.LatestRuns(ctx, model.RunCrypto, 10)
		if err != nil {
			return err
		}
		writeRunList(cmd.OutOrStdout(), stored)
		return nil
	}

	stored, err := hdb.LatestRuns(ctx, model.RunCrypto, 2)
	if err != nil {
		return err
	}
	if len(stored) < 2 {
		return fmt.Errorf("%w: found %d crypto run(s), need 2", database.ErrNotEnoughRuns, len(stored))
	}

	// LatestRuns returns newest first.
	writeComparison(cmd.OutOrStdout(), stored[1], stored[0])
	return nil
}

// writeRunList prints a one-line summary per stored run, newest first.
func writeRunList(w io.Writer, stored []database.StoredRun) {
	if len(stored) == 0 {
		fmt.Fprintln(w, "No crypto runs in history.")
		return
	}

	fmt.Fprintf(w, "%-6s %-21s %8s %8s\n", "ID", "Collected", "Samples", "Alerts")
	for _, sr := range stored {
		fmt.Fprintf(w, "%-6d %-21s %8d %8d\n",
			sr.ID, sr.Run.CollectedAt, len(sr.Run.Samples), len(sr.Run.Alerts))
	}
}

// writeComparison prints per-symbol mean price changes between two runs.
// Symbols present in only one run are shown with a dash for the missing
// side and no change.
func writeComparison(w io.Writer, older, newer database.StoredRun) {
	olderMeans := meansBySymbol(older.Run.Samples)
	newerMeans := meansBySymbol(newer.Run.Samples)

	symbols := make([]string, 0, len(olderMeans)+len(newerMeans))
	seen := make(map[string]bool)
	for sym := range olderMeans {
		seen[sym] = true
		symbols = append(symbols, sym)
	}
	for sym := range newerMeans {
		if !seen[sym] {
			symbols = append(symbols, sym)
		}
	}
	sort.Strings(symbols)

	fmt.Fprintf(w, "Comparing crypto runs %d (%s) and %d (%s)\n\n",
		older.ID, older.Run.CollectedAt, newer.ID, newer.Run.CollectedAt)
	fmt.Fprintf(w, "%-8s %14s %14s %14s %10s\n",
		"Symbol", "Older Mean", "Newer Mean", "Change", "Change %")

	for _, sym := range symbols {
		oldMean, hasOld := olderMeans[sym]
		newMean, hasNew := newerMeans[sym]

		if !hasOld || !hasNew {
			fmt.Fprintf(w, "%-8s %14s %14s %14s %10s\n",
				sym, meanCell(oldMean, hasOld), meanCell(newMean, hasNew), "-", "-")
			continue
		}

		change := newMean - oldMean
		pct := "-"
		if oldMean != 0 {
			pct = strconv.FormatFloat(change/oldMean*100, 'f', 2, 64) + "%"
		}
		fmt.Fprintf(w, "%-8s %14.2f %14.2f %+14.2f %10s\n",
			sym, oldMean, newMean, change, pct)
	}
}

// meansBySymbol maps each symbol to its mean USD price within a run.
func meansBySymbol(samples []model.PriceSample) map[string]float64 {
	means := make(map[string]float64)
	for _, st := range model.ComputePriceStats(samples) {
		means[st.Symbol] = st.Mean
	}
	return means
}

// meanCell formats an optional mean for the comparison table.
func meanCell(mean float64, ok bool) string {
	if !ok {
		return "-"
	}
	return strconv.FormatFloat(mean, 'f', 2, 64)
}
