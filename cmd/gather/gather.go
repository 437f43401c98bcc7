package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gatherctl/gather/internal/config"
	"github.com/gatherctl/gather/internal/database"
	"github.com/gatherctl/gather/internal/export"
	"github.com/gatherctl/gather/internal/fetch"
	"github.com/gatherctl/gather/internal/log"
	"github.com/gatherctl/gather/internal/model"
	"github.com/gatherctl/gather/internal/pipeline"
)

// addCollectionFlags registers the flags shared by every collection
// command.
func addCollectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output-dir", "o", ".", "Directory for CSV/JSON/markdown artifacts")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout, "Per-request HTTP timeout")
	cmd.Flags().StringP("config", "c", "", "Path to sources file (default: search for "+config.DefaultSourcesFile+")")
	cmd.Flags().Bool("no-db", false, "Skip saving the run to the history database")
	cmd.Flags().String("db-dir", "", "History database directory (default: XDG data directory)")
}

// getVerboseFlag retrieves the persistent verbose flag, falling back to
// the root command's flag set when the command is run standalone.
func getVerboseFlag(cmd *cobra.Command) bool {
	if v, err := cmd.Flags().GetBool("verbose"); err == nil {
		return v
	}
	if v, err := cmd.Root().PersistentFlags().GetBool("verbose"); err == nil {
		return v
	}
	return false
}

// buildConfig assembles a Config from defaults, environment overrides,
// the sources file, and the shared flags, in that precedence order.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	// Environment values beat defaults but lose to explicit flags.
	config.ApplyEnv(cfg)

	if cmd.Flags().Changed("output-dir") {
		outputDir, err := cmd.Flags().GetString("output-dir")
		if err != nil {
			return nil, fmt.Errorf("failed to get output-dir flag: %w", err)
		}
		cfg.OutputDir = outputDir
	}

	if cmd.Flags().Changed("timeout") {
		timeout, err := cmd.Flags().GetDuration("timeout")
		if err != nil {
			return nil, fmt.Errorf("failed to get timeout flag: %w", err)
		}
		cfg.Timeout = timeout
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg.ConfigFilePath = configPath

	if found := config.FindSourcesFile(configPath); found != "" {
		sources, err := config.LoadSourcesFile(found)
		if err != nil {
			return nil, fmt.Errorf("failed to load sources file %s: %w", found, err)
		}
		cfg.Sources = sources
	} else if configPath != "" {
		// An explicit path that doesn't exist is an error; silently
		// falling back to defaults would mask a typo.
		return nil, fmt.Errorf("sources file not found: %s", configPath)
	} else {
		cfg.Sources = config.DefaultSources()
	}

	noDB, err := cmd.Flags().GetBool("no-db")
	if err != nil {
		return nil, fmt.Errorf("failed to get no-db flag: %w", err)
	}
	cfg.SaveToDB = !noDB

	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, fmt.Errorf("failed to get db-dir flag: %w", err)
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}
	cfg.DBDir = dbDir

	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// setupLogger creates the run logger and installs it as the slog default
// so library code logging via slog.Default() is captured too.
func setupLogger(verbose bool) *slog.Logger {
	logger := log.NewLogger(os.Stderr, verbose)
	slog.SetDefault(logger)
	return logger
}

// signalContext derives a context cancelled by SIGINT or SIGTERM, so an
// interrupted run still finishes the current record and exports what it
// has.
func signalContext(parent context.Context, logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigCh:
			logger.Warn("interrupt received, stopping collection", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

// newFetcher creates the HTTP client shared by a run's requests.
func newFetcher(cfg *config.Config, extra ...fetch.Option) *fetch.Client {
	opts := []fetch.Option{
		fetch.WithTimeout(cfg.Timeout),
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithMaxBodySize(cfg.MaxBodySize),
	}
	opts = append(opts, extra...)
	return fetch.NewClient(opts...)
}

// runCollection assembles and executes the standard pipeline for one
// collection run: collect, export to all writers, persist to history.
func runCollection(ctx context.Context, out io.Writer, cfg *config.Config, logger *slog.Logger, kind model.RunKind, collector pipeline.Collector) error {
	p := pipeline.New(pipeline.WithLogger(logger))
	p.AddStep(pipeline.NewCollectStep(string(kind)+" collection", collector))
	p.AddStep(pipeline.NewExportStep(logger,
		export.NewConsoleWriter(out),
		export.NewCSVWriter(cfg.OutputDir),
		export.NewJSONWriter(cfg.OutputDir),
		export.NewMarkdownWriter(cfg.OutputDir),
	))

	if cfg.SaveToDB {
		hdb, err := database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer hdb.Close() //nolint:errcheck
		p.AddStep(pipeline.NewHistoryStep(hdb, logger))
	}

	run := model.NewRun(kind)
	if err := p.Execute(ctx, run); err != nil {
		if errors.Is(err, pipeline.ErrNothingCollected) {
			return fmt.Errorf("%s run collected nothing: %s", kind, summarizeErrors(run))
		}
		return err
	}

	logger.Info("run complete",
		"kind", run.Kind,
		"records", run.RecordCount(),
		"errors", len(run.Errors),
		"output_dir", cfg.OutputDir,
	)
	return nil
}

// summarizeErrors condenses a run's per-item failures into one line.
func summarizeErrors(run *model.Run) string {
	if len(run.Errors) == 0 {
		return "no errors recorded"
	}
	const maxShown = 3
	shown := run.Errors
	if len(shown) > maxShown {
		shown = shown[:maxShown]
	}
	msg := strings.Join(shown, "; ")
	if rest := len(run.Errors) - len(shown); rest > 0 {
		msg += fmt.Sprintf(" (and %d more)", rest)
	}
	return msg
}
