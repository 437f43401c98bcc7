package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gatherctl/gather/internal/model"
)

// Writer renders one artifact family for a finished run.
//
// Design decision: We use an interface to allow different output formats
// and destinations with the same API. File-backed writers take an output
// directory; the console writer takes an io.Writer.
type Writer interface {
	// Write outputs the run's artifacts. Implementations must not modify
	// the run.
	Write(run *model.Run) error

	// Name identifies the writer for logging and error messages.
	Name() string
}

// writeFile creates (or truncates) name inside dir and hands the file to
// render. Artifacts are overwritten on every run.
func writeFile(dir, name string, render func(f *os.File) error) error {
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := render(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	return nil
}

// formatFloat renders a float the shortest way that round-trips, for CSV
// cells and raw dumps.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatFloat2 renders a float with two decimals, for human-facing tables.
func formatFloat2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
