package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/gatherctl/gather/internal/model"
)

// ConsoleWriter prints a human-readable run summary to a terminal.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// Column widths are computed with go-runewidth so Vietnamese city names
// and titles line up in the tables.
type ConsoleWriter struct {
	output io.Writer
}

// NewConsoleWriter creates a ConsoleWriter printing to output.
func NewConsoleWriter(output io.Writer) *ConsoleWriter {
	return &ConsoleWriter{output: output}
}

// Name returns the writer name.
func (w *ConsoleWriter) Name() string {
	return "console"
}

// Write prints the summary for the run's kind.
func (w *ConsoleWriter) Write(run *model.Run) error {
	var sb strings.Builder

	w.writeHeader(&sb, run)

	switch run.Kind {
	case model.RunNews:
		w.writeNews(&sb, run)
	case model.RunWeather:
		w.writeWeather(&sb, run)
	case model.RunCrypto:
		w.writeCrypto(&sb, run)
	default:
		return fmt.Errorf("unknown run kind %q", run.Kind)
	}

	w.writeErrors(&sb, run)

	_, err := io.WriteString(w.output, sb.String())
	return err
}

func (w *ConsoleWriter) writeHeader(sb *strings.Builder, run *model.Run) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	fmt.Fprintf(sb, "GATHER %s RUN\n", strings.ToUpper(string(run.Kind)))
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")
	fmt.Fprintf(sb, "Collected At: %s\n", run.CollectedAt)
	fmt.Fprintf(sb, "Records:      %d\n", run.RecordCount())
	sb.WriteString("\n")
}

func (w *ConsoleWriter) writeNews(sb *strings.Builder, run *model.Run) {
	rows := make([][]string, 0, len(run.Articles))
	for _, a := range run.Articles {
		rows = append(rows, []string{a.Category, truncateCell(a.Title, 48), fmt.Sprint(a.ContentLength)})
	}
	writeTable(sb, []string{"Category", "Title", "Length"}, rows)
}

func (w *ConsoleWriter) writeWeather(sb *strings.Builder, run *model.Run) {
	rows := cityRows(run)
	writeTable(sb, []string{"City", "Hourly", "Daily", "Max Temp", "Max Wind Idx"}, rows)
}

func (w *ConsoleWriter) writeCrypto(sb *strings.Builder, run *model.Run) {
	stats := model.ComputePriceStats(run.Samples)
	rows := make([][]string, 0, len(stats))
	for _, st := range stats {
		rows = append(rows, []string{
			st.Symbol,
			fmt.Sprint(st.Count),
			formatFloat2(st.Last),
			formatFloat2(st.Min),
			formatFloat2(st.Max),
			formatFloat2(st.ChangePct) + "%",
		})
	}
	writeTable(sb, []string{"Symbol", "Samples", "Last", "Min", "Max", "Change"}, rows)

	if len(run.Alerts) == 0 {
		return
	}

	sb.WriteString("\nAlerts:\n")
	for _, a := range run.Alerts {
		if a.Level == model.AlertNormal {
			continue
		}
		fmt.Fprintf(sb, "  [%s] %s at %s (bounds %s - %s)\n",
			a.LevelText, a.Symbol, formatFloat2(a.Price),
			formatFloat2(a.ThresholdLow), formatFloat2(a.ThresholdHigh))
	}
}

func (w *ConsoleWriter) writeErrors(sb *strings.Builder, run *model.Run) {
	if len(run.Errors) == 0 {
		return
	}

	sb.WriteString("\nErrors:\n")
	for _, msg := range run.Errors {
		fmt.Fprintf(sb, "  - %s\n", msg)
	}
}

// writeTable renders an aligned text table. Display widths are measured
// with runewidth because several columns carry double-width characters.
func writeTable(sb *strings.Builder, header []string, rows [][]string) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	writeRow := func(cells []string) {
		sb.WriteString("  ")
		for i, cell := range cells {
			sb.WriteString(runewidth.FillRight(cell, widths[i]))
			if i < len(cells)-1 {
				sb.WriteString("  ")
			}
		}
		sb.WriteString("\n")
	}

	writeRow(header)

	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = strings.Repeat("-", widths[i])
	}
	writeRow(sep)

	for _, row := range rows {
		writeRow(row)
	}
}
