package export

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/gatherctl/gather/internal/model"
)

// MarkdownWriter writes the per-kind markdown report into the output
// directory.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and mermaid diagrams
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	outputDir string
}

// NewMarkdownWriter creates a MarkdownWriter targeting outputDir.
func NewMarkdownWriter(outputDir string) *MarkdownWriter {
	return &MarkdownWriter{outputDir: outputDir}
}

// Name returns the writer name.
func (w *MarkdownWriter) Name() string {
	return "markdown"
}

// Write renders the markdown report for the run's kind.
func (w *MarkdownWriter) Write(run *model.Run) error {
	switch run.Kind {
	case model.RunNews:
		return writeFile(w.outputDir, "news_report.md", func(f *os.File) error {
			return w.renderNews(f, run)
		})
	case model.RunWeather:
		return writeFile(w.outputDir, "weather_report.md", func(f *os.File) error {
			return w.renderWeather(f, run)
		})
	case model.RunCrypto:
		return writeFile(w.outputDir, "crypto_report.md", func(f *os.File) error {
			return w.renderCrypto(f, run)
		})
	default:
		return fmt.Errorf("unknown run kind %q", run.Kind)
	}
}

func (w *MarkdownWriter) renderNews(out io.Writer, run *model.Run) error {
	md := markdown.NewMarkdown(out)

	md.H1("News Collection Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Collected At", run.CollectedAt},
			{"Articles", strconv.Itoa(len(run.Articles))},
			{"Errors", strconv.Itoa(len(run.Errors))},
		},
	})
	md.PlainText("")

	md.H2("Articles by Category")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Category", "Articles"},
		Rows:   categoryRows(run.Articles),
	})
	md.PlainText("")

	md.H2("Articles")
	md.PlainText("")
	rows := make([][]string, 0, len(run.Articles))
	for _, a := range run.Articles {
		rows = append(rows, []string{
			a.Category,
			truncateCell(a.Title, 60),
			strconv.Itoa(a.ContentLength),
			a.ScrapedAt,
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Category", "Title", "Content Length", "Scraped At"},
		Rows:   rows,
	})

	writeErrors(md, run)
	return md.Build()
}

func (w *MarkdownWriter) renderWeather(out io.Writer, run *model.Run) error {
	md := markdown.NewMarkdown(out)

	md.H1("Weather Collection Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Collected At", run.CollectedAt},
			{"Hourly Records", strconv.Itoa(len(run.Hourly))},
			{"Daily Records", strconv.Itoa(len(run.Daily))},
			{"Errors", strconv.Itoa(len(run.Errors))},
		},
	})
	md.PlainText("")

	md.H2("Cities")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"City", "Hourly", "Daily", "Max Temp (°C)", "Max Wind Index"},
		Rows:   cityRows(run),
	})
	md.PlainText("")

	md.H2("Daily Forecast")
	md.PlainText("")
	rows := make([][]string, 0, len(run.Daily))
	for _, d := range run.Daily {
		rows = append(rows, []string{
			d.City,
			d.Date,
			formatFloat2(d.TempMinC) + " / " + formatFloat2(d.TempMaxC),
			formatFloat2(d.PrecipitationMm),
			formatFloat2(d.WindIndexMax),
			d.WindDirectionDominantName,
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"City", "Date", "Temp Min/Max (°C)", "Precipitation (mm)", "Wind Index", "Wind Direction"},
		Rows:   rows,
	})

	writeErrors(md, run)
	return md.Build()
}

func (w *MarkdownWriter) renderCrypto(out io.Writer, run *model.Run) error {
	md := markdown.NewMarkdown(out)

	md.H1("Crypto Price Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Collected At", run.CollectedAt},
			{"Samples", strconv.Itoa(len(run.Samples))},
			{"Alerts", strconv.Itoa(len(run.Alerts))},
			{"Errors", strconv.Itoa(len(run.Errors))},
		},
	})
	md.PlainText("")

	md.H2("Per-Symbol Statistics")
	md.PlainText("")
	stats := model.ComputePriceStats(run.Samples)
	rows := make([][]string, 0, len(stats))
	for _, st := range stats {
		rows = append(rows, []string{
			st.Symbol,
			strconv.Itoa(st.Count),
			formatFloat2(st.First),
			formatFloat2(st.Last),
			formatFloat2(st.Min),
			formatFloat2(st.Max),
			formatFloat2(st.Mean),
			formatFloat2(st.Std),
			formatFloat2(st.ChangePct) + "%",
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Symbol", "Samples", "First", "Last", "Min", "Max", "Mean", "Std", "Change"},
		Rows:   rows,
	})
	md.PlainText("")

	if len(run.Alerts) > 0 {
		w.writeAlertSection(md, run)
	}

	writeErrors(md, run)
	return md.Build()
}

// writeAlertSection renders the alert distribution pie chart and table.
func (w *MarkdownWriter) writeAlertSection(md *markdown.Markdown, run *model.Run) {
	var normal, high, low int
	for _, a := range run.Alerts {
		switch a.Level {
		case model.AlertHigh:
			high++
		case model.AlertLow:
			low++
		default:
			normal++
		}
	}

	md.H2("Alerts")
	md.PlainText("")

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Alert Distribution"),
		piechart.WithShowData(true),
	)
	if normal > 0 {
		chart.LabelAndIntValue("Normal", uint64(normal))
	}
	if high > 0 {
		chart.LabelAndIntValue("High", uint64(high))
	}
	if low > 0 {
		chart.LabelAndIntValue("Low", uint64(low))
	}
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")

	switch {
	case high > 0 && low > 0:
		md.Warningf("Prices crossed both bounds: %d high and %d low alert(s).", high, low)
	case high > 0:
		md.Warningf("%d sample(s) above the configured high bound.", high)
	case low > 0:
		md.Warningf("%d sample(s) below the configured low bound.", low)
	default:
		md.Note("All classified samples are within their configured bounds.")
	}
	md.PlainText("")

	rows := make([][]string, 0, len(run.Alerts))
	for _, a := range run.Alerts {
		rows = append(rows, []string{
			a.Time,
			a.Symbol,
			formatFloat2(a.Price),
			a.LevelText,
			formatFloat2(a.ThresholdLow),
			formatFloat2(a.ThresholdHigh),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Time", "Symbol", "Price", "Type", "Low", "High"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeErrors appends the per-item failure list when the run had any.
func writeErrors(md *markdown.Markdown, run *model.Run) {
	if len(run.Errors) == 0 {
		return
	}

	md.PlainText("")
	md.H2("Collection Errors")
	md.PlainText("")
	md.BulletList(run.Errors...)
}

// categoryRows counts articles per category, preserving first-seen order.
func categoryRows(articles []model.Article) [][]string {
	counts := make(map[string]int)
	var order []string
	for _, a := range articles {
		if _, ok := counts[a.Category]; !ok {
			order = append(order, a.Category)
		}
		counts[a.Category]++
	}

	rows := make([][]string, 0, len(order))
	for _, category := range order {
		rows = append(rows, []string{category, strconv.Itoa(counts[category])})
	}
	return rows
}

// cityRows aggregates per-city record counts and maxima.
func cityRows(run *model.Run) [][]string {
	type agg struct {
		hourly       int
		daily        int
		maxTemp      float64
		maxWindIndex float64
	}

	byCity := make(map[string]*agg)
	var order []string
	for _, h := range run.Hourly {
		a, ok := byCity[h.City]
		if !ok {
			a = &agg{maxTemp: h.TemperatureC}
			byCity[h.City] = a
			order = append(order, h.City)
		}
		a.hourly++
		if h.TemperatureC > a.maxTemp {
			a.maxTemp = h.TemperatureC
		}
		if h.WindIndex > a.maxWindIndex {
			a.maxWindIndex = h.WindIndex
		}
	}
	for _, d := range run.Daily {
		a, ok := byCity[d.City]
		if !ok {
			a = &agg{maxTemp: d.TempMaxC}
			byCity[d.City] = a
			order = append(order, d.City)
		}
		a.daily++
		if d.TempMaxC > a.maxTemp {
			a.maxTemp = d.TempMaxC
		}
		if d.WindIndexMax > a.maxWindIndex {
			a.maxWindIndex = d.WindIndexMax
		}
	}

	rows := make([][]string, 0, len(order))
	for _, city := range order {
		a := byCity[city]
		rows = append(rows, []string{
			city,
			strconv.Itoa(a.hourly),
			strconv.Itoa(a.daily),
			formatFloat2(a.maxTemp),
			formatFloat2(a.maxWindIndex),
		})
	}
	return rows
}

// truncateCell shortens long table cells.
func truncateCell(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
