package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gatherctl/gather/internal/model"
)

// TestMarkdownWriterCrypto verifies the report sections and the alert chart.
func TestMarkdownWriterCrypto(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := NewMarkdownWriter(dir).Write(cryptoRun()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "crypto_report.md"))
	if err != nil {
		t.Fatal(err)
	}
	report := string(data)

	for _, want := range []string{
		"# Crypto Price Report",
		"## Per-Symbol Statistics",
		"## Alerts",
		"```mermaid",
		"HIGH_ALERT",
		"| BTC |",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

// TestMarkdownWriterCryptoWithoutAlerts verifies the alert section is
// omitted when nothing was classified.
func TestMarkdownWriterCryptoWithoutAlerts(t *testing.T) {
	t.Parallel()

	run := cryptoRun()
	run.Alerts = nil

	dir := t.TempDir()
	if err := NewMarkdownWriter(dir).Write(run); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "crypto_report.md"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "## Alerts") {
		t.Error("alert section present without alerts")
	}
}

// TestMarkdownWriterWeather verifies the city summary and daily table.
func TestMarkdownWriterWeather(t *testing.T) {
	t.Parallel()

	run := model.NewRun(model.RunWeather)
	run.CollectedAt = "2026-08-25 10:00:00"
	run.Hourly = []model.HourlyWeather{
		{City: "Hà Nội", Datetime: "2026-08-25T00:00", TemperatureC: 28.5, WindIndex: 52, WindDirectionName: "N"},
	}
	run.Daily = []model.DailyWeather{
		{City: "Hà Nội", Date: "2026-08-25", TempMaxC: 33.1, TempMinC: 26, WindIndexMax: 62.5, WindDirectionDominantName: "N"},
	}

	dir := t.TempDir()
	if err := NewMarkdownWriter(dir).Write(run); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "weather_report.md"))
	if err != nil {
		t.Fatal(err)
	}
	report := string(data)

	for _, want := range []string{
		"# Weather Collection Report",
		"## Cities",
		"## Daily Forecast",
		"Hà Nội",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

// TestMarkdownWriterNewsErrors verifies collection errors are listed.
func TestMarkdownWriterNewsErrors(t *testing.T) {
	t.Parallel()

	run := model.NewRun(model.RunNews)
	run.Articles = []model.Article{{Title: "Tin", Category: "Thời sự", ContentLength: 10}}
	run.AddError("Thời sự article 2: timeout")

	dir := t.TempDir()
	if err := NewMarkdownWriter(dir).Write(run); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "news_report.md"))
	if err != nil {
		t.Fatal(err)
	}
	report := string(data)

	if !strings.Contains(report, "## Collection Errors") {
		t.Error("missing errors section")
	}
	if !strings.Contains(report, "timeout") {
		t.Error("missing error entry")
	}
}
