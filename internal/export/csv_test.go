package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/gatherctl/gather/internal/model"
)

func cryptoRun() *model.Run {
	run := model.NewRun(model.RunCrypto)
	run.CollectedAt = "2026-08-25 10:00:00"
	run.Samples = []model.PriceSample{
		{Time: "2026-08-25 10:00:00", Symbol: "BTC", USDPrice: 114000},
		{Time: "2026-08-25 10:00:00", Symbol: "ETH", USDPrice: 4250.5},
	}
	run.Alerts = []model.Alert{
		{
			Time: "2026-08-25 10:00:00", Symbol: "BTC", Price: 114000,
			Level: model.AlertHigh, LevelText: "HIGH_ALERT",
			ThresholdLow: 110000, ThresholdHigh: 113000,
		},
	}
	return run
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse %s: %v", path, err)
	}
	return records
}

// TestCSVWriterCrypto verifies the three crypto artifacts.
func TestCSVWriterCrypto(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := NewCSVWriter(dir).Write(cryptoRun()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	main := readCSV(t, filepath.Join(dir, "crypto_prices.csv"))
	if len(main) != 3 {
		t.Fatalf("main rows = %d, want 3", len(main))
	}
	if main[0][0] != "time" || main[0][2] != "usd_price" {
		t.Errorf("main header = %v", main[0])
	}
	if main[1][1] != "BTC" || main[1][2] != "114000" {
		t.Errorf("main row = %v", main[1])
	}
	if main[2][2] != "4250.5" {
		t.Errorf("ETH price cell = %q", main[2][2])
	}

	detailed := readCSV(t, filepath.Join(dir, "crypto_prices_detailed.csv"))
	if detailed[0][3] != "collected_at" {
		t.Errorf("detailed header = %v", detailed[0])
	}
	if detailed[1][3] != "2026-08-25 10:00:00" {
		t.Errorf("collected_at cell = %q", detailed[1][3])
	}

	alerts := readCSV(t, filepath.Join(dir, "crypto_alerts.csv"))
	if len(alerts) != 2 {
		t.Fatalf("alert rows = %d, want 2", len(alerts))
	}
	if alerts[1][3] != "HIGH_ALERT" || alerts[1][4] != "110000" {
		t.Errorf("alert row = %v", alerts[1])
	}
}

// TestCSVWriterCryptoNoAlerts verifies the alerts artifact is absent when
// no symbol had bounds.
func TestCSVWriterCryptoNoAlerts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	run := cryptoRun()
	run.Alerts = nil

	if err := NewCSVWriter(dir).Write(run); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "crypto_alerts.csv")); !os.IsNotExist(err) {
		t.Error("crypto_alerts.csv should not exist without alerts")
	}
}

// TestCSVWriterWeather verifies hourly and daily artifacts.
func TestCSVWriterWeather(t *testing.T) {
	t.Parallel()

	run := model.NewRun(model.RunWeather)
	run.CollectedAt = "2026-08-25 10:00:00"
	run.Hourly = []model.HourlyWeather{
		{
			City: "Hà Nội", Datetime: "2026-08-25T00:00", TemperatureC: 28.5,
			HumidityPercent: 80, WindSpeedKmh: 20, WindDirectionDeg: 10,
			WindGustsKmh: 40, WeatherCode: 3, WindIndex: 52, WindDirectionName: "N",
		},
	}
	run.Daily = []model.DailyWeather{
		{
			City: "Hà Nội", Date: "2026-08-25", TempMaxC: 33.1, TempMinC: 26,
			PrecipitationMm: 4.2, WindSpeedMaxKmh: 25, WindGustsMaxKmh: 45,
			WindDirectionDominantDeg: 355, WindIndexMax: 62.5,
			WindDirectionDominantName: "N",
		},
	}

	dir := t.TempDir()
	if err := NewCSVWriter(dir).Write(run); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	hourly := readCSV(t, filepath.Join(dir, "weather_hourly.csv"))
	if len(hourly) != 2 {
		t.Fatalf("hourly rows = %d, want 2", len(hourly))
	}
	if hourly[1][0] != "Hà Nội" || hourly[1][8] != "52" {
		t.Errorf("hourly row = %v", hourly[1])
	}

	daily := readCSV(t, filepath.Join(dir, "weather_daily.csv"))
	if daily[1][1] != "2026-08-25" || daily[1][9] != "N" {
		t.Errorf("daily row = %v", daily[1])
	}
}

// TestCSVWriterNews verifies the articles artifact.
func TestCSVWriterNews(t *testing.T) {
	t.Parallel()

	run := model.NewRun(model.RunNews)
	run.Articles = []model.Article{
		{
			Page: 1, Category: "Thời sự", Title: "Bão số 5 đổ bộ",
			Link: "https://vnexpress.net/tin/bao.html", ContentPreview: "Nội dung...",
			Summary: "Nội dung", ContentLength: 1234, ScrapedAt: "2026-08-25 10:00:00",
		},
	}

	dir := t.TempDir()
	if err := NewCSVWriter(dir).Write(run); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	records := readCSV(t, filepath.Join(dir, "news_articles.csv"))
	if len(records) != 2 {
		t.Fatalf("rows = %d, want 2", len(records))
	}
	if records[0][0] != "category" || records[0][7] != "scraped_at" {
		t.Errorf("header = %v", records[0])
	}
	if records[1][2] != "Bão số 5 đổ bộ" || records[1][6] != "1234" {
		t.Errorf("row = %v", records[1])
	}
}
