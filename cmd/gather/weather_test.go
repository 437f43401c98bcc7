package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const weatherStubJSON = `{
  "hourly": {
    "time": ["2026-08-25T00:00"],
    "temperature_2m": [28.5],
    "relative_humidity_2m": [80],
    "wind_speed_10m": [20],
    "wind_direction_10m": [10],
    "wind_gusts_10m": [40],
    "weather_code": [3]
  },
  "daily": {
    "time": ["2026-08-25"],
    "temperature_2m_max": [33.1],
    "temperature_2m_min": [26.0],
    "precipitation_sum": [1.2],
    "wind_speed_10m_max": [25],
    "wind_gusts_10m_max": [45],
    "wind_direction_10m_dominant": [100]
  }
}`

const weatherSourcesYAML = `weather:
  timezone: Asia/Ho_Chi_Minh
  cities:
    - name: Hà Nội
      latitude: 21.0285
      longitude: 105.8542
`

// TestWeatherCmd runs a full weather collection against a stub API.
func TestWeatherCmd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("forecast_days"); got != "1" {
			t.Errorf("forecast_days = %q, want 1", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(weatherStubJSON))
	}))
	defer srv.Close()
	t.Setenv("GATHER_WEATHER_API_URL", srv.URL)

	outDir := t.TempDir()
	sources := writeSourcesFile(t, weatherSourcesYAML)

	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{
		"weather",
		"--days", "1",
		"--config", sources,
		"--output-dir", outDir,
		"--no-db",
	})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	for _, name := range []string{
		"weather_hourly.csv",
		"weather_daily.csv",
		"weather_raw.json",
		"weather_report.md",
	} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("artifact %s missing: %v", name, err)
		}
	}

	hourly, err := os.ReadFile(filepath.Join(outDir, "weather_hourly.csv"))
	if err != nil {
		t.Fatal(err)
	}
	// Speed 20 with gusts 40 blends to a wind index of 52.
	if !strings.Contains(string(hourly), "Hà Nội") || !strings.Contains(string(hourly), "52") {
		t.Errorf("hourly CSV missing derived fields: %s", hourly)
	}

	if !strings.Contains(buf.String(), "GATHER WEATHER RUN") {
		t.Error("console summary missing")
	}
}

// TestWeatherCmdInvalidDays verifies the forecast horizon is validated
// before any request is made.
func TestWeatherCmdInvalidDays(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"weather", "--days", "20", "--no-db"})

	if err := cmd.Execute(); err == nil {
		t.Error("Execute() expected error for 20 forecast days")
	}
}
