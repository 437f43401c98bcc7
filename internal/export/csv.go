package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/gatherctl/gather/internal/model"
)

// CSVWriter writes the per-kind CSV artifacts into the output directory.
//
// Design decision: We use standard encoding/csv rather than a third-party
// CSV library because the artifacts are plain rectangular tables with no
// need for streaming, tags, or type mapping.
type CSVWriter struct {
	outputDir string
}

// NewCSVWriter creates a CSVWriter targeting outputDir.
func NewCSVWriter(outputDir string) *CSVWriter {
	return &CSVWriter{outputDir: outputDir}
}

// Name returns the writer name.
func (w *CSVWriter) Name() string {
	return "csv"
}

// Write renders the CSV artifacts for the run's kind.
func (w *CSVWriter) Write(run *model.Run) error {
	switch run.Kind {
	case model.RunNews:
		return w.writeNews(run)
	case model.RunWeather:
		return w.writeWeather(run)
	case model.RunCrypto:
		return w.writeCrypto(run)
	default:
		return fmt.Errorf("unknown run kind %q", run.Kind)
	}
}

func (w *CSVWriter) writeNews(run *model.Run) error {
	return writeFile(w.outputDir, "news_articles.csv", func(f *os.File) error {
		cw := csv.NewWriter(f)
		if err := cw.Write([]string{"category", "page", "title", "link", "content_preview", "summary", "content_length", "scraped_at"}); err != nil {
			return err
		}
		for _, a := range run.Articles {
			record := []string{
				a.Category,
				strconv.Itoa(a.Page),
				a.Title,
				a.Link,
				a.ContentPreview,
				a.Summary,
				strconv.Itoa(a.ContentLength),
				a.ScrapedAt,
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
}

func (w *CSVWriter) writeWeather(run *model.Run) error {
	err := writeFile(w.outputDir, "weather_hourly.csv", func(f *os.File) error {
		cw := csv.NewWriter(f)
		header := []string{
			"city", "datetime", "temperature_c", "humidity_percent",
			"wind_speed_kmh", "wind_direction_deg", "wind_gusts_kmh",
			"weather_code", "wind_index", "wind_direction_name", "collected_at",
		}
		if err := cw.Write(header); err != nil {
			return err
		}
		for _, h := range run.Hourly {
			record := []string{
				h.City,
				h.Datetime,
				formatFloat(h.TemperatureC),
				formatFloat(h.HumidityPercent),
				formatFloat(h.WindSpeedKmh),
				formatFloat(h.WindDirectionDeg),
				formatFloat(h.WindGustsKmh),
				strconv.Itoa(h.WeatherCode),
				formatFloat(h.WindIndex),
				h.WindDirectionName,
				run.CollectedAt,
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
	if err != nil {
		return err
	}

	return writeFile(w.outputDir, "weather_daily.csv", func(f *os.File) error {
		cw := csv.NewWriter(f)
		header := []string{
			"city", "date", "temp_max_c", "temp_min_c", "precipitation_mm",
			"wind_speed_max_kmh", "wind_gusts_max_kmh",
			"wind_direction_dominant_deg", "wind_index_max",
			"wind_direction_dominant_name", "collected_at",
		}
		if err := cw.Write(header); err != nil {
			return err
		}
		for _, d := range run.Daily {
			record := []string{
				d.City,
				d.Date,
				formatFloat(d.TempMaxC),
				formatFloat(d.TempMinC),
				formatFloat(d.PrecipitationMm),
				formatFloat(d.WindSpeedMaxKmh),
				formatFloat(d.WindGustsMaxKmh),
				formatFloat(d.WindDirectionDominantDeg),
				formatFloat(d.WindIndexMax),
				d.WindDirectionDominantName,
				run.CollectedAt,
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
}

func (w *CSVWriter) writeCrypto(run *model.Run) error {
	err := writeFile(w.outputDir, "crypto_prices.csv", func(f *os.File) error {
		cw := csv.NewWriter(f)
		if err := cw.Write([]string{"time", "symbol", "usd_price"}); err != nil {
			return err
		}
		for _, s := range run.Samples {
			if err := cw.Write([]string{s.Time, s.Symbol, formatFloat(s.USDPrice)}); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
	if err != nil {
		return err
	}

	err = writeFile(w.outputDir, "crypto_prices_detailed.csv", func(f *os.File) error {
		cw := csv.NewWriter(f)
		if err := cw.Write([]string{"time", "symbol", "usd_price", "collected_at"}); err != nil {
			return err
		}
		for _, s := range run.Samples {
			if err := cw.Write([]string{s.Time, s.Symbol, formatFloat(s.USDPrice), run.CollectedAt}); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
	if err != nil {
		return err
	}

	// Alert classification requires configured bounds; without them the
	// alerts artifact is not produced at all.
	if len(run.Alerts) == 0 {
		return nil
	}

	return writeFile(w.outputDir, "crypto_alerts.csv", func(f *os.File) error {
		cw := csv.NewWriter(f)
		if err := cw.Write([]string{"time", "symbol", "price", "alert_type", "threshold_low", "threshold_high"}); err != nil {
			return err
		}
		for _, a := range run.Alerts {
			record := []string{
				a.Time,
				a.Symbol,
				formatFloat(a.Price),
				a.LevelText,
				formatFloat(a.ThresholdLow),
				formatFloat(a.ThresholdHigh),
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
}
