package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/gatherctl/gather/internal/config"
	"github.com/gatherctl/gather/internal/model"
)

// Collector fetches all configured cities and flattens the forecast series
// into per-hour and per-day records.
type Collector struct {
	client *Client
	cfg    *config.Config
	logger *slog.Logger
}

// NewCollector creates a Collector using cfg's weather settings.
func NewCollector(client *Client, cfg *config.Config, logger *slog.Logger) *Collector {
	return &Collector{client: client, cfg: cfg, logger: logger}
}

// cityResult is one city's flattened records, gathered before merging so
// output order does not depend on completion order.
type cityResult struct {
	city   string
	hourly []model.HourlyWeather
	daily  []model.DailyWeather
	raw    json.RawMessage
}

// Collect fetches every configured city concurrently, at most
// cfg.CityConcurrency at a time. A failed city contributes zero records and
// a run error; the other cities still collect. Records are merged in the
// configured city order regardless of fetch completion order, and each raw
// payload is stored under the city name.
func (c *Collector) Collect(ctx context.Context, run *model.Run) error {
	cities := c.cfg.Sources.Weather.Cities
	timezone := c.cfg.Sources.Weather.Timezone

	var mu sync.Mutex
	results := make(map[string]cityResult, len(cities))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.CityConcurrency)

	for _, city := range cities {
		city := city
		g.Go(func() error {
			c.logger.Debug("fetching forecast", "city", city.Name)

			forecast, raw, err := c.client.FetchCity(ctx, city, timezone, c.cfg.ForecastDays)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				mu.Lock()
				run.AddError(fmt.Sprintf("%s: %v", city.Name, err))
				mu.Unlock()
				c.logger.Warn("city fetch failed", "city", city.Name, "error", err)
				return nil
			}

			hourly, daily, err := flatten(city.Name, forecast)
			if err != nil {
				mu.Lock()
				run.AddError(fmt.Sprintf("%s: %v", city.Name, err))
				mu.Unlock()
				return nil
			}

			mu.Lock()
			results[city.Name] = cityResult{
				city:   city.Name,
				hourly: hourly,
				daily:  daily,
				raw:    raw,
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for _, city := range cities {
		res, ok := results[city.Name]
		if !ok {
			continue
		}
		run.Hourly = append(run.Hourly, res.hourly...)
		run.Daily = append(run.Daily, res.daily...)
		run.AddRawPayload(res.city, res.raw)
	}

	return nil
}

// flatten turns the parallel forecast series into per-record structs and
// stamps the derived wind metrics. Series of mismatched lengths indicate a
// malformed response and fail the whole city.
func flatten(city string, f *Forecast) ([]model.HourlyWeather, []model.DailyWeather, error) {
	h := f.Hourly
	n := len(h.Time)
	if len(h.Temperature2m) != n || len(h.RelativeHumidity) != n ||
		len(h.WindSpeed10m) != n || len(h.WindDirection10m) != n ||
		len(h.WindGusts10m) != n || len(h.WeatherCode) != n {
		return nil, nil, fmt.Errorf("hourly series length mismatch")
	}

	hourly := make([]model.HourlyWeather, 0, n)
	for i := 0; i < n; i++ {
		hourly = append(hourly, model.HourlyWeather{
			City:              city,
			Datetime:          h.Time[i],
			TemperatureC:      h.Temperature2m[i],
			HumidityPercent:   h.RelativeHumidity[i],
			WindSpeedKmh:      h.WindSpeed10m[i],
			WindDirectionDeg:  h.WindDirection10m[i],
			WindGustsKmh:      h.WindGusts10m[i],
			WeatherCode:       h.WeatherCode[i],
			WindIndex:         WindIndex(h.WindSpeed10m[i], h.WindGusts10m[i]),
			WindDirectionName: CompassName(h.WindDirection10m[i]),
		})
	}

	d := f.Daily
	m := len(d.Time)
	if len(d.Temperature2mMax) != m || len(d.Temperature2mMin) != m ||
		len(d.PrecipitationSum) != m || len(d.WindSpeed10mMax) != m ||
		len(d.WindGusts10mMax) != m || len(d.WindDirection10mDominant) != m {
		return nil, nil, fmt.Errorf("daily series length mismatch")
	}

	daily := make([]model.DailyWeather, 0, m)
	for i := 0; i < m; i++ {
		daily = append(daily, model.DailyWeather{
			City:                      city,
			Date:                      d.Time[i],
			TempMaxC:                  d.Temperature2mMax[i],
			TempMinC:                  d.Temperature2mMin[i],
			PrecipitationMm:           d.PrecipitationSum[i],
			WindSpeedMaxKmh:           d.WindSpeed10mMax[i],
			WindGustsMaxKmh:           d.WindGusts10mMax[i],
			WindDirectionDominantDeg:  d.WindDirection10mDominant[i],
			WindIndexMax:              WindIndex(d.WindSpeed10mMax[i], d.WindGusts10mMax[i]),
			WindDirectionDominantName: CompassName(d.WindDirection10mDominant[i]),
		})
	}

	return hourly, daily, nil
}
