package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/gatherctl/gather/internal/config"
	"github.com/gatherctl/gather/internal/fetch"
)

// hourlyFields and dailyFields are the forecast variables requested from
// the API, in the order the series are consumed.
const (
	hourlyFields = "temperature_2m,relative_humidity_2m,wind_speed_10m,wind_direction_10m,wind_gusts_10m,weather_code"
	dailyFields  = "temperature_2m_max,temperature_2m_min,precipitation_sum,wind_speed_10m_max,wind_gusts_10m_max,wind_direction_10m_dominant"
)

// Forecast mirrors the relevant slice of the forecast API response.
// Series are parallel arrays indexed by the time array.
type Forecast struct {
	Hourly struct {
		Time             []string  `json:"time"`
		Temperature2m    []float64 `json:"temperature_2m"`
		RelativeHumidity []float64 `json:"relative_humidity_2m"`
		WindSpeed10m     []float64 `json:"wind_speed_10m"`
		WindDirection10m []float64 `json:"wind_direction_10m"`
		WindGusts10m     []float64 `json:"wind_gusts_10m"`
		WeatherCode      []int     `json:"weather_code"`
	} `json:"hourly"`
	Daily struct {
		Time                     []string  `json:"time"`
		Temperature2mMax         []float64 `json:"temperature_2m_max"`
		Temperature2mMin         []float64 `json:"temperature_2m_min"`
		PrecipitationSum         []float64 `json:"precipitation_sum"`
		WindSpeed10mMax          []float64 `json:"wind_speed_10m_max"`
		WindGusts10mMax          []float64 `json:"wind_gusts_10m_max"`
		WindDirection10mDominant []float64 `json:"wind_direction_10m_dominant"`
	} `json:"daily"`
}

// Client fetches forecasts for single cities.
type Client struct {
	fetcher *fetch.Client
	apiURL  string
}

// NewClient creates a forecast client against apiURL using fetcher.
func NewClient(fetcher *fetch.Client, apiURL string) *Client {
	return &Client{fetcher: fetcher, apiURL: apiURL}
}

// FetchCity requests the hourly and daily forecast for one city and returns
// the decoded response plus the raw body.
func (c *Client) FetchCity(ctx context.Context, city config.City, timezone string, forecastDays int) (*Forecast, json.RawMessage, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(city.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(city.Longitude, 'f', -1, 64))
	params.Set("hourly", hourlyFields)
	params.Set("daily", dailyFields)
	params.Set("timezone", timezone)
	params.Set("forecast_days", strconv.Itoa(forecastDays))

	var decoded Forecast
	raw, err := c.fetcher.GetJSON(ctx, c.apiURL, params, &decoded)
	if err != nil {
		return nil, nil, fmt.Errorf("forecast request for %s failed: %w", city.Name, err)
	}

	return &decoded, raw, nil
}
