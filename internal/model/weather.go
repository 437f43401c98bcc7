package model

// HourlyWeather is one hourly forecast observation for a city.
// Values come straight from the forecast API except WindIndex and
// WindDirectionName, which are derived (see the weather package).
type HourlyWeather struct {
	// City is the display name of the city.
	City string `json:"city"`

	// Datetime is the forecast hour as reported by the API (ISO 8601,
	// minute granularity, in the requested timezone).
	Datetime string `json:"datetime"`

	// TemperatureC is the air temperature at 2m, in degrees Celsius.
	TemperatureC float64 `json:"temperature_c"`

	// HumidityPercent is the relative humidity at 2m.
	HumidityPercent float64 `json:"humidity_percent"`

	// WindSpeedKmh is the wind speed at 10m, in km/h.
	WindSpeedKmh float64 `json:"wind_speed_kmh"`

	// WindDirectionDeg is the wind direction at 10m, in degrees.
	WindDirectionDeg float64 `json:"wind_direction_deg"`

	// WindGustsKmh is the wind gust speed at 10m, in km/h.
	WindGustsKmh float64 `json:"wind_gusts_kmh"`

	// WeatherCode is the WMO weather interpretation code.
	WeatherCode int `json:"weather_code"`

	// WindIndex is the derived 0-100 score blending speed and gusts.
	WindIndex float64 `json:"wind_index"`

	// WindDirectionName is the 16-point compass label ("N", "NNE", ...).
	WindDirectionName string `json:"wind_direction_name"`
}

// DailyWeather is one daily forecast aggregate for a city.
type DailyWeather struct {
	// City is the display name of the city.
	City string `json:"city"`

	// Date is the forecast day as reported by the API (YYYY-MM-DD).
	Date string `json:"date"`

	// TempMaxC is the daily maximum temperature in degrees Celsius.
	TempMaxC float64 `json:"temp_max_c"`

	// TempMinC is the daily minimum temperature in degrees Celsius.
	TempMinC float64 `json:"temp_min_c"`

	// PrecipitationMm is the daily precipitation sum in millimeters.
	PrecipitationMm float64 `json:"precipitation_mm"`

	// WindSpeedMaxKmh is the daily maximum wind speed in km/h.
	WindSpeedMaxKmh float64 `json:"wind_speed_max_kmh"`

	// WindGustsMaxKmh is the daily maximum gust speed in km/h.
	WindGustsMaxKmh float64 `json:"wind_gusts_max_kmh"`

	// WindDirectionDominantDeg is the dominant wind direction in degrees.
	WindDirectionDominantDeg float64 `json:"wind_direction_dominant_deg"`

	// WindIndexMax is the derived 0-100 score from the daily maxima.
	WindIndexMax float64 `json:"wind_index_max"`

	// WindDirectionDominantName is the 16-point compass label for the
	// dominant direction.
	WindDirectionDominantName string `json:"wind_direction_dominant_name"`
}
