// Package weather collects hourly and daily forecasts for the configured
// cities, one API call per city with bounded concurrency, and derives the
// wind index and compass direction name for every observation.
package weather
