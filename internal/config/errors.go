package config

import "errors"

// Validation errors returned by Config.Validate and the sources loader.
var (
	// ErrNoOutputDir is returned when the output directory is empty.
	ErrNoOutputDir = errors.New("output directory must not be empty")

	// ErrInvalidTimeout is returned when the HTTP timeout is not positive.
	ErrInvalidTimeout = errors.New("timeout must be positive")

	// ErrInvalidMaxBodySize is returned when the body size limit is not positive.
	ErrInvalidMaxBodySize = errors.New("max body size must be positive")

	// ErrInvalidSamples is returned when the sampling round count is not positive.
	ErrInvalidSamples = errors.New("samples must be positive")

	// ErrInvalidInterval is returned when the sampling interval is negative.
	ErrInvalidInterval = errors.New("sample interval must not be negative")

	// ErrInvalidNewsLimits is returned when category or article limits are
	// not positive.
	ErrInvalidNewsLimits = errors.New("category and article limits must be positive")

	// ErrInvalidDelay is returned when a politeness delay is negative.
	ErrInvalidDelay = errors.New("politeness delays must not be negative")

	// ErrInvalidForecastDays is returned when the forecast horizon is
	// outside the API's 1-16 day range.
	ErrInvalidForecastDays = errors.New("forecast days must be between 1 and 16")

	// ErrInvalidConcurrency is returned when the city fetch concurrency is
	// not positive.
	ErrInvalidConcurrency = errors.New("city concurrency must be positive")

	// ErrSourcesNotFound is returned when an explicitly given sources file
	// does not exist.
	ErrSourcesNotFound = errors.New("sources file not found")

	// ErrInvalidThresholds is returned when a symbol's low bound is not
	// below its high bound.
	ErrInvalidThresholds = errors.New("threshold low bound must be below high bound")
)
