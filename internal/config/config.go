package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values. These mirror the behavior of the original
// collection scripts where applicable (request timeout, politeness delays,
// sampling cadence) and are all overridable via CLI flags.
const (
	// DefaultTimeout is the per-request HTTP timeout. The upstream APIs
	// and the news site respond well within this; a longer timeout only
	// delays the skip-and-continue error handling.
	DefaultTimeout = 10 * time.Second

	// DefaultUserAgent is sent with every request. The scraped site serves
	// different markup to unknown agents, so we present a common browser.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	// DefaultMaxBodySize limits response bodies to 5MB. Listing pages and
	// articles are far smaller; the limit guards against pathological
	// responses, not normal operation.
	DefaultMaxBodySize = 5 * 1024 * 1024

	// DefaultArticleDelay is the politeness pause between article fetches.
	DefaultArticleDelay = 1 * time.Second

	// DefaultCategoryDelay is the pause between listing/category pages.
	DefaultCategoryDelay = 2 * time.Second

	// DefaultArticlesPerCategory limits how many articles are processed
	// from each listing page.
	DefaultArticlesPerCategory = 3

	// DefaultMaxCategories limits how many categories a news run visits.
	DefaultMaxCategories = 5

	// DefaultForecastDays is the forecast horizon requested from the
	// weather API.
	DefaultForecastDays = 7

	// DefaultCityConcurrency is how many cities are fetched in parallel.
	// The weather API is fast and unauthenticated; four matches the
	// default city list so a run is a single wave.
	DefaultCityConcurrency = 4

	// DefaultSamples is the number of price sampling rounds.
	DefaultSamples = 3

	// DefaultSampleInterval is the delay between sampling rounds.
	DefaultSampleInterval = 15 * time.Second

	// DefaultPriceAPIURL is the batched simple-price endpoint.
	DefaultPriceAPIURL = "https://api.coingecko.com/api/v3/simple/price"

	// DefaultWeatherAPIURL is the forecast endpoint.
	DefaultWeatherAPIURL = "https://api.open-meteo.com/v1/forecast"

	// DefaultTimezone is the timezone requested for forecast series.
	DefaultTimezone = "Asia/Ho_Chi_Minh"

	// AppName is used for XDG directory paths.
	AppName = "gather"
)

// Config holds all runtime options for a gather command.
//
// Design decision: a single flat struct populated from CLI flags and passed
// by dependency injection, following the same shape for every subcommand.
// Collection targets (cities, symbols, categories) live in Sources, not
// here, because they are data rather than behavior.
type Config struct {
	// OutputDir is where artifacts (CSV/JSON/markdown) are written.
	// Files are overwritten on each run.
	OutputDir string

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration

	// UserAgent is the User-Agent header for all HTTP requests.
	UserAgent string

	// MaxBodySize caps response body reads, in bytes.
	MaxBodySize int64

	// Verbose enables slog.LevelDebug output.
	Verbose bool

	// ConfigFilePath is an explicit .gather sources file path. Empty means
	// search the current directory and then the home directory.
	ConfigFilePath string

	// Sources holds the collection targets loaded from the sources file,
	// or the built-in defaults when no file exists.
	Sources *File

	// DBDir is the directory holding the history database. Defaults to
	// the XDG data directory.
	DBDir string

	// SaveToDB controls whether runs are persisted to the history
	// database. The compare command needs at least two persisted runs.
	SaveToDB bool

	// MaxCategories and ArticlesPerCategory bound a news run.
	MaxCategories       int
	ArticlesPerCategory int

	// ArticleDelay and CategoryDelay pace news requests.
	ArticleDelay  time.Duration
	CategoryDelay time.Duration

	// ForecastDays is the weather forecast horizon (1-16).
	ForecastDays int

	// CityConcurrency is the number of concurrent city fetches.
	CityConcurrency int

	// Samples is the number of price sampling rounds; SampleInterval is
	// the delay between rounds.
	Samples        int
	SampleInterval time.Duration

	// PriceAPIURL is the batched price endpoint; WeatherAPIURL is the
	// forecast endpoint. Overridable for tests.
	PriceAPIURL   string
	WeatherAPIURL string

	// PriceAPIKey, when set, is sent as the price API's key header.
	// Loaded from GATHER_PRICE_API_KEY rather than flags so it stays out
	// of shell history.
	PriceAPIKey string
}

// NewConfig creates a Config with all defaults applied.
func NewConfig() *Config {
	return &Config{
		OutputDir:           ".",
		Timeout:             DefaultTimeout,
		UserAgent:           DefaultUserAgent,
		MaxBodySize:         DefaultMaxBodySize,
		MaxCategories:       DefaultMaxCategories,
		ArticlesPerCategory: DefaultArticlesPerCategory,
		ArticleDelay:        DefaultArticleDelay,
		CategoryDelay:       DefaultCategoryDelay,
		ForecastDays:        DefaultForecastDays,
		CityConcurrency:     DefaultCityConcurrency,
		Samples:             DefaultSamples,
		SampleInterval:      DefaultSampleInterval,
		PriceAPIURL:         DefaultPriceAPIURL,
		WeatherAPIURL:       DefaultWeatherAPIURL,
	}
}

// XDGDataDir returns the XDG data directory for gather
// (~/.local/share/gather on Linux).
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for gather.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
// Called once after flag parsing, before any collection begins.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return ErrNoOutputDir
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.MaxBodySize <= 0 {
		return ErrInvalidMaxBodySize
	}
	if c.Samples <= 0 {
		return ErrInvalidSamples
	}
	if c.SampleInterval < 0 {
		return ErrInvalidInterval
	}
	if c.MaxCategories <= 0 || c.ArticlesPerCategory <= 0 {
		return ErrInvalidNewsLimits
	}
	if c.ArticleDelay < 0 || c.CategoryDelay < 0 {
		return ErrInvalidDelay
	}
	if c.ForecastDays < 1 || c.ForecastDays > 16 {
		return ErrInvalidForecastDays
	}
	if c.CityConcurrency <= 0 {
		return ErrInvalidConcurrency
	}
	return nil
}
