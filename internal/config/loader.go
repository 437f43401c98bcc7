package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultSourcesFile is the default sources file name.
const DefaultSourcesFile = ".gather"

// LoadSourcesFile loads collection targets from a YAML file.
// Missing sections are filled from the built-in defaults so a partial file
// (say, only custom thresholds) still yields a complete configuration.
// Returns ErrSourcesNotFound if the file does not exist.
func LoadSourcesFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided sources path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSourcesNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	f.merge(DefaultSources())

	if err := f.Validate(); err != nil {
		return nil, err
	}

	return &f, nil
}

// FindSourcesFile searches for the sources file:
// 1. the explicit path, if given
// 2. .gather in the current directory
// 3. .gather in the user's home directory
// Returns the path if found, or empty string.
func FindSourcesFile(path string) string {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		candidate := filepath.Join(cwd, DefaultSourcesFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, DefaultSourcesFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}

// ApplyEnv loads a .env file if one exists in the working directory and
// then applies GATHER_* environment overrides to the config. Environment
// values win over file values but lose to explicit CLI flags, so callers
// apply this before flag values.
func ApplyEnv(c *Config) {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load() //nolint:errcheck

	if v := os.Getenv("GATHER_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("GATHER_PRICE_API_URL"); v != "" {
		c.PriceAPIURL = v
	}
	if v := os.Getenv("GATHER_WEATHER_API_URL"); v != "" {
		c.WeatherAPIURL = v
	}
	if v := os.Getenv("GATHER_PRICE_API_KEY"); v != "" {
		c.PriceAPIKey = v
	}
}
