// Package config loads service settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every setting the service reads at startup.
type Config struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	DBPath          string        `env:"DB_PATH" envDefault:"smogwatch.db"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"INFO"`
	OpenAQURL       string        `env:"OPENAQ_URL" envDefault:"https://api.openaq.org"`
	WikipediaURL    string        `env:"WIKIPEDIA_URL" envDefault:"https://en.wikipedia.org"`
	CacheTTL        time.Duration `env:"CACHE_TTL" envDefault:"1h"`
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"15s"`
	CityLimit       int           `env:"CITY_LIMIT" envDefault:"10"`
	Parameter       string        `env:"PARAMETER" envDefault:"pm25"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot run with.
func (c Config) Validate() error {
	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got: %s", c.CacheTTL)
	}
	if c.UpstreamTimeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be positive, got: %s", c.UpstreamTimeout)
	}
	if c.CityLimit <= 0 {
		return fmt.Errorf("CITY_LIMIT must be positive, got: %d", c.CityLimit)
	}
	if c.OpenAQURL == "" || c.WikipediaURL == "" {
		return fmt.Errorf("OPENAQ_URL and WIKIPEDIA_URL cannot be empty")
	}
	return nil
}

// SlogLevel maps LOG_LEVEL to a slog level; unknown values mean INFO.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
