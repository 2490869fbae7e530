// Package config loads saw settings from SAW_* environment variables.
// Command-line flags override these values in cmd/saw.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config holds the host settings for the recipe engine.
type Config struct {
	Resources   string `env:"SAW_RESOURCES" envDefault:"."`
	DBPath      string `env:"SAW_DB_PATH"`
	Catalog     string `env:"SAW_CATALOG" envDefault:"default"`
	CatalogFile string `env:"SAW_CATALOG_FILE"`
	Workers     int    `env:"SAW_WORKERS" envDefault:"4"`
	Seed        uint64 `env:"SAW_SEED" envDefault:"0"`
	LogLevel    string `env:"SAW_LOG_LEVEL" envDefault:"info"`
	MetricsAddr string `env:"SAW_METRICS_ADDR"`
}

// Load parses the environment into a Config and fills derived defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg.withDefaults(), nil
}

// DefaultDBPath is the catalog database location under a resource root.
func DefaultDBPath(resources string) string {
	return filepath.Join(resources, ".saw", "saw.db")
}

// withDefaults fills settings that depend on other settings.
func (c Config) withDefaults() Config {
	if c.DBPath == "" {
		c.DBPath = DefaultDBPath(c.Resources)
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	return c
}

// Validate rejects settings the engine cannot run with.
func (c Config) Validate() error {
	if c.Resources == "" {
		return fmt.Errorf("resources directory required")
	}
	if c.Catalog == "" && c.CatalogFile == "" {
		return fmt.Errorf("catalog name or catalog file required")
	}
	return nil
}
