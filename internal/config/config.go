package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds process configuration, loaded from environment
// variables. Empty values fall back to built-in defaults at the call
// site.
type Config struct {
	// DBPath overrides the SQLite database location.
	DBPath string `env:"LIFEPRG_DB"`
	// CatalogPath points at an optional YAML catalog override.
	CatalogPath string `env:"LIFEPRG_CATALOG"`
}

// Load parses configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
