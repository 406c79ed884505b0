// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the process configuration.
type Config struct {
	Env    string `env:"APP_ENV" envDefault:"dev"`
	Port   string `env:"PORT" envDefault:"5000"`
	DBPath string `env:"DB_PATH" envDefault:"data/relay.db"`

	// ReservationTTL is how long an address reservation survives without a
	// clean disconnect before the release timer reclaims it.
	ReservationTTL time.Duration `env:"RESERVATION_TTL" envDefault:"15s"`

	CORSAllow []string `env:"CORS_ALLOW" envSeparator:"," envDefault:"*"`
}

// Load reads an optional local .env file and parses the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.ReservationTTL <= 0 {
		return Config{}, fmt.Errorf("RESERVATION_TTL must be positive, got %s", cfg.ReservationTTL)
	}
	return cfg, nil
}
