package config

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	CatalogPath string     `env:"FLAGQUIZ_CATALOG" envDefault:"flags.json"`
	MaxWrong    int        `env:"FLAGQUIZ_MAX_WRONG" envDefault:"3"`
	Seed        uint64     `env:"FLAGQUIZ_SEED" envDefault:"0"`
	LogLevel    slog.Level `env:"LOG_LEVEL" envDefault:"WARN"`
}

// Load reads the environment, after merging in a .env file from the working
// directory if there is one. Variables already set take precedence. Load does
// not call Validate, so command-line flags can still override bad values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}

// Validate checks the final configuration, after flags are applied.
func (c *Config) Validate() error {
	if c.CatalogPath == "" {
		return errors.New("catalog path is required")
	}
	if c.MaxWrong < 1 {
		return fmt.Errorf("max wrong answers must be at least 1, got %d", c.MaxWrong)
	}
	return nil
}
