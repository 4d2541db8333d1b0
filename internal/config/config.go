// Package config loads process configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings the CLI reads before flags are applied.
type Config struct {
	DBPath   string `env:"GAMECOMPLETION_DB"`
	Locale   string `env:"GAMECOMPLETION_LOCALE"    envDefault:"en-US"`
	LogLevel string `env:"GAMECOMPLETION_LOG_LEVEL" envDefault:"info"`
}

// Load parses Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
