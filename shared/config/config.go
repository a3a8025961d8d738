// Package config loads per-service configuration from the environment.
package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config carries the settings every registry service needs. DATABASE_URL has
// no sane global default, so each main supplies its own via Defaults.
type Config struct {
	Port          string `env:"PORT"`
	DatabaseURL   string `env:"DATABASE_URL"`
	RedisAddr     string `env:"REDIS_ADDR,default=localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB,default=0"`
}

// Defaults holds the per-service fallbacks applied when the corresponding
// environment variable is unset.
type Defaults struct {
	Port        string
	DatabaseURL string
}

// Load reads the environment and fills in per-service defaults.
func Load(ctx context.Context, d Defaults) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Port == "" {
		cfg.Port = d.Port
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = d.DatabaseURL
	}
	return &cfg, nil
}
