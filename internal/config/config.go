// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/olegiv/ocms-breadcrumbs/internal/breadcrumbs"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ServerHost string `env:"BREADCRUMBS_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"BREADCRUMBS_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"BREADCRUMBS_ENV" envDefault:"development"`
	LogLevel   string `env:"BREADCRUMBS_LOG_LEVEL" envDefault:"info"`
	BaseURL    string `env:"BREADCRUMBS_BASE_URL"` // Absolute site URL used in JSON-LD output

	// Trail defaults applied to every request-scoped trail
	Classes     string `env:"BREADCRUMBS_CLASSES" envDefault:"breadcrumbs"`
	Divider     string `env:"BREADCRUMBS_DIVIDER" envDefault:"/"`
	NoDivider   bool   `env:"BREADCRUMBS_NO_DIVIDER" envDefault:"false"`
	ListElement string `env:"BREADCRUMBS_LIST_ELEMENT" envDefault:"ul"`
	HomeLabel   string `env:"BREADCRUMBS_HOME_LABEL" envDefault:"Home"`

	// Cache configuration
	RedisURL     string `env:"BREADCRUMBS_REDIS_URL"`                                // Optional Redis URL for distributed caching
	CachePrefix  string `env:"BREADCRUMBS_CACHE_PREFIX" envDefault:"breadcrumbs:"`   // Redis key prefix
	CacheTTL     int    `env:"BREADCRUMBS_CACHE_TTL" envDefault:"3600"`              // Default cache TTL in seconds
	CacheMaxSize int    `env:"BREADCRUMBS_CACHE_MAX_SIZE" envDefault:"10000"`        // Max memory cache entries

	// Render API rate limiting
	RateLimitRPS   float64 `env:"BREADCRUMBS_RATE_LIMIT_RPS" envDefault:"10"`
	RateLimitBurst int     `env:"BREADCRUMBS_RATE_LIMIT_BURST" envDefault:"20"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// CacheTTLDuration returns CacheTTL as a time.Duration.
func (c Config) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// TrailOptions returns the options for building request-scoped trails.
func (c Config) TrailOptions() breadcrumbs.Options {
	return breadcrumbs.Options{
		Classes:     strings.Fields(c.Classes),
		Divider:     c.Divider,
		NoDivider:   c.NoDivider,
		ListElement: c.ListElement,
	}
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.ServerPort < 1 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("BREADCRUMBS_SERVER_PORT must be between 1 and 65535, got %d", cfg.ServerPort)
	}

	if _, err := breadcrumbs.NewWithOptions(cfg.TrailOptions()); err != nil {
		return nil, fmt.Errorf("BREADCRUMBS_LIST_ELEMENT: %w", err)
	}

	if cfg.CacheTTL < 0 {
		return nil, fmt.Errorf("BREADCRUMBS_CACHE_TTL must not be negative, got %d", cfg.CacheTTL)
	}

	return cfg, nil
}
