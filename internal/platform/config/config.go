// Copyright (c) 2026 Taskhive. All rights reserved.
// Author: dev@taskhive.io

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, tokens, limiter) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Taskhive API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"PORT"        envDefault:"3000"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Debug       bool   `env:"DEBUG"       envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./migrations"`

	// Key-Value store (Redis). Optional: when empty, rate-limit counters
	// stay in process memory.
	RedisURL string `env:"REDIS_URL"`

	// Symmetric secret for signing access tokens.
	JWTSecret string `env:"JWT_SECRET,required"`

	// Token lifetimes. RefreshTokenTTL must exceed AccessTokenTTL.
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL"  envDefault:"1h"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"24h"`

	// Request-rate limiting (per client identity, fixed trailing window).
	RateLimitMaxRequests int           `env:"RATE_LIMIT_MAX_REQUESTS" envDefault:"100"`
	RateLimitWindow      time.Duration `env:"RATE_LIMIT_WINDOW"       envDefault:"60s"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct and validates
// cross-field invariants.
func Load() (*Config, error) {
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.RefreshTokenTTL <= cfg.AccessTokenTTL {
		return nil, fmt.Errorf("config: REFRESH_TOKEN_TTL (%s) must exceed ACCESS_TOKEN_TTL (%s)",
			cfg.RefreshTokenTTL, cfg.AccessTokenTTL)
	}

	if cfg.RateLimitMaxRequests < 1 || cfg.RateLimitWindow <= 0 {
		return nil, fmt.Errorf("config: invalid rate limit settings (%d per %s)",
			cfg.RateLimitMaxRequests, cfg.RateLimitWindow)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
