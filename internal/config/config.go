// Package config provides configuration loading and validation for the portal server.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds server configuration sourced from the environment.
type Config struct {
	Port        int
	DatabaseURL string
	RedisURL    string // optional; rate limiting is disabled without it
}

// Load reads the server configuration from environment variables.
// DATABASE_URL is required; PORT defaults to 8080.
func Load() (*Config, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set")
	}

	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		port = p
	}

	cfg := &Config{
		Port:        port,
		DatabaseURL: databaseURL,
		RedisURL:    os.Getenv("REDIS_URL"),
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// normalize validates the configuration.
func (c *Config) normalize() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	return nil
}
