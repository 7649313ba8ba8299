// Package config loads configuration from environment variables.
package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all vault discovery configuration.
type Config struct {
	// Vault API
	Enabled     bool   `env:"OBSIDIAN_ENABLED, default=false"`
	APIKey      string `env:"OBSIDIAN_API_KEY"`
	Host        string `env:"OBSIDIAN_HOST, default=127.0.0.1"`
	Port        int    `env:"OBSIDIAN_PORT, default=27124"`
	InsecureTLS bool   `env:"OBSIDIAN_INSECURE_TLS, default=false"`

	// Transport
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT, default=30s"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	LogFormat string `env:"LOG_FORMAT, default=console"`

	// Metrics (watch mode only; empty disables the endpoint)
	MetricsAddr string `env:"METRICS_ADDR"`
}

// Load reads configuration from environment variables.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// BaseURL builds the vault endpoint root. A scheme carried on the host
// wins; a bare host defaults to https.
func (c *Config) BaseURL() string {
	scheme := "https"
	host := c.Host
	switch {
	case strings.HasPrefix(host, "http://"):
		scheme = "http"
		host = strings.TrimPrefix(host, "http://")
	case strings.HasPrefix(host, "https://"):
		host = strings.TrimPrefix(host, "https://")
	}
	return fmt.Sprintf("%s://%s:%d/vault/", scheme, host, c.Port)
}
