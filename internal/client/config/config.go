package config

import (
	"fmt"
	"time"
)

// Config holds runtime settings for the end-to-end client.
type Config struct {
	ServerEndpointAddr string
	CallTimeout        time.Duration
	PromptPassword     bool
	Password           string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.CallTimeout = 5 * time.Second
	c.PromptPassword = false
	c.Password = "password123"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseFlags(cfg); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if cfg.CallTimeout <= 0 {
		return nil, fmt.Errorf("call timeout must be positive, got %s", cfg.CallTimeout)
	}
	return cfg, nil
}
