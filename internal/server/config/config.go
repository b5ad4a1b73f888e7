// Package config handles configuration for the meetingd server,
// including defaults, JSON overlay, environment variables and command-line flags.
package config

import (
	"fmt"
	"time"
)

// EnvPrefix prefixes every environment variable read by the server.
const EnvPrefix = "MEETINGD"

// Config holds runtime settings for the meetingd server.
//
// An empty DatabaseDSN selects the in-memory store. SessionBackend "badger"
// keeps sessions in a Badger directory at BadgerPath regardless of the store.
type Config struct {
	EndpointAddrGRPC string `envconfig:"ENDPOINT_ADDR_GRPC"`
	DatabaseDSN      string `envconfig:"DATABASE_DSN"`
	SessionBackend   string `envconfig:"SESSION_BACKEND"`
	BadgerPath       string `envconfig:"BADGER_PATH"`

	SecretKey         string        `envconfig:"SECRET_KEY"`
	SessionTTL        time.Duration `envconfig:"SESSION_TTL"`
	PasswordMinLength int           `envconfig:"PASSWORD_MIN_LENGTH"`
	Argon2Time        uint32        `envconfig:"ARGON2_TIME"`
	Argon2MemoryKiB   uint32        `envconfig:"ARGON2_MEMORY_KIB"`
	Argon2Threads     uint8         `envconfig:"ARGON2_THREADS"`

	MaxParticipants    int  `envconfig:"MAX_PARTICIPANTS"`
	EndWhenEmpty       bool `envconfig:"END_WHEN_EMPTY"`
	EndWhenHostLeaves  bool `envconfig:"END_WHEN_HOST_LEAVES"`
	EnrollHostOnCreate bool `envconfig:"ENROLL_HOST_ON_CREATE"`
	MeetingCodeLength  int  `envconfig:"MEETING_CODE_LENGTH"`

	MediaNodes MediaNodes `envconfig:"MEDIA_NODES"`

	LogLevel     string `envconfig:"LOG_LEVEL"`
	LogFormat    string `envconfig:"LOG_FORMAT"`
	OTLPEndpoint string `envconfig:"OTLP_ENDPOINT"`
	OTLPInsecure bool   `envconfig:"OTLP_INSECURE"`
}

// Session backends accepted in SessionBackend.
const (
	SessionBackendStore  = ""
	SessionBackendBadger = "badger"
)

// LoadDefaults populates Config with development defaults.
// NOTE: SecretKey must be overridden outside development.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDSN = ""
	c.SessionBackend = SessionBackendStore
	c.BadgerPath = "data/sessions"
	c.SecretKey = "secretKey"
	c.SessionTTL = time.Hour
	c.PasswordMinLength = 8
	c.Argon2Time = 1
	c.Argon2MemoryKiB = 64 * 1024
	c.Argon2Threads = 4
	c.MaxParticipants = 100
	c.EndWhenEmpty = true
	c.EndWhenHostLeaves = false
	c.EnrollHostOnCreate = true
	c.MeetingCodeLength = 8
	c.MediaNodes = MediaNodes{{Host: "127.0.0.1", Port: 40000, Region: "local"}}
	c.LogLevel = "info"
	c.LogFormat = "json"
	c.OTLPEndpoint = ""
	c.OTLPInsecure = true
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.EndpointAddrGRPC == "" {
		return fmt.Errorf("endpoint address is empty")
	}
	if c.SecretKey == "" {
		return fmt.Errorf("secret key is empty")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session ttl must be positive, got %s", c.SessionTTL)
	}
	if c.Argon2Time == 0 {
		return fmt.Errorf("argon2 time must be at least 1")
	}
	if c.Argon2Threads == 0 {
		return fmt.Errorf("argon2 threads must be at least 1")
	}
	if c.Argon2MemoryKiB < 8*uint32(c.Argon2Threads) {
		return fmt.Errorf("argon2 memory must be at least %d KiB for %d threads", 8*uint32(c.Argon2Threads), c.Argon2Threads)
	}
	if c.MaxParticipants <= 0 {
		return fmt.Errorf("max participants must be positive, got %d", c.MaxParticipants)
	}
	if c.MeetingCodeLength < 4 {
		return fmt.Errorf("meeting code length must be at least 4, got %d", c.MeetingCodeLength)
	}
	if len(c.MediaNodes) == 0 {
		return fmt.Errorf("no media nodes configured")
	}
	for i, n := range c.MediaNodes {
		if err := n.Validate(); err != nil {
			return fmt.Errorf("media node %d: %w", i, err)
		}
	}
	switch c.SessionBackend {
	case SessionBackendStore:
	case SessionBackendBadger:
		if c.BadgerPath == "" {
			return fmt.Errorf("badger session backend needs a path")
		}
	default:
		return fmt.Errorf("unknown session backend %q", c.SessionBackend)
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}
	if err := parseFlags(cfg); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
