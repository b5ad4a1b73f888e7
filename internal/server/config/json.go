package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/meetingd/internal/flagx"
	"github.com/dmitrijs2005/meetingd/internal/timex"
)

// JsonConfig is the on-disk shape of the server config file. Interval
// fields use timex.Duration so both "1h" and integer nanoseconds parse.
// Keys absent from the file leave the current values untouched.
type JsonConfig struct {
	EndpointAddrGRPC   string         `json:"endpoint_addr_grpc"`
	DatabaseDSN        string         `json:"database_dsn"`
	SessionBackend     string         `json:"session_backend"`
	BadgerPath         string         `json:"badger_path"`
	SecretKey          string         `json:"secret_key"`
	SessionTTL         timex.Duration `json:"session_ttl"`
	PasswordMinLength  int            `json:"password_min_length"`
	Argon2Time         uint32         `json:"argon2_time"`
	Argon2MemoryKiB    uint32         `json:"argon2_memory_kib"`
	Argon2Threads      uint8          `json:"argon2_threads"`
	MaxParticipants    int            `json:"max_participants"`
	EndWhenEmpty       bool           `json:"end_when_empty"`
	EndWhenHostLeaves  bool           `json:"end_when_host_leaves"`
	EnrollHostOnCreate bool           `json:"enroll_host_on_create"`
	MeetingCodeLength  int            `json:"meeting_code_length"`
	MediaNodes         []MediaNode    `json:"media_nodes"`
	LogLevel           string         `json:"log_level"`
	LogFormat          string         `json:"log_format"`
	OTLPEndpoint       string         `json:"otlp_endpoint"`
	OTLPInsecure       bool           `json:"otlp_insecure"`
}

func toJson(c *Config) *JsonConfig {
	return &JsonConfig{
		EndpointAddrGRPC:   c.EndpointAddrGRPC,
		DatabaseDSN:        c.DatabaseDSN,
		SessionBackend:     c.SessionBackend,
		BadgerPath:         c.BadgerPath,
		SecretKey:          c.SecretKey,
		SessionTTL:         timex.Duration{Duration: c.SessionTTL},
		PasswordMinLength:  c.PasswordMinLength,
		Argon2Time:         c.Argon2Time,
		Argon2MemoryKiB:    c.Argon2MemoryKiB,
		Argon2Threads:      c.Argon2Threads,
		MaxParticipants:    c.MaxParticipants,
		EndWhenEmpty:       c.EndWhenEmpty,
		EndWhenHostLeaves:  c.EndWhenHostLeaves,
		EnrollHostOnCreate: c.EnrollHostOnCreate,
		MeetingCodeLength:  c.MeetingCodeLength,
		MediaNodes:         c.MediaNodes,
		LogLevel:           c.LogLevel,
		LogFormat:          c.LogFormat,
		OTLPEndpoint:       c.OTLPEndpoint,
		OTLPInsecure:       c.OTLPInsecure,
	}
}

// parseJson loads configuration values from a JSON file into config.
//
// The file path comes from the -c/-config flags, falling back to the
// MEETINGD_CONFIG environment variable. If neither is set nothing is loaded.
func parseJson(config *Config) error {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:], EnvPrefix+"_CONFIG")

	// nothing to load
	if jsonConfigFile == "" {
		return nil
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		return err
	}

	c := toJson(config)
	if err := json.Unmarshal(file, c); err != nil {
		return err
	}

	config.EndpointAddrGRPC = c.EndpointAddrGRPC
	config.DatabaseDSN = c.DatabaseDSN
	config.SessionBackend = c.SessionBackend
	config.BadgerPath = c.BadgerPath
	config.SecretKey = c.SecretKey
	config.SessionTTL = c.SessionTTL.Duration
	config.PasswordMinLength = c.PasswordMinLength
	config.Argon2Time = c.Argon2Time
	config.Argon2MemoryKiB = c.Argon2MemoryKiB
	config.Argon2Threads = c.Argon2Threads
	config.MaxParticipants = c.MaxParticipants
	config.EndWhenEmpty = c.EndWhenEmpty
	config.EndWhenHostLeaves = c.EndWhenHostLeaves
	config.EnrollHostOnCreate = c.EnrollHostOnCreate
	config.MeetingCodeLength = c.MeetingCodeLength
	config.MediaNodes = c.MediaNodes
	config.LogLevel = c.LogLevel
	config.LogFormat = c.LogFormat
	config.OTLPEndpoint = c.OTLPEndpoint
	config.OTLPInsecure = c.OTLPInsecure
	return nil
}
