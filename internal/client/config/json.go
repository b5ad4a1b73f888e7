package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/meetingd/internal/flagx"
	"github.com/dmitrijs2005/meetingd/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	CallTimeout        timex.Duration `json:"call_timeout"`
}

// parseJson overlays cfg with values from the JSON file named by -c/-config.
// Keys missing from the file keep their current values.
func parseJson(cfg *Config) error {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:], "")
	if jsonConfigFile == "" {
		return nil
	}

	jc := JsonConfig{
		ServerEndpointAddr: cfg.ServerEndpointAddr,
		CallTimeout:        timex.Duration{Duration: cfg.CallTimeout},
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	cfg.CallTimeout = jc.CallTimeout.Duration
	return nil
}
