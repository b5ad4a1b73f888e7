package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// dotEnvFile is loaded into the process environment when present.
// Variables already set in the environment are not overridden.
var dotEnvFile = ".env"

// parseEnv overlays MEETINGD_* environment variables. Unset variables keep
// the values from previous layers.
func parseEnv(config *Config) error {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return envconfig.Process(EnvPrefix, config)
}
