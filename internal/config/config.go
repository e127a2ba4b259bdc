package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config interface {
	EnvConfig
	ClientConfig
	StorageConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
	GetAPIBaseURL() string
}

type mainConfig struct {
	EnvVars
	Client
	Storage
}

// New reads the configuration from the process environment, applying the
// defaults declared on each struct.
func New() (Config, error) {
	var c mainConfig
	if err := env.Parse(&c); err != nil {
		return nil, fmt.Errorf("[config.New] failed to parse environment: %w", err)
	}
	return c, nil
}

// NewWithEnvironment is New with an explicit variable set instead of the
// process environment.
func NewWithEnvironment(environment map[string]string) (Config, error) {
	var c mainConfig
	if err := env.ParseWithOptions(&c, env.Options{Environment: environment}); err != nil {
		return nil, fmt.Errorf("[config.NewWithEnvironment] failed to parse environment: %w", err)
	}
	return c, nil
}
