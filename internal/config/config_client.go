package config

import (
	"fmt"
	"time"
)

// ClientConfig is the configuration view used by the CLI client.
type ClientConfig struct {
	// BaseURL is the address of the energy-keeper HTTP API.
	BaseURL string
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
	// LogLevel and LogFile configure the client's file logger.
	LogLevel string
	LogFile  string
	// Command holds the positional arguments (sub-command and its operands).
	Command []string
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
func GetClientConfig(args []string) (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withDefaults().
		withDotEnv(".env").
		withEnv().
		withFlags(args).
		withJSON().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		BaseURL:        cfg.Adapter.HTTPAddress,
		RequestTimeout: cfg.Adapter.RequestTimeout,
		LogLevel:       cfg.Log.Level,
		LogFile:        cfg.Log.File,
		Command:        cfg.Args(),
	}

	return clientCfg, clientCfg.validate()
}
