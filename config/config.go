package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultModel           = "gpt-4o-search-preview"
	DefaultAPIRoot         = "https://api.openai.com/v1"
	DefaultListenAddress   = "0.0.0.0:5000"
	DefaultUpstreamTimeout = 60 * time.Second
	DefaultLogLevel        = "debug"
)

// envBindings maps config keys to the environment variables that set them.
var envBindings = map[string]string{
	"openai_api_key":   "OPENAI_API_KEY",
	"run_api":          "RUN_API",
	"model":            "OPENAI_MODEL",
	"api_root":         "OPENAI_BASE_URL",
	"listen_address":   "LISTEN_ADDRESS",
	"upstream_timeout": "UPSTREAM_TIMEOUT",
	"log_level":        "LOG_LEVEL",
}

// LoadConfig builds the configuration from defaults, the optional YAML file
// and the environment, in increasing order of precedence.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("run_api", "false")
	v.SetDefault("model", DefaultModel)
	v.SetDefault("api_root", DefaultAPIRoot)
	v.SetDefault("listen_address", DefaultListenAddress)
	v.SetDefault("upstream_timeout", DefaultUpstreamTimeout)
	v.SetDefault("log_level", DefaultLogLevel)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", env, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var configuration Config
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validation
	if configuration.APIRoot == "" {
		return nil, errors.New("api_root is required")
	}
	if configuration.Model == "" {
		return nil, errors.New("model is required")
	}
	if configuration.ListenAddress == "" {
		return nil, errors.New("listen_address is required")
	}
	if configuration.UpstreamTimeout < 0 {
		return nil, fmt.Errorf("upstream_timeout must not be negative, got %s", configuration.UpstreamTimeout)
	}

	// The API key is not validated here: with RUN_API off the process never
	// calls upstream, and a missing key surfaces as an upstream error otherwise.

	return &configuration, nil
}
