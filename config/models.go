package config

import (
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	OpenAIAPIKey    string        `mapstructure:"openai_api_key"`
	RunAPI          string        `mapstructure:"run_api"`
	Model           string        `mapstructure:"model"`
	APIRoot         string        `mapstructure:"api_root"`
	ListenAddress   string        `mapstructure:"listen_address"`
	UpstreamTimeout time.Duration `mapstructure:"upstream_timeout"`
	LogLevel        string        `mapstructure:"log_level"`
}

// ServeEnabled reports whether RUN_API asks for the HTTP server to be started.
func (c *Config) ServeEnabled() bool {
	return strings.ToLower(c.RunAPI) == "true"
}
