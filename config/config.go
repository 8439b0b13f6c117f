// Package config loads browser defaults from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/roamlib/roam"
	"github.com/roamlib/roam/retry"
)

// Config holds environment-derived browser configuration.
type Config struct {
	UserAgent       string  `envconfig:"ROAM_USER_AGENT"`
	Parser          string  `envconfig:"ROAM_PARSER" default:"html"`
	TimeoutSeconds  int     `envconfig:"ROAM_TIMEOUT" default:"40"`
	HistoryDepth    int     `envconfig:"ROAM_HISTORY_DEPTH" default:"0"`
	FollowRedirects bool    `envconfig:"ROAM_FOLLOW_REDIRECTS" default:"true"`
	Proxy           string  `envconfig:"ROAM_PROXY"`
	RateLimit       float64 `envconfig:"ROAM_RATE_LIMIT" default:"0"`
	RetryTries      int     `envconfig:"ROAM_RETRY_TRIES" default:"1"`
	RetryDelayMS    int     `envconfig:"ROAM_RETRY_DELAY_MS" default:"0"`
	RetryMultiplier float64 `envconfig:"ROAM_RETRY_MULTIPLIER" default:"1"`
	LogLevel        string  `envconfig:"ROAM_LOG_LEVEL" default:"info"`
	LogDev          bool    `envconfig:"ROAM_LOG_DEV" default:"false"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from the environment or returns the
// defaults when loading fails.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Parser:          "html",
		TimeoutSeconds:  40,
		FollowRedirects: true,
		RetryTries:      1,
		RetryMultiplier: 1,
		LogLevel:        "info",
	}
}

// Settings converts the configuration into browser settings.
func (c *Config) Settings() roam.Settings {
	return roam.Settings{
		Parser:           c.Parser,
		UserAgent:        c.UserAgent,
		HistoryDepth:     c.HistoryDepth,
		Timeout:          time.Duration(c.TimeoutSeconds) * time.Second,
		DisableRedirects: !c.FollowRedirects,
		Proxy:            c.Proxy,
		RateLimit:        c.RateLimit,
		Retry: retry.Policy{
			Tries:      c.RetryTries,
			Delay:      time.Duration(c.RetryDelayMS) * time.Millisecond,
			Multiplier: c.RetryMultiplier,
		},
	}
}
