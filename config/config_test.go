package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "html", cfg.Parser)
	assert.Equal(t, 40, cfg.TimeoutSeconds)
	assert.Equal(t, 0, cfg.HistoryDepth)
	assert.True(t, cfg.FollowRedirects)
	assert.Equal(t, 1, cfg.RetryTries)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ROAM_USER_AGENT", "custom-agent/2.0")
	t.Setenv("ROAM_TIMEOUT", "10")
	t.Setenv("ROAM_HISTORY_DEPTH", "5")
	t.Setenv("ROAM_FOLLOW_REDIRECTS", "false")
	t.Setenv("ROAM_RETRY_TRIES", "3")
	t.Setenv("ROAM_RETRY_DELAY_MS", "250")
	t.Setenv("ROAM_RETRY_MULTIPLIER", "2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "custom-agent/2.0", cfg.UserAgent)
	assert.Equal(t, 10, cfg.TimeoutSeconds)
	assert.Equal(t, 5, cfg.HistoryDepth)
	assert.False(t, cfg.FollowRedirects)
	assert.Equal(t, 3, cfg.RetryTries)
}

func TestSettingsConversion(t *testing.T) {
	cfg := Default()
	cfg.UserAgent = "agent/1.0"
	cfg.TimeoutSeconds = 15
	cfg.HistoryDepth = 10
	cfg.FollowRedirects = false
	cfg.RetryTries = 4
	cfg.RetryDelayMS = 500
	cfg.RetryMultiplier = 3

	settings := cfg.Settings()

	assert.Equal(t, "agent/1.0", settings.UserAgent)
	assert.Equal(t, 15*time.Second, settings.Timeout)
	assert.Equal(t, 10, settings.HistoryDepth)
	assert.True(t, settings.DisableRedirects)
	assert.Equal(t, 4, settings.Retry.Tries)
	assert.Equal(t, 500*time.Millisecond, settings.Retry.Delay)
	assert.Equal(t, float64(3), settings.Retry.Multiplier)
}
