package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "APP_NAME", "PORT", "APP_PORT", "LOG_LEVEL", "UPSTREAM_BASE_URL", "UPSTREAM_TIMEOUT_SECONDS", "SITE_PROFILE_PATH", "CORS_ALLOW_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "animexin-api", cfg.AppName)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "", cfg.UpstreamBaseURL)
	assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, "*", cfg.CORSAllowOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("UPSTREAM_BASE_URL", " https://mirror.example/ ")
	t.Setenv("UPSTREAM_TIMEOUT_SECONDS", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "https://mirror.example", cfg.UpstreamBaseURL)
	assert.Equal(t, 3*time.Second, cfg.UpstreamTimeout)
}

func TestLoadPortPrefersPORT(t *testing.T) {
	t.Setenv("PORT", "7000")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Port)
}

func TestLoadRejectsUnknownLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "LOUD")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}

func TestLoadNonPositiveTimeoutFallsBack(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("UPSTREAM_TIMEOUT_SECONDS", "-4")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
}
