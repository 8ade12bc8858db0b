package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.HTTP.Host)
	assert.Equal(t, 8080, cfg.HTTP.Port)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)

	assert.Equal(t, 5, cfg.Cooking.MinMinutes)
	assert.Equal(t, 10, cfg.Cooking.MaxMinutes)

	// Cache and messaging default to their noop drivers until enabled.
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, "noop", cfg.Cache.Driver)
	assert.False(t, cfg.Messaging.Enabled)
	assert.Equal(t, "noop", cfg.Messaging.Driver)

	assert.Equal(t, "tableside", cfg.Observability.ServiceName)
	assert.Equal(t, "/metrics", cfg.Observability.PrometheusPath)

	assert.Equal(t, "http://localhost:8080", cfg.LoadTest.BaseURL)
	assert.Equal(t, 10, cfg.LoadTest.Workers)
}

func TestNewReadsCookTimeOverrides(t *testing.T) {
	t.Setenv("COOK_TIME_MIN", "3")
	t.Setenv("COOK_TIME_MAX", "20")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Cooking.MinMinutes)
	assert.Equal(t, 20, cfg.Cooking.MaxMinutes)
}

func TestNewAllowsSingleCookTimeOverride(t *testing.T) {
	t.Setenv("COOK_TIME_MAX", "30")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Cooking.MinMinutes)
	assert.Equal(t, 30, cfg.Cooking.MaxMinutes)
}

func TestNewRejectsInvertedCookTimeBounds(t *testing.T) {
	t.Setenv("COOK_TIME_MIN", "15")
	t.Setenv("COOK_TIME_MAX", "10")

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COOK_TIME_MAX")
}

func TestNewRejectsNonPositiveCookTimeMin(t *testing.T) {
	t.Setenv("COOK_TIME_MIN", "0")

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COOK_TIME_MIN")
}

func TestNewRejectsUnsupportedDatabaseDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestNewHTTPOverrides(t *testing.T) {
	t.Setenv("HTTP_HOST", "0.0.0.0")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestNewMalformedIntFallsBackToDefault(t *testing.T) {
	t.Setenv("HTTP_PORT", "not-a-port")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTP.Port)
}

func TestNewPoolFloorsAtDefault(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "-1")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
}

func TestNewCacheTTLOverride(t *testing.T) {
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("CACHE_DEFAULT_TTL", "30s")

	cfg, err := New()
	require.NoError(t, err)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "redis", cfg.Cache.Driver)
	assert.Equal(t, 30*time.Second, cfg.Cache.DefaultTTL)
}
