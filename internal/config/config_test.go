package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	env := map[string]string{
		"APP_NAME":           "jobboard",
		"APP_ENV":            "test",
		"HTTP_PORT":          "8080",
		"DB_HOST":            "localhost",
		"DB_PORT":            "5432",
		"DB_NAME":            "jobboard",
		"DB_USER":            "postgres",
		"JWT_ACCESS_SECRET":  "access",
		"JWT_REFRESH_SECRET": "refresh",
	}
	for k, v := range env {
		t.Setenv(k, v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.HTTPPort)
	assert.Equal(t, "disable", cfg.Database.DBSSLMode)
	assert.Equal(t, int32(10), cfg.Database.PoolMaxConns)
	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, "6379", cfg.Redis.Port)
	assert.Equal(t, 600*time.Second, cfg.Redis.TTL)
	assert.Equal(t, "jobboard:", cfg.Redis.Prefix)
	assert.Equal(t, 24*time.Hour, cfg.JWT.AccessExpiresIn)
	assert.Equal(t, 60*time.Second, cfg.Analytics.CacheTTL)
	assert.Equal(t, "Administrator", cfg.Seed.AdminName)
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("HTTP_PORT", "")
	t.Setenv("JWT_ACCESS_SECRET", " ")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errMissingRequiredEnv))
	assert.Contains(t, err.Error(), "HTTP_PORT")
	assert.Contains(t, err.Error(), "JWT_ACCESS_SECRET")
}

func TestLoad_InvalidValues(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_POOL_MAX_CONNS", "many")
	t.Setenv("ANALYTICS_CACHE_TTL", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errInvalidEnv))
	assert.Contains(t, err.Error(), "DB_POOL_MAX_CONNS")
	assert.Contains(t, err.Error(), "ANALYTICS_CACHE_TTL")
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("REDIS_TTL", "30")
	t.Setenv("JWT_ACCESS_EXPIRES_IN", "15m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiresIn)
}
