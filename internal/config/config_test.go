package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, kv map[string]any) (*Config, error) {
	t.Helper()
	v := newViper()
	for k, val := range kv {
		v.Set(k, val)
	}
	return FromViper(v)
}

func TestDefaults(t *testing.T) {
	cfg, err := load(t, nil)
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, ":8080", cfg.HTTP.Addr())
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, "cookie", cfg.Session.Store)
	assert.Equal(t, 24*time.Hour, cfg.Session.MaxAge)
	assert.True(t, cfg.Session.Generated)
	assert.Len(t, cfg.Session.Secret, 64)
	assert.False(t, cfg.Features.HidePeerAdmins)
	assert.True(t, cfg.HTTP.MetricsEnabled)
}

func TestProductionRequiresSecret(t *testing.T) {
	_, err := load(t, map[string]any{"APP_ENV": "production"})
	assert.EqualError(t, err, "SESSION_SECRET is not set")

	cfg, err := load(t, map[string]any{
		"APP_ENV":        "production",
		"SESSION_SECRET": "0123456789abcdef0123",
	})
	require.NoError(t, err)
	assert.False(t, cfg.Session.Generated)
	assert.Equal(t, []byte("0123456789abcdef0123"), cfg.Session.Secret)
}

func TestValidation(t *testing.T) {
	cases := map[string]map[string]any{
		"short secret":      {"SESSION_SECRET": "short"},
		"unknown store":     {"SESSION_STORE": "redis"},
		"postgres no dsn":   {"SESSION_STORE": "postgres"},
		"zero timeout":      {"API_TIMEOUT_SECONDS": 0},
		"negative max age":  {"SESSION_MAX_AGE_HOURS": -1},
		"empty api address": {"API_BASE_URL": ""},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := load(t, kv)
			assert.Error(t, err)
		})
	}
}

func TestTrailingSlashTrimmed(t *testing.T) {
	cfg, err := load(t, map[string]any{
		"API_BASE_URL":           "https://erp.example.com/api/",
		"USERS_HIDE_PEER_ADMINS": "true",
		"SESSION_STORE":          "Postgres",
		"DB_DSN":                 "postgres://localhost/erp",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://erp.example.com/api", cfg.API.BaseURL)
	assert.True(t, cfg.Features.HidePeerAdmins)
	assert.Equal(t, "postgres", cfg.Session.Store)
}

