package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("RECRUIT_JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 25, cfg.Database.MaxConns)

	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.ClickHouse.Enabled)
	assert.False(t, cfg.Geo.Enabled)

	assert.True(t, cfg.Auth.Enabled)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Contains(t, cfg.Auth.ProtectedPrefixes, "/api/admin/")
	assert.Contains(t, cfg.Auth.ProtectedPrefixes, "/api/analytics/summary")

	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)

	assert.Equal(t, "static/uploads", cfg.Upload.Dir)
	assert.Equal(t, int64(32<<20), cfg.Upload.MaxBytes)

	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("RECRUIT_JWT_SECRET", "test-secret")
	t.Setenv("RECRUIT_HTTP_ADDR", ":9999")
	t.Setenv("RECRUIT_ENV", "production")
	t.Setenv("RECRUIT_DB_PORT", "5433")
	t.Setenv("RECRUIT_REDIS_ENABLED", "true")
	t.Setenv("RECRUIT_TOKEN_TTL", "2h")
	t.Setenv("RECRUIT_RATE_LIMIT_PUBLIC_RPS", "500.5")
	t.Setenv("RECRUIT_AUTH_PROTECTED_PREFIXES", "/api/admin/,/internal/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 500.5, cfg.RateLimit.PublicRPS)
	assert.Equal(t, []string{"/api/admin/", "/internal/"}, cfg.Auth.ProtectedPrefixes)
}

func TestLoadInvalidValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("RECRUIT_JWT_SECRET", "test-secret")
	t.Setenv("RECRUIT_DB_PORT", "not-a-number")
	t.Setenv("RECRUIT_TOKEN_TTL", "soon")
	t.Setenv("RECRUIT_REDIS_ENABLED", "maybe")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.False(t, cfg.Redis.Enabled)
}

func TestValidateRequiresSecretWhenAuthEnabled(t *testing.T) {
	cfg := &Config{Auth: AuthConfig{Enabled: true}}
	assert.Error(t, cfg.Validate())

	cfg.Auth.JWTSecret = "s"
	assert.NoError(t, cfg.Validate())

	cfg = &Config{Auth: AuthConfig{Enabled: false}}
	assert.NoError(t, cfg.Validate())
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db",
		Port:     5432,
		User:     "recruit",
		Password: "pw",
		DBName:   "recruit",
		SSLMode:  "disable",
	}
	assert.Equal(t, "postgres://recruit:pw@db:5432/recruit?sslmode=disable", d.DSN())
}
