package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8585", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "./storefront.db", cfg.DBDSN)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 5*time.Minute, cfg.StatsTTL)
	assert.True(t, cfg.CookieSecure)
	assert.False(t, cfg.TokenRevocation)
	assert.False(t, cfg.AllowUnverifiedDashboard)
	assert.False(t, cfg.AllowAdminSignup)
	assert.Equal(t, 10, cfg.LoginRatePerMin)
	assert.Equal(t, 5, cfg.LoginBurst)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "9000")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("TOKEN_REVOCATION", "true")
	t.Setenv("COOKIE_SECURE", "false")
	t.Setenv("ALLOW_UNVERIFIED_DASHBOARD", "1")
	t.Setenv("LOGIN_BURST", "20")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.TokenRevocation)
	assert.False(t, cfg.CookieSecure)
	assert.True(t, cfg.AllowUnverifiedDashboard)
	assert.Equal(t, 20, cfg.LoginBurst)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoadConfigFallsBackOnBadValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "eighty")
	t.Setenv("TOKEN_TTL", "forever")
	t.Setenv("COOKIE_SECURE", "maybe")
	t.Setenv("LOGIN_RATE_PER_MIN", "-3")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8585", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, 10, cfg.LoginRatePerMin)
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_DRIVER", "oracle")

	_, err := LoadConfig()
	assert.Error(t, err)
}
