package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrMissingSecret = errors.New("JWT_SECRET must be set")

type Config struct {
	Port     string
	DBDriver string
	DBDSN    string

	JWTSecret       []byte
	TokenTTL        time.Duration
	TokenRevocation bool
	CookieSecure    bool

	AllowUnverifiedDashboard bool
	AllowAdminSignup         bool

	StatsTTL time.Duration
	RedisURL string

	LoginRatePerMin int
	LoginBurst      int

	LogLevel  slog.Level
	LogFormat string
}

// LoadConfig reads the environment, after loading .env if one exists.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to read .env file", "error", err)
	}

	cfg := &Config{
		Port:      getEnv("PORT", "8585"),
		DBDriver:  strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBDSN:     getEnv("DB_DSN", "./storefront.db"),
		RedisURL:  getEnv("REDIS_URL", ""),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "text")),

		TokenTTL: getDuration("TOKEN_TTL", 24*time.Hour),
		StatsTTL: getDuration("STATS_TTL", 5*time.Minute),

		TokenRevocation:          getBool("TOKEN_REVOCATION", false),
		CookieSecure:             getBool("COOKIE_SECURE", true),
		AllowUnverifiedDashboard: getBool("ALLOW_UNVERIFIED_DASHBOARD", false),
		AllowAdminSignup:         getBool("ALLOW_ADMIN_SIGNUP", false),

		LoginRatePerMin: getInt("LOGIN_RATE_PER_MIN", 10),
		LoginBurst:      getInt("LOGIN_BURST", 5),
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if len(secret) < 32 {
		slog.Warn("JWT_SECRET is shorter than 32 bytes. PLEASE SET A LONGER SECRET IN PRODUCTION!")
	}
	cfg.JWTSecret = []byte(secret)

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		slog.Warn("Invalid LOG_LEVEL. Falling back to info.", "LOG_LEVEL", os.Getenv("LOG_LEVEL"))
		cfg.LogLevel = slog.LevelInfo
	}

	// Make sure port is valid
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		slog.Error("Invalid PORT environment variable. Falling back to default.", "PORT", os.Getenv("PORT"))
		cfg.Port = "8585"
	}

	switch cfg.DBDriver {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		slog.Warn("Invalid boolean environment variable. Using default.", "key", key, "value", raw)
		return defaultValue
	}
	return v
}

func getInt(key string, defaultValue int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		slog.Warn("Invalid integer environment variable. Using default.", "key", key, "value", raw)
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		slog.Warn("Invalid duration environment variable. Using default.", "key", key, "value", raw)
		return defaultValue
	}
	return v
}
