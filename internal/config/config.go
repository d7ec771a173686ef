package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"budgetdash/internal/logger"
)

// DevSessionSecret is used when SESSION_SECRET is unset outside production.
const DevSessionSecret = "fallback-secret-key-for-dev-only"

// Config holds application configuration
type Config struct {
	Env string

	// Server
	Port string

	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string

	// AutoMigrate applies pending SQL migrations when the API starts.
	AutoMigrate bool

	// Session
	SessionSecret string
	SessionTTL    time.Duration
	CookieSecure  bool
}

// Load loads configuration from environment variables, reading a .env file first
// if one is present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Get().Debug(".env file not found, using process environment")
	}

	config := &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8080"),

		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "budgetdash"),
		DBPassword: getEnv("DB_PASSWORD", "budgetdash"),
		DBName:     getEnv("DB_NAME", "budgetdash"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBPath:     getEnv("DB_PATH", "budgetdash.db"),

		SessionSecret: getEnv("SESSION_SECRET", DevSessionSecret),
	}

	switch config.DBDriver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (use postgres or sqlite)", config.DBDriver)
	}

	if config.Env == "production" && config.SessionSecret == DevSessionSecret {
		return nil, fmt.Errorf("SESSION_SECRET must be set in production")
	}

	ttlStr := getEnv("SESSION_TTL", "24h")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil || ttl <= 0 {
		logger.Get().Warnf("invalid SESSION_TTL value '%s', falling back to 24h", ttlStr)
		ttl = 24 * time.Hour
	}
	config.SessionTTL = ttl

	config.CookieSecure = getBool("COOKIE_SECURE", config.Env == "production")
	config.AutoMigrate = getBool("AUTO_MIGRATE", true)

	return config, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		logger.Get().Warnf("invalid %s value '%s', falling back to %t", key, value, defaultValue)
		return defaultValue
	}
	return b
}
