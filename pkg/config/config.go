// Package config loads application configuration from the environment,
// with a .env file as an optional local override.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv    string
	LogLevel  string
	LogFormat string

	// Auth backend
	APIBaseURL string
	TokenPath  string

	// Database. DATABASE_URL selects PostgreSQL; otherwise the local
	// SQLite file is used.
	DatabaseURL string
	SQLitePath  string

	// Optional infrastructure. Empty disables the integration.
	RedisURL    string
	RabbitMQURL string

	// StatsCacheTTL bounds how long cached monthly stats may outlive
	// their invalidation events.
	StatsCacheTTL time.Duration
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env if present; a missing file is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:    getEnv("APP_ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		APIBaseURL: getEnv("FOLLOWTHRU_API_BASE_URL", "http://localhost:8000"),
		TokenPath:  getEnv("FOLLOWTHRU_TOKEN_PATH", ""),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		SQLitePath:  getEnv("FOLLOWTHRU_SQLITE_PATH", ""),

		RedisURL:    getEnv("REDIS_URL", ""),
		RabbitMQURL: getEnv("RABBITMQ_URL", ""),

		StatsCacheTTL: getDurationEnv("STATS_CACHE_TTL", 24*time.Hour),
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
