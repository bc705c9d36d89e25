// internal/infrastructure/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string
	LogLevel   string

	// Database
	Database Database

	// Metrics
	MetricsNamespace string
	MetricsTextfile  string

	// Scheduling
	UpcomingWindow time.Duration
}

// Database selects and locates the relational store
type Database struct {
	Driver string
	Path   string // sqlite file, ":memory:" for an in-memory store
	DSN    string // postgres connection string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion: getEnv("APP_VERSION", "1.0.0"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		Database: Database{
			Driver: strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
			Path:   getEnv("DB_PATH", "flight_management.db"),
			DSN:    getEnv("DATABASE_URL", ""),
		},

		MetricsNamespace: getEnv("METRICS_NAMESPACE", "flightops"),
		MetricsTextfile:  getEnv("METRICS_TEXTFILE", ""),

		UpcomingWindow: time.Duration(getEnvAsInt("UPCOMING_WINDOW_HOURS", 24)) * time.Hour,
	}

	return config, nil
}

// Validate checks the settings that would otherwise fail late
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("DB_PATH is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want %s or %s)", c.Database.Driver, DriverSQLite, DriverPostgres)
	}
	if c.UpcomingWindow <= 0 {
		return fmt.Errorf("UPCOMING_WINDOW_HOURS must be positive")
	}
	return nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
