package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/darkodi/alias-buddy/internal/logger"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	App       AppConfig
	Log       logger.Config
	RateLimit RateLimitConfig
	Analytics AnalyticsConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// StorageConfig selects and configures the key-value store
type StorageConfig struct {
	Driver string // "memory", "sqlite", "postgres", "redis"
	Path   string // sqlite file
	DSN    string // postgres connection string
	Redis  RedisConfig
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// AppConfig holds application-specific settings
type AppConfig struct {
	BaseURL     string
	Environment string // "development", "staging", "production", "testing"
	MaxQuantity int
}

// RateLimitConfig holds per-client request limits
type RateLimitConfig struct {
	Enabled bool
	Rate    float64 // requests per second
	Burst   int
	Cleanup time.Duration
}

// AnalyticsConfig holds event capture settings. An empty PostHogKey
// sends events to the log only.
type AnalyticsConfig struct {
	PostHogKey  string
	PostHogHost string
	Timeout     time.Duration
}

// Load reads configuration from environment variables, after merging a
// .env file from the working directory when one exists.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getDurationEnv("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Storage: StorageConfig{
			Driver: getEnv("STORAGE_DRIVER", "sqlite"),
			Path:   getEnv("DB_PATH", "./data/aliases.db"),
			DSN:    getEnv("DATABASE_URL", ""),
			Redis: RedisConfig{
				Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
				Password: getEnv("REDIS_PASSWORD", ""),
				DB:       getIntEnv("REDIS_DB", 0),
				Prefix:   getEnv("REDIS_PREFIX", "alias-buddy:"),
			},
		},
		App: AppConfig{
			BaseURL:     getEnv("BASE_URL", ""),
			Environment: getEnv("ENVIRONMENT", "development"),
			MaxQuantity: getIntEnv("MAX_QUANTITY", 1000),
		},
		Log: logger.Config{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
		RateLimit: RateLimitConfig{
			Enabled: getBoolEnv("RATE_LIMIT_ENABLED", true),
			Rate:    getFloatEnv("RATE_LIMIT_RATE", 10),
			Burst:   getIntEnv("RATE_LIMIT_BURST", 20),
			Cleanup: getDurationEnv("RATE_LIMIT_CLEANUP", 5*time.Minute),
		},
		Analytics: AnalyticsConfig{
			PostHogKey:  getEnv("POSTHOG_KEY", ""),
			PostHogHost: getEnv("POSTHOG_HOST", "https://eu.i.posthog.com"),
			Timeout:     getDurationEnv("POSTHOG_TIMEOUT", 5*time.Second),
		},
	}
	cfg.Log.Environment = cfg.App.Environment

	// Set default BaseURL if not provided
	if cfg.App.BaseURL == "" {
		cfg.App.BaseURL = fmt.Sprintf("http://localhost:%s", cfg.Server.Port)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid port: %s (must be 1-65535)", c.Server.Port)
	}

	switch c.Storage.Driver {
	case "memory", "redis":
	case "sqlite":
		if c.Storage.Path == "" {
			return errors.New("database path cannot be empty")
		}
	case "postgres":
		if c.Storage.DSN == "" {
			return errors.New("DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("invalid storage driver: %s (must be memory, sqlite, postgres, or redis)", c.Storage.Driver)
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
		"testing":     true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, production, or testing)", c.App.Environment)
	}

	if c.App.MaxQuantity < 1 {
		return fmt.Errorf("invalid max quantity: %d", c.App.MaxQuantity)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	if c.RateLimit.Enabled && (c.RateLimit.Rate <= 0 || c.RateLimit.Burst < 1) {
		return fmt.Errorf("invalid rate limit: rate=%v burst=%d", c.RateLimit.Rate, c.RateLimit.Burst)
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// ============================================================
// HELPER FUNCTIONS
// ============================================================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

func getIntEnv(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return f
}

func getBoolEnv(key string, defaultValue bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
