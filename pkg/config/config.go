package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// DefaultUserID is the single local user when no identity is configured.
const DefaultUserID = "00000000-0000-0000-0000-000000000001"

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv    string
	LogLevel  string
	LogFormat string
	UserID    string
	Timezone  string

	// Task database
	DatabaseDriver string
	DatabaseURL    string
	SQLitePath     string

	// Analytics store
	AnalyticsStore string
	MongoURL       string
	MongoDatabase  string
	RedisURL       string

	// Circuit breaker around remote analytics stores
	StoreBreakerFailures uint32
	StoreBreakerTimeout  time.Duration

	// Events
	RabbitMQURL    string
	EventsExchange string
	WorkerQueue    string

	// Worker
	WorkerHealthAddr string

	// HTTP
	HTTPAddr         string
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration

	// MCP
	MCPAddr      string
	MCPAuthToken string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:    getEnv("APP_ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
		UserID:    getEnv("CHRONOSYNC_USER_ID", DefaultUserID),
		Timezone:  getEnv("CHRONOSYNC_TIMEZONE", "Local"),

		DatabaseDriver: getEnv("DATABASE_DRIVER", ""),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		SQLitePath:     getEnv("SQLITE_PATH", ""),

		AnalyticsStore: strings.ToLower(getEnv("ANALYTICS_STORE", "sql")),
		MongoURL:       getEnv("MONGO_URL", "mongodb://localhost:27017"),
		MongoDatabase:  getEnv("MONGO_DATABASE", "chronosync"),
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379/0"),

		StoreBreakerFailures: uint32(getIntEnv("STORE_BREAKER_FAILURES", 5)),
		StoreBreakerTimeout:  getDurationEnv("STORE_BREAKER_TIMEOUT", 30*time.Second),

		RabbitMQURL:    getEnv("RABBITMQ_URL", ""),
		EventsExchange: getEnv("EVENTS_EXCHANGE", "chronosync.events"),
		WorkerQueue:    getEnv("WORKER_QUEUE", "chronosync.worker"),

		WorkerHealthAddr: getEnv("WORKER_HEALTH_ADDR", ""),

		HTTPAddr:         getEnv("HTTP_ADDR", "0.0.0.0:8080"),
		HTTPReadTimeout:  getDurationEnv("HTTP_READ_TIMEOUT", 15*time.Second),
		HTTPWriteTimeout: getDurationEnv("HTTP_WRITE_TIMEOUT", 15*time.Second),
		HTTPIdleTimeout:  getDurationEnv("HTTP_IDLE_TIMEOUT", 60*time.Second),

		MCPAddr:      getEnv("MCP_ADDR", "0.0.0.0:8082"),
		MCPAuthToken: getEnv("MCP_AUTH_TOKEN", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings that would fail later in a less obvious way.
func (c *Config) Validate() error {
	switch c.AnalyticsStore {
	case "sql", "mongo", "redis":
	default:
		return fmt.Errorf("ANALYTICS_STORE must be sql, mongo or redis, got %q", c.AnalyticsStore)
	}
	if _, err := uuid.Parse(c.UserID); err != nil {
		return fmt.Errorf("CHRONOSYNC_USER_ID is not a UUID: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone. Calendar days are computed in it.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("CHRONOSYNC_TIMEZONE: %w", err)
	}
	return loc, nil
}

// DefaultUser returns the configured user ID.
func (c *Config) DefaultUser() uuid.UUID {
	id, err := uuid.Parse(c.UserID)
	if err != nil {
		return uuid.MustParse(DefaultUserID)
	}
	return id
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// EffectiveLogLevel is LOG_LEVEL, raised to debug in development.
func (c *Config) EffectiveLogLevel() string {
	if c.IsDevelopment() && os.Getenv("LOG_LEVEL") == "" {
		return "debug"
	}
	return c.LogLevel
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil && i >= 0 {
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
