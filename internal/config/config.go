package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Addr             string
	DBDriver         string
	DBPath           string
	DatabaseURL      string
	JWTSecret        string
	TokenTTLHours    int
	LogLevel         string
	StatsWorkerCount int
	StatsQueueSize   int
	CORSOrigins      []string
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:             envOr("ADDR", ":8080"),
		DBDriver:         strings.ToLower(envOr("DB_DRIVER", DriverSQLite)),
		DBPath:           envOr("DB_PATH", "file:drillforge.db"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		JWTSecret:        envOr("JWT_SECRET", "dev-secret-change-me"),
		TokenTTLHours:    envIntOr("TOKEN_TTL_HOURS", 8),
		LogLevel:         envOr("LOG_LEVEL", "INFO"),
		StatsWorkerCount: envIntOr("STATS_WORKER_COUNT", 2),
		StatsQueueSize:   envIntOr("STATS_QUEUE_SIZE", 64),
		CORSOrigins:      splitList(envOr("CORS_ORIGINS", "http://localhost:3000")),
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	switch c.DBDriver {
	case DriverSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("DB_PATH cannot be empty when DB_DRIVER=sqlite")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL cannot be empty when DB_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.DBDriver)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET cannot be empty")
	}
	if c.TokenTTLHours <= 0 {
		return fmt.Errorf("TOKEN_TTL_HOURS must be positive")
	}
	if c.StatsWorkerCount <= 0 {
		return fmt.Errorf("STATS_WORKER_COUNT must be positive")
	}
	if c.StatsQueueSize <= 0 {
		return fmt.Errorf("STATS_QUEUE_SIZE must be positive")
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
