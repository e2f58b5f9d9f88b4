package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port        string
	DatabaseDSN string
	Env         string
	// AdminPassword is the back-office administrator password (bcrypt-hashed
	// at startup, never kept in clear past boot).
	AdminPassword string
	// PriorityThresholdMin is the wait time in minutes after which an active
	// order is flagged urgent on the dashboard.
	PriorityThresholdMin int
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by user) > default.
func Load() Config {
	cfg := Config{}
	cfg.Port = getEnv("PORT", "8080")
	cfg.DatabaseDSN = getEnv("DATABASE_DSN", "file:snack.db")
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.AdminPassword = getEnv("ADMIN_PASSWORD", "admin123")
	cfg.PriorityThresholdMin = ParseInt("PRIORITY_THRESHOLD_MIN", 15)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ParseBool reads an env var as bool with default.
func ParseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %s", key, v)
			return def
		}
		return b
	}
	return def
}

// ParseInt reads an env var as int with default.
func ParseInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid integer for %s: %s", key, v)
			return def
		}
		return n
	}
	return def
}
