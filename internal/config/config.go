package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the application wires at startup. It is built
// once in main and handed to the components that need it; nothing reads the
// environment after Load returns.
type Config struct {
	DataDir           string
	AdminEmail        string
	AdminPassword     string
	JWTSecret         string
	CartPollInterval  time.Duration
	OrderPollInterval time.Duration
}

// Load reads .env when present, then the process environment. Every key has
// a demo-friendly default; the credential pair is the storefront's hardcoded
// demo login.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		DataDir:           getEnvOrDefault("DATA_DIR", "data"),
		AdminEmail:        getEnvOrDefault("ADMIN_EMAIL", "admin@admin.com"),
		AdminPassword:     getEnvOrDefault("ADMIN_PASSWORD", "admin"),
		JWTSecret:         getEnvOrDefault("JWT_SECRET", "grillhut-dev-secret"),
		CartPollInterval:  getDurationEnv("CART_POLL_INTERVAL", 1, time.Second),
		OrderPollInterval: getDurationEnv("ORDER_POLL_INTERVAL", 2, time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}
