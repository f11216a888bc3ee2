package internal

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	Port     int
	LogLevel string

	// Outbox storage for generated artifacts (best-effort hand-off target)
	OutboxPath string // Base directory for exported documents
	OutboxURL  string // Base URL for accessing exported documents

	// Reverse geocoding (Nominatim)
	GeocodeBaseURL   string
	GeocodeUserAgent string
	GeocodeTimeout   time.Duration

	// Metrics endpoint authentication
	// If both are empty, the /metrics endpoint is unprotected.
	MetricsUsername string
	MetricsPassword string
}

func NewConfig() (*Config, error) {
	// Load .env file if it exists (ignored in production)
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("ENV", "development"),
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "debug"),

		OutboxPath: getEnv("OUTBOX_PATH", "./outbox"),
		OutboxURL:  getEnv("OUTBOX_URL", "http://localhost:8080/outbox"),

		GeocodeBaseURL:   getEnv("GEOCODE_BASE_URL", "https://nominatim.openstreetmap.org"),
		GeocodeUserAgent: getEnv("GEOCODE_USER_AGENT", "oficiogen/1.0"),
		GeocodeTimeout:   getEnvDuration("GEOCODE_TIMEOUT", 15*time.Second),

		MetricsUsername: getEnv("METRICS_USERNAME", ""),
		MetricsPassword: getEnv("METRICS_PASSWORD", ""),
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("PORT must be between 1 and 65535, got: %d", cfg.Port)
	}
	if cfg.GeocodeTimeout <= 0 {
		return nil, fmt.Errorf("GEOCODE_TIMEOUT must be positive, got: %s", cfg.GeocodeTimeout)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
