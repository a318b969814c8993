package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// CasdoorConfig holds the settings for the external identity service.
type CasdoorConfig struct {
	Endpoint     string
	ClientID     string
	ClientSecret string
	Cert         string
	Organization string
	Application  string
}

type Config struct {
	Environment string
	Port        string
	LogLevel    slog.Level

	// StoreDriver selects the record store backend: "redis" or "postgres".
	StoreDriver string
	RedisURL    string
	DatabaseURL string

	// AccountDomain is appended to account IDs to form the synthetic
	// identity handle (e.g. 1001@portal.com). No real mailbox exists.
	AccountDomain string

	SessionTTL time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	Casdoor CasdoorConfig
}

// LoadConfig reads configuration from the environment, with an optional
// .env file for local development.
func LoadConfig() (*Config, error) {
	// Missing .env is fine in deployed environments.
	_ = godotenv.Load()

	cfg := &Config{
		Environment:   getEnv("ENVIRONMENT", "development"),
		Port:          getEnv("PORT", "8080"),
		LogLevel:      parseLogLevel(getEnv("LOG_LEVEL", "info")),
		StoreDriver:   getEnv("STORE_DRIVER", "redis"),
		RedisURL:      getEnv("REDIS_URL", "redis://localhost:6379/0"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		AccountDomain: getEnv("ACCOUNT_DOMAIN", "portal.com"),
		SessionTTL:    parseDuration(getEnv("SESSION_TTL", "24h")),
		KafkaTopic:    getEnv("KAFKA_TOPIC", "portal.events"),
		Casdoor: CasdoorConfig{
			Endpoint:     os.Getenv("CASDOOR_ENDPOINT"),
			ClientID:     os.Getenv("CASDOOR_CLIENT_ID"),
			ClientSecret: os.Getenv("CASDOOR_CLIENT_SECRET"),
			Cert:         os.Getenv("CASDOOR_CERT"),
			Organization: getEnv("CASDOOR_ORGANIZATION", "school"),
			Application:  getEnv("CASDOOR_APPLICATION", "portal"),
		},
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	switch cfg.StoreDriver {
	case "redis":
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("REDIS_URL is required for the redis store driver")
		}
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres store driver")
		}
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}
