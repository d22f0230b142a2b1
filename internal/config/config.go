package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/freshmarket/marketplace/pkg/database"
)

// Config holds all runtime configuration for the marketplace server
type Config struct {
	HTTPPort    string
	Environment string
	LogLevel    string

	DB database.Config

	// UserRepoDriver selects the user repository implementation:
	// "gorm" (default) or "sql" for the plain database/sql variant.
	UserRepoDriver string

	RedisAddr    string
	KafkaBrokers []string
}

// Load reads configuration from the environment, with a best-effort .env file
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		DB: database.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "marketplace"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		UserRepoDriver: getEnv("USER_REPO_DRIVER", "gorm"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	return cfg
}

// IsDevelopment reports whether the server runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
