package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Catalog     CatalogConfig
	Identity    IdentityConfig
	Idempotency IdempotencyConfig
	LogLevel    string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type CatalogConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

type IdentityConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

type IdempotencyConfig struct {
	ExpectedKeys      int
	FalsePositiveRate float64
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 15),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", ""),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "order_db"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Catalog: CatalogConfig{
			BaseURL:        getEnv("CATALOG_SERVICE_URL", "http://product-service:8080"),
			TimeoutSeconds: getEnvAsInt("CATALOG_TIMEOUT", 10),
		},
		Identity: IdentityConfig{
			BaseURL:        getEnv("IDENTITY_SERVICE_URL", "http://customer-service:8080"),
			TimeoutSeconds: getEnvAsInt("IDENTITY_TIMEOUT", 10),
		},
		Idempotency: IdempotencyConfig{
			ExpectedKeys:      getEnvAsInt("IDEMPOTENCY_CAPACITY", 1_000_000),
			FalsePositiveRate: getEnvAsFloat("IDEMPOTENCY_FP_RATE", 0.0001),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// DSN returns the Postgres connection string, or "" when no database
// host is configured
func (c DatabaseConfig) DSN() string {
	if c.Host == "" {
		return ""
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Catalog.BaseURL == "" {
		return fmt.Errorf("CATALOG_SERVICE_URL is required")
	}

	if c.Identity.BaseURL == "" {
		return fmt.Errorf("IDENTITY_SERVICE_URL is required")
	}

	if c.Catalog.TimeoutSeconds <= 0 {
		return fmt.Errorf("CATALOG_TIMEOUT must be positive")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}
