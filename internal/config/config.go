package config

import (
	"fmt"
	"os"
)

type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	// AuthJWKSURL switches token verification to an external identity
	// provider's published keys. Empty means HMAC with JWTSecret.
	AuthJWKSURL string
	// StoreBackend selects the storage implementation: "postgres" or the
	// non-persistent "memory" demo store.
	StoreBackend string
	Environment  string
	LogLevel     string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:         getEnvWithDefault("PORT", "8080"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		AuthJWKSURL:  os.Getenv("AUTH_JWKS_URL"),
		StoreBackend: getEnvWithDefault("STORE_BACKEND", "postgres"),
		Environment:  getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:     getEnvWithDefault("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.StoreBackend == "postgres" && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.StoreBackend != "postgres" && cfg.StoreBackend != "memory" {
		return nil, fmt.Errorf("STORE_BACKEND must be postgres or memory, got %q", cfg.StoreBackend)
	}
	if cfg.JWTSecret == "" && cfg.AuthJWKSURL == "" {
		return nil, fmt.Errorf("JWT_SECRET is required when AUTH_JWKS_URL is not set")
	}

	return cfg, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
