// Package config loads application configuration from the environment.
// A .env file is honored when present so local runs don't need exported
// variables; real deployments set the environment directly.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DatabaseConfig holds connection settings for the Postgres pool.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	// Timeout bounds every single store call.
	Timeout time.Duration
}

// DSN renders the pgx connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name)
}

// AuthConfig holds token signing settings.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// Config is the top-level application configuration.
type Config struct {
	Port          string
	CollectorAddr string // OTLP collector; empty disables the gRPC exporters
	Database      DatabaseConfig
	Auth          AuthConfig
}

// Load reads the environment (and an optional .env file) into a Config.
// All problems are collected and reported in one error so a misconfigured
// deployment fails with the full list instead of one variable at a time.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var errs []string

	cfg := &Config{
		Port:          optionalEnv("PORT", "8080"),
		CollectorAddr: optionalEnv("OTEL_COLLECTOR_ADDR", "otel-collector:4317"),
		Database: DatabaseConfig{
			Host:     optionalEnv("DB_HOST", "localhost"),
			Port:     optionalEnvInt("DB_PORT", 5432, &errs),
			User:     requiredEnv("DB_USER", &errs),
			Password: requiredEnv("DB_PASSWORD", &errs),
			Name:     optionalEnv("DB_NAME", "weather_app"),
			Timeout:  optionalEnvDuration("DB_TIMEOUT", 5*time.Second, &errs),
		},
		Auth: AuthConfig{
			JWTSecret: requiredEnv("JWT_SECRET", &errs),
			TokenTTL:  optionalEnvDuration("JWT_TTL", 24*time.Hour, &errs),
		},
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errs, "\n- "))
	}
	return cfg, nil
}

func requiredEnv(key string, errs *[]string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		*errs = append(*errs, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

func optionalEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func optionalEnvInt(key string, fallback int, errs *[]string) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected integer, got %q", key, value))
		return fallback
	}
	return n
}

func optionalEnvDuration(key string, fallback time.Duration, errs *[]string) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected duration, got %q", key, value))
		return fallback
	}
	return d
}
