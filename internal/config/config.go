// Package config provides application configuration loading from environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gitlab.com/yelinaung/money-manager/internal/logger"
)

// MinSessionSecretLength is the shortest accepted SESSION_SECRET.
const MinSessionSecretLength = 32

// MinLogHashSaltLength is the shortest accepted LOG_HASH_SALT.
const MinLogHashSaltLength = logger.MinSaltLength

// Config holds all configuration for the application.
type Config struct {
	DatabaseURL   string
	DatabaseName  string
	GeminiAPIKey  string
	GeminiModel   string
	HTTPAddr      string
	SessionSecret string
	LogHashSalt   string
	SessionTTL    time.Duration
	SecureCookies bool
	Timezone      string
	LogLevel      string
	LogFormat     string

	// Telemetry
	OTelExporter string
	OTelProtocol string
	ServiceName  string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		DatabaseName:  os.Getenv("DATABASE_NAME"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   os.Getenv("GEMINI_MODEL"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		LogHashSalt:   os.Getenv("LOG_HASH_SALT"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		HTTPAddr:      getEnv("HTTP_ADDR", ":8080"),
		LogFormat:     getEnv("LOG_FORMAT", "console"),
		OTelExporter:  strings.ToLower(getEnv("OTEL_EXPORTER", "none")),
		OTelProtocol:  strings.ToLower(getEnv("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc")),
		ServiceName:   getEnv("OTEL_SERVICE_NAME", "money-manager"),
	}

	cfg.SecureCookies = os.Getenv("SECURE_COOKIES") == "true"

	cfg.SessionTTL = 24 * time.Hour
	if ttlStr := os.Getenv("SESSION_TTL"); ttlStr != "" {
		if d, err := time.ParseDuration(ttlStr); err == nil && d > 0 {
			cfg.SessionTTL = d
		}
	}

	cfg.Timezone = "Local"
	if tz := os.Getenv("TIMEZONE"); tz != "" {
		if _, err := time.LoadLocation(tz); err == nil {
			cfg.Timezone = tz
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks that all required configuration is present.
func (c *Config) validate() error {
	var errs []string

	if c.DatabaseURL == "" {
		errs = append(errs, "DATABASE_URL is required")
	}

	if c.SessionSecret == "" {
		errs = append(errs, "SESSION_SECRET is required")
	} else if len(c.SessionSecret) < MinSessionSecretLength {
		errs = append(errs, "SESSION_SECRET must be at least "+strconv.Itoa(MinSessionSecretLength)+" characters")
	}

	if c.LogHashSalt == "" {
		errs = append(errs, "LOG_HASH_SALT is required")
	} else if len(c.LogHashSalt) < MinLogHashSaltLength {
		errs = append(errs, "LOG_HASH_SALT must be at least "+strconv.Itoa(MinLogHashSaltLength)+" characters")
	}

	switch c.OTelExporter {
	case "none", "stdout", "otlp":
	default:
		errs = append(errs, fmt.Sprintf("OTEL_EXPORTER must be one of none, stdout, otlp (got %q)", c.OTelExporter))
	}

	switch c.OTelProtocol {
	case "grpc", "http", "http/protobuf":
	default:
		errs = append(errs, fmt.Sprintf("OTEL_EXPORTER_OTLP_PROTOCOL must be grpc or http (got %q)", c.OTelProtocol))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// Location resolves the configured timezone used to normalize expense dates.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// AIEnabled reports whether a Gemini API key was configured.
func (c *Config) AIEnabled() bool {
	return c.GeminiAPIKey != ""
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
