package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap/zapcore"
)

const (
	DefaultAddr            = ":8080"
	DefaultServiceName     = "go-chi-calculator"
	DefaultShutdownTimeout = 5 * time.Second
)

// Config holds the runtime settings for the calculator API. Values come from
// the process environment; cmd/api loads a .env file into it first.
type Config struct {
	Addr            string
	ServiceName     string
	LogLevel        zapcore.Level
	ExportTelemetry bool
	ShutdownTimeout time.Duration
}

// Load reads the configuration from the environment, falling back to
// defaults for unset variables.
func Load() (Config, error) {
	cfg := Config{
		Addr:            getenv("HTTP_ADDR", DefaultAddr),
		ServiceName:     getenv("OTEL_SERVICE_NAME", DefaultServiceName),
		LogLevel:        zapcore.InfoLevel,
		ExportTelemetry: true,
		ShutdownTimeout: DefaultShutdownTimeout,
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level, err := zapcore.ParseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = level
	}

	if v := os.Getenv("OTEL_EXPORT_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse OTEL_EXPORT_ENABLED: %w", err)
		}
		cfg.ExportTelemetry = enabled
	}

	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.ShutdownTimeout = d
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
