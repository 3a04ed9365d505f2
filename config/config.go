/*
config.go - Process configuration

PURPOSE:
  Loads server settings from the environment (with an optional .env file)
  and applies defaults. This covers process-level concerns only: listen
  port, database location, log level, scheduler cadence. Leave policy
  settings (day defaults, carryover, reminders) live in the store and are
  managed through /api/config.

ENVIRONMENT VARIABLES:
  PORT                     HTTP listen port (default 8080)
  DB_PATH                  SQLite file, or ":memory:" (default permisos.db)
  LOG_LEVEL                debug, info, warn, error (default info)
  SCHEDULER_ENABLED        true/false (default true)
  SCHEDULER_INTERVAL       Go duration, e.g. 1h, 15m (default 1h)

A .env file in the working directory is read if present; real environment
variables win over it.
*/
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds process-level server settings.
type Config struct {
	Port              int
	DBPath            string
	LogLevel          slog.Level
	SchedulerEnabled  bool
	SchedulerInterval time.Duration
}

// Load reads the optional .env file and the environment.
func Load() (*Config, error) {
	// Missing .env is fine; the environment alone is a valid source.
	_ = godotenv.Load()

	cfg := &Config{}

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}
	cfg.Port = port

	cfg.DBPath = getEnv("DB_PATH", "permisos.db")

	switch getEnv("LOG_LEVEL", "info") {
	case "debug":
		cfg.LogLevel = slog.LevelDebug
	case "info":
		cfg.LogLevel = slog.LevelInfo
	case "warn":
		cfg.LogLevel = slog.LevelWarn
	case "error":
		cfg.LogLevel = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid LOG_LEVEL: %q", os.Getenv("LOG_LEVEL"))
	}

	enabled, err := strconv.ParseBool(getEnv("SCHEDULER_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULER_ENABLED: %w", err)
	}
	cfg.SchedulerEnabled = enabled

	interval, err := time.ParseDuration(getEnv("SCHEDULER_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULER_INTERVAL: %w", err)
	}
	cfg.SchedulerInterval = interval

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
