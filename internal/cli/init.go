// Package cli provides common initialization utilities for the tally
// command entrypoint: logging, environment loading, configuration, and
// storage startup.
package cli

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Thaonnor/tally/internal/config"
	"github.com/Thaonnor/tally/internal/storage"
)

// SetupLogger initializes structured logging at the given level and sets the
// result as the default logger.
func SetupLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: lvl,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *slog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// OpenStore opens the SQLite store at the given path, ensuring the schema and
// system category exist. Returns the store or exits the process on failure;
// schema initialization failure is the one case treated as fatal to startup.
func OpenStore(ctx context.Context, logger *slog.Logger, dbPath string) *storage.Store {
	store, err := storage.New(ctx, dbPath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err, "path", dbPath)
		os.Exit(1)
	}
	return store
}
