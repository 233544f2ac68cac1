// Package cli provides common process initialization utilities for
// cmd/expense-tracker.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/nayanchhabhaiya/Expense-Tracker/internal/config"
	"github.com/nayanchhabhaiya/Expense-Tracker/internal/storage"
)

// SetupLogger initializes structured logging with default settings.
// Returns the configured logger and sets it as the default logger.
func SetupLogger() *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
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

// OpenStore initializes the configured key/value backend.
// Returns the store or exits the process on failure.
func OpenStore(logger *slog.Logger, cfg *config.Config) storage.KeyValue {
	switch cfg.DataBackend {
	case "sqlite":
		kv, err := storage.NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite store", "error", err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		logger.Info("Initialized SQLite backend", "path", cfg.SQLiteDBPath)
		return kv
	default:
		kv, err := storage.NewFileStore(cfg.DataDir)
		if err != nil {
			logger.Error("Failed to initialize file store", "error", err, "dir", cfg.DataDir)
			os.Exit(1)
		}
		logger.Info("Initialized file backend", "dir", cfg.DataDir)
		return kv
	}
}
