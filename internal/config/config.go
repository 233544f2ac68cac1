package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	// HTTP Server
	Port string

	// Persistence backend selection
	DataBackend  string // "file" or "sqlite"
	DataDir      string // file backend: directory holding the ledger file
	SQLiteDBPath string

	// View
	CardBreakpointPx int // viewport width at or below which cards replace the table

	// Chart
	ChartWidth  int
	ChartHeight int
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8081"),

		DataBackend:  getEnv("DATA_BACKEND", "file"),
		DataDir:      getEnv("DATA_DIR", "./data"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/ledger.db"),

		CardBreakpointPx: getEnvInt("CARD_BREAKPOINT_PX", 640),

		ChartWidth:  getEnvInt("CHART_WIDTH", 640),
		ChartHeight: getEnvInt("CHART_HEIGHT", 480),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case "file":
		if c.DataDir == "" {
			errors = append(errors, "data directory cannot be empty when using file backend")
		}
	case "sqlite":
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of [file sqlite]", c.DataBackend))
	}

	if c.CardBreakpointPx < 0 {
		errors = append(errors, fmt.Sprintf("invalid card breakpoint %d: must not be negative", c.CardBreakpointPx))
	}

	if c.ChartWidth < 64 || c.ChartWidth > 4096 {
		errors = append(errors, fmt.Sprintf("invalid chart width %d: must be between 64 and 4096", c.ChartWidth))
	}
	if c.ChartHeight < 64 || c.ChartHeight > 4096 {
		errors = append(errors, fmt.Sprintf("invalid chart height %d: must be between 64 and 4096", c.ChartHeight))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
