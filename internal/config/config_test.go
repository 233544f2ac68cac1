package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		Port:             "8081",
		DataBackend:      "file",
		DataDir:          "./data",
		SQLiteDBPath:     "./data/ledger.db",
		CardBreakpointPx: 640,
		ChartWidth:       640,
		ChartHeight:      480,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errContains string
	}{
		{name: "valid file backend", mutate: func(*Config) {}},
		{
			name:   "valid sqlite backend",
			mutate: func(c *Config) { c.DataBackend = "sqlite" },
		},
		{
			name:        "non-numeric port",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errContains: "invalid port",
		},
		{
			name:        "port out of range",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errContains: "invalid port",
		},
		{
			name:        "unknown backend",
			mutate:      func(c *Config) { c.DataBackend = "redis" },
			wantErr:     true,
			errContains: "invalid data backend",
		},
		{
			name:        "file backend without data dir",
			mutate:      func(c *Config) { c.DataDir = "" },
			wantErr:     true,
			errContains: "data directory",
		},
		{
			name: "sqlite backend without path",
			mutate: func(c *Config) {
				c.DataBackend = "sqlite"
				c.SQLiteDBPath = ""
			},
			wantErr:     true,
			errContains: "SQLite database path",
		},
		{
			name:        "negative breakpoint",
			mutate:      func(c *Config) { c.CardBreakpointPx = -1 },
			wantErr:     true,
			errContains: "card breakpoint",
		},
		{
			name:        "chart width too small",
			mutate:      func(c *Config) { c.ChartWidth = 10 },
			wantErr:     true,
			errContains: "chart width",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Fatalf("error %q missing %q", err.Error(), tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8081" {
		t.Fatalf("default port: %s", cfg.Port)
	}
	if cfg.DataBackend != "file" {
		t.Fatalf("default backend: %s", cfg.DataBackend)
	}
	if cfg.CardBreakpointPx != 640 {
		t.Fatalf("default breakpoint: %d", cfg.CardBreakpointPx)
	}
}
