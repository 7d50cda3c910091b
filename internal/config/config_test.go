package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const fullYAML = `
api:
  base_url: https://campus.example.edu/api
  timeout: 45s

state:
  db_path: /var/lib/ccb/state.db

log:
  file: /var/log/ccb/ccb.log
  level: debug
  max_size_mb: 25
  max_backups: 5
`

func TestParse_FullConfig(t *testing.T) {
	cfg, err := Parse([]byte(fullYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.API.BaseURL != "https://campus.example.edu/api" {
		t.Errorf("API.BaseURL = %q, want %q", cfg.API.BaseURL, "https://campus.example.edu/api")
	}
	if cfg.API.Timeout != 45*time.Second {
		t.Errorf("API.Timeout = %v, want 45s", cfg.API.Timeout)
	}
	if cfg.State.DBPath != "/var/lib/ccb/state.db" {
		t.Errorf("State.DBPath = %q, want %q", cfg.State.DBPath, "/var/lib/ccb/state.db")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.MaxSizeMB != 25 {
		t.Errorf("Log.MaxSizeMB = %d, want 25", cfg.Log.MaxSizeMB)
	}
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.API.BaseURL != "http://localhost:8080/api" {
		t.Errorf("API.BaseURL = %q, want default %q", cfg.API.BaseURL, "http://localhost:8080/api")
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("API.Timeout = %v, want default 30s", cfg.API.Timeout)
	}
	if cfg.State.DBPath == "" {
		t.Error("State.DBPath should default to a per-user path")
	}
	if !strings.HasSuffix(cfg.State.DBPath, filepath.Join(".ccb", "state.db")) {
		t.Errorf("State.DBPath = %q, want it under .ccb", cfg.State.DBPath)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want default %q", cfg.Log.Level, "info")
	}
}

func TestParse_EnvOverridesFile(t *testing.T) {
	t.Setenv("CCB_API_BASE_URL", "http://10.0.0.9:9090/api")
	t.Setenv("CCB_LOG_LEVEL", "warn")

	cfg, err := Parse([]byte(fullYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.API.BaseURL != "http://10.0.0.9:9090/api" {
		t.Errorf("API.BaseURL = %q, want env override", cfg.API.BaseURL)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want env override %q", cfg.Log.Level, "warn")
	}
	// File values without overrides survive.
	if cfg.API.Timeout != 45*time.Second {
		t.Errorf("API.Timeout = %v, want file value 45s", cfg.API.Timeout)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"relative base url", "api:\n  base_url: not-a-url\n", "base_url"},
		{"bad log level", "log:\n  level: loud\n", "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing config file should not be an error, got %v", err)
	}
	if cfg.API.BaseURL == "" {
		t.Error("defaults should apply without a config file")
	}
}
