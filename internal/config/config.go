// Package config provides YAML-based configuration loading for the ccb client.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is the top-level ccb configuration, loaded from ccb.yaml with
// environment-variable overrides applied on top.
type Config struct {
	API   APIConfig   `yaml:"api"`
	State StateConfig `yaml:"state"`
	Log   LogConfig   `yaml:"log"`
}

// APIConfig holds connection settings for the CampusConnect backend.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" env:"CCB_API_BASE_URL"`
	Timeout time.Duration `yaml:"timeout" env:"CCB_API_TIMEOUT"`
}

// StateConfig holds settings for the local state database.
type StateConfig struct {
	DBPath string `yaml:"db_path" env:"CCB_STATE_DB"`
}

// LogConfig controls the client's diagnostic log file.
type LogConfig struct {
	File       string `yaml:"file" env:"CCB_LOG_FILE"`
	Level      string `yaml:"level" env:"CCB_LOG_LEVEL"`
	MaxSizeMB  int    `yaml:"max_size_mb" env:"CCB_LOG_MAX_SIZE_MB"`
	MaxBackups int    `yaml:"max_backups" env:"CCB_LOG_MAX_BACKUPS"`
}

// Load reads a YAML config file from path and returns a validated Config.
// A missing file is not an error; defaults and environment overrides still
// apply so the client works with no config file at all.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		data = nil
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config. Environment
// variables override file values.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse: %w", err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: env: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = "http://localhost:8080/api"
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = 30 * time.Second
	}
	if c.State.DBPath == "" {
		c.State.DBPath = filepath.Join(stateDir(), "state.db")
	}
	if c.Log.File == "" {
		c.Log.File = filepath.Join(stateDir(), "ccb.log")
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = 10
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = 3
	}
}

// stateDir returns the per-user directory for ccb state files.
func stateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ccb"
	}
	return filepath.Join(home, ".ccb")
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Sprintf("api.base_url %q is not an absolute URL", c.API.BaseURL))
	}
	if c.API.Timeout < 0 {
		errs = append(errs, "api.timeout must not be negative")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
