// Package config loads oneclick's runtime configuration: defaults, then an
// optional YAML file, then ONECLICK_* environment overrides. The result is
// validated against an embedded CUE schema.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment overrides.
const (
	EnvDBPath         = "ONECLICK_DB_PATH"
	EnvMaxConnections = "ONECLICK_MAX_CONNECTIONS"
	EnvLogLevel       = "ONECLICK_LOG_LEVEL"
	EnvLogFormat      = "ONECLICK_LOG_FORMAT"
)

// Config is the full runtime configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database" json:"database"`
	Log      LogConfig      `yaml:"log" json:"log"`
	Window   WindowConfig   `yaml:"window" json:"window"`
}

type DatabaseConfig struct {
	Path           string `yaml:"path" json:"path"`
	MaxConnections int    `yaml:"max_connections" json:"max_connections"`
}

type LogConfig struct {
	Level  string `yaml:"level" json:"level"`   // debug, info, warn, error
	Format string `yaml:"format" json:"format"` // text or json
}

type WindowConfig struct {
	MinWidth        int `yaml:"min_width" json:"min_width"`
	MinHeight       int `yaml:"min_height" json:"min_height"`
	ScaleDebounceMS int `yaml:"scale_debounce_ms" json:"scale_debounce_ms"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:           DefaultDBPath(),
			MaxConnections: 5,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Window: WindowConfig{
			MinWidth:        800,
			MinHeight:       600,
			ScaleDebounceMS: 500,
		},
	}
}

// DefaultDBPath is <user config dir>/one_click_launch/data/one_click_launch.db,
// or a file in the working directory when there is no user config dir.
func DefaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "one_click_launch.db"
	}
	return filepath.Join(dir, "one_click_launch", "data", "one_click_launch.db")
}

// Load builds the configuration. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := decode(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode reads YAML over cfg, rejecting unknown keys.
func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvDBPath); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv(EnvMaxConnections); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			cfg.Database.MaxConnections = n
		}
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.Log.Format = strings.ToLower(strings.TrimSpace(v))
	}
}

// ScaleDebounce returns the scale-change debounce interval.
func (c *Config) ScaleDebounce() time.Duration {
	return time.Duration(c.Window.ScaleDebounceMS) * time.Millisecond
}

// SlogLevel maps log.level to a slog level. Unknown levels are Info.
func (c *Config) SlogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
