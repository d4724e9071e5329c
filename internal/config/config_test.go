package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "oneclick.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvDBPath, EnvMaxConnections, EnvLogLevel, EnvLogFormat} {
		t.Setenv(k, "")
	}
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 5, cfg.Database.MaxConnections)
	assert.Equal(t, 800, cfg.Window.MinWidth)
	assert.Equal(t, 600, cfg.Window.MinHeight)
	assert.Equal(t, 500*time.Millisecond, cfg.ScaleDebounce())
	assert.True(t, strings.HasSuffix(cfg.Database.Path, filepath.Join("one_click_launch", "data", "one_click_launch.db")),
		cfg.Database.Path)
}

func TestLoad_NoFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
database:
  path: /tmp/launchers.db
  max_connections: 2
log:
  level: debug
window:
  scale_debounce_ms: 250
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/launchers.db", cfg.Database.Path)
	assert.Equal(t, 2, cfg.Database.MaxConnections)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format, "unset keys keep defaults")
	assert.Equal(t, 800, cfg.Window.MinWidth)
	assert.Equal(t, 250*time.Millisecond, cfg.ScaleDebounce())
}

func TestLoad_EmptyFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_UnknownKeyRejected(t *testing.T) {
	clearEnv(t)

	_, err := Load(writeConfig(t, "databse:\n  path: x.db\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "database:\n  path: /from/file.db\n")
	t.Setenv(EnvDBPath, "/from/env.db")
	t.Setenv(EnvMaxConnections, "3")
	t.Setenv(EnvLogLevel, " WARN ")
	t.Setenv(EnvLogFormat, "json")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/from/env.db", cfg.Database.Path)
	assert.Equal(t, 3, cfg.Database.MaxConnections)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_MalformedEnvIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvMaxConnections, "lots")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Database.MaxConnections)
}

func TestValidate_RejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero connections", func(c *Config) { c.Database.MaxConnections = 0 }, "max_connections"},
		{"empty db path", func(c *Config) { c.Database.Path = "" }, "path"},
		{"unknown level", func(c *Config) { c.Log.Level = "verbose" }, "level"},
		{"unknown format", func(c *Config) { c.Log.Format = "xml" }, "format"},
		{"tiny window", func(c *Config) { c.Window.MinWidth = 10 }, "min_width"},
		{"negative debounce", func(c *Config) { c.Window.ScaleDebounceMS = -1 }, "scale_debounce_ms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.NotEmpty(t, verr.Problems)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Database.MaxConnections = 0
	cfg.Window.MinHeight = 0

	err := cfg.Validate()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.GreaterOrEqual(t, len(verr.Problems), 2)
}

func TestSlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
	}
	for level, want := range tests {
		cfg := Default()
		cfg.Log.Level = level
		assert.Equal(t, want, cfg.SlogLevel(), level)
	}
}
