package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/oneclick/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "oneclick.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConfigValidate_Valid(t *testing.T) {
	opts, _ := newTestOptions(t, "text")
	path := writeConfig(t, "log:\n  level: debug\nwindow:\n  scale_debounce_ms: 250\n")

	out, err := execute(t, NewConfigCommand(opts), "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
}

func TestConfigValidate_Invalid(t *testing.T) {
	opts, _ := newTestOptions(t, "text")
	path := writeConfig(t, "database:\n  max_connections: 0\nlog:\n  level: loud\n")

	out, err := execute(t, NewConfigCommand(opts), "validate", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Configuration is invalid")
	assert.Contains(t, out, "max_connections")
	assert.Contains(t, out, "level")
}

func TestConfigValidate_InvalidJSON(t *testing.T) {
	opts, _ := newTestOptions(t, "json")
	path := writeConfig(t, "window:\n  min_width: 10\n")

	out, err := execute(t, NewConfigCommand(opts), "validate", path)
	require.Error(t, err)

	resp := decodeResponse(t, out)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeConfig, resp.Error.Code)

	details, err := json.Marshal(resp.Error.Details)
	require.NoError(t, err)
	var result ValidationResult
	require.NoError(t, json.Unmarshal(details, &result))
	assert.False(t, result.Valid)
	require.NotEmpty(t, result.Problems)
	assert.Contains(t, result.Problems[0], "min_width")
}

func TestConfigValidate_UnknownKey(t *testing.T) {
	opts, _ := newTestOptions(t, "text")
	path := writeConfig(t, "databse:\n  path: /tmp/x.db\n")

	_, err := execute(t, NewConfigCommand(opts), "validate", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestConfigShow_JSON(t *testing.T) {
	opts, _ := newTestOptions(t, "json")

	out, err := execute(t, NewConfigCommand(opts), "show")
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, json.Unmarshal(decodeResponse(t, out).Data, &cfg))
	assert.Equal(t, opts.DBPath, cfg.Database.Path)
	assert.Equal(t, 800, cfg.Window.MinWidth)
}

func TestConfigShow_YAML(t *testing.T) {
	opts, _ := newTestOptions(t, "text")

	out, err := execute(t, NewConfigCommand(opts), "show")
	require.NoError(t, err)
	assert.Contains(t, out, "scale_debounce_ms: 500")
}

func TestOpenApp_InvalidConfig(t *testing.T) {
	opts, _ := newTestOptions(t, "json")
	opts.ConfigPath = writeConfig(t, "log:\n  format: xml\n")

	out, err := execute(t, NewLauncherCommand(opts), "list")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Equal(t, ErrCodeConfig, decodeResponse(t, out).Error.Code)
}
