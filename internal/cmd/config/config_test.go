package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appconfig "github.com/Iron-Ham/condrv/internal/config"
)

// executeCommand runs a config subcommand against a temp config dir.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	appconfig.SetDefaults()

	root := &cobra.Command{Use: "condrv"}
	Register(root)

	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(append([]string{"config"}, args...))
	err := root.Execute()
	return buf.String(), err
}

func TestConfigShow(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	out, err := executeCommand(t, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "(none - using defaults)")
	assert.Contains(t, out, "codepage: 28591")
	assert.Contains(t, out, "cursor_size: 25")
	assert.Contains(t, out, "color: auto")

	// Bare "config" shows too.
	bare, err := executeCommand(t)
	require.NoError(t, err)
	assert.Equal(t, out, bare)
}

func TestConfigPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	out, err := executeCommand(t, "path")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, "condrv", "config.yaml"))
	assert.Contains(t, out, "CONDRV_")
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	out, err := executeCommand(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Created config file")

	path := filepath.Join(dir, "condrv", "config.yaml")
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "codepage: 28591")

	// The generated file loads cleanly.
	viper.Reset()
	appconfig.SetDefaults()
	viper.SetConfigFile(path)
	require.NoError(t, viper.ReadInConfig())
	cfg, err := appconfig.Load()
	require.NoError(t, err)
	assert.Equal(t, *appconfig.Default(), *cfg)

	_, err = executeCommand(t, "init")
	assert.ErrorContains(t, err, "already exists")
}

func TestConfigSet(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	out, err := executeCommand(t, "set", "console.cursor_size", "50")
	require.NoError(t, err)
	assert.Contains(t, out, "Set console.cursor_size = 50")

	content, err := os.ReadFile(filepath.Join(dir, "condrv", "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "cursor_size: 50")
}

func TestConfigSetInvalid(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	tests := []struct {
		name  string
		key   string
		value string
		want  string
	}{
		{"unknown key", "console.colour", "x", "unknown configuration key"},
		{"unsupported code page", "console.codepage", "65001", "must be a supported code page"},
		{"code page not a number", "console.output_codepage", "utf8", "expected unsigned integer"},
		{"cursor too large", "console.cursor_size", "101", "between 1 and 100"},
		{"bad bool", "console.cursor_visible", "yes", "expected true or false"},
		{"bad level", "logging.level", "verbose", "Valid options"},
		{"negative int", "logging.max_backups", "-1", "must be non-negative"},
		{"bad color", "output.color", "rainbow", "Valid options"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(t, "set", "--", tt.key, tt.value)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
