// Package config provides CLI commands for managing condrv configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/condrv/internal/codepage"
	appconfig "github.com/Iron-Ham/condrv/internal/config"
)

const setHelp = `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  condrv config set console.codepage 1252
  condrv config set console.initial_title "build 42"
  condrv config set logging.level debug

A value starting with a dash must follow "--":
  condrv config set -- console.initial_title "-{ build }-"

Valid keys:
  console.codepage         - Input code page id (ANSI title transcoding)
  console.output_codepage  - Output code page id (WriteConsoleA)
  console.initial_title    - Title the console starts with
  console.cursor_size      - Cursor size in percent, 1..100
  console.cursor_visible   - Cursor visibility (true/false)
  logging.level            - debug, info, warn, error
  logging.dir              - Directory for condrv.log (empty: stderr)
  logging.max_size_mb      - Rotate condrv.log past this size (0 disables)
  logging.max_backups      - Rotated files kept
  logging.compress         - Gzip rotated files (true/false)
  output.color             - auto, always, never`

// keyTypes lists the settable keys and how their values are parsed.
var keyTypes = map[string]string{
	"console.codepage":        "codepage",
	"console.output_codepage": "codepage",
	"console.initial_title":   "string",
	"console.cursor_size":     "cursor",
	"console.cursor_visible":  "bool",
	"logging.level":           "level",
	"logging.dir":             "string",
	"logging.max_size_mb":     "int",
	"logging.max_backups":     "int",
	"logging.compress":        "bool",
	"output.color":            "color",
}

// Register adds all config-related commands to the given parent command.
func Register(parent *cobra.Command) {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "View or modify condrv configuration",
		Long: `View or modify condrv configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
		RunE: runConfigShow,
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	})
	configCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long:  setHelp,
		Args:  cobra.ExactArgs(2),
		RunE:  runConfigSet,
	})
	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create a default config file",
		Long:  `Create a default config file at ~/.config/condrv/config.yaml with all available options.`,
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	})
	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the config file path",
		Args:  cobra.NoArgs,
		RunE:  runConfigPath,
	})

	parent.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	cfg, err := appconfig.Load()
	if err != nil {
		fmt.Fprintf(out, "Warning: %v\nShowing defaults.\n\n", err)
		cfg = appconfig.Default()
	}

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Config file: %s\n\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Config file: (none - using defaults)\n\n")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to render configuration: %w", err)
	}
	_, err = out.Write(data)
	return err
}

// parseValue converts value to the type key expects and validates it.
func parseValue(key, value string) (any, error) {
	keyType, ok := keyTypes[key]
	if !ok {
		return nil, fmt.Errorf("unknown configuration key: %s\nRun 'condrv config set --help' to see valid keys", key)
	}

	switch keyType {
	case "codepage", "cursor":
		n, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected unsigned integer", key)
		}
		// Reuse the config validator so messages match Load.
		cfg := appconfig.Default()
		switch key {
		case "console.codepage":
			cfg.Console.Codepage = uint32(n)
		case "console.output_codepage":
			cfg.Console.OutputCodepage = uint32(n)
		default:
			cfg.Console.CursorSize = uint32(n)
		}
		if errs := cfg.Validate(); len(errs) > 0 {
			return nil, fmt.Errorf("invalid value for %s: %w", key, appconfig.ValidationErrors(errs))
		}
		return uint32(n), nil
	case "level":
		if !slices.Contains(appconfig.ValidLogLevels(), value) {
			return nil, fmt.Errorf("invalid value for %s: %s\nValid options: %s",
				key, value, strings.Join(appconfig.ValidLogLevels(), ", "))
		}
		return value, nil
	case "color":
		if !slices.Contains(appconfig.ValidColorModes(), value) {
			return nil, fmt.Errorf("invalid value for %s: %s\nValid options: %s",
				key, value, strings.Join(appconfig.ValidColorModes(), ", "))
		}
		return value, nil
	case "bool":
		if value != "true" && value != "false" {
			return nil, fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		return value == "true", nil
	case "int":
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected integer", key)
		}
		if n < 0 {
			return nil, fmt.Errorf("invalid value for %s: must be non-negative", key)
		}
		return n, nil
	default:
		return value, nil
	}
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	typedValue, err := parseValue(key, value)
	if err != nil {
		return err
	}

	configDir := appconfig.ConfigDir()
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.Set(key, typedValue)

	configFile := appconfig.ConfigFile()
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Set %s = %v\n", key, typedValue)
	fmt.Fprintf(out, "Config saved to %s\n", configFile)
	return nil
}

const configTemplate = `# condrv configuration

# Simulated console state
console:
  # Input code page id. ANSI title calls transcode through it.
  # Supported: %s
  codepage: %d
  # Code page WriteConsoleA decodes with
  output_codepage: %d
  # Title the console starts with
  initial_title: ""
  # Cursor size in percent of the cell (1..100)
  cursor_size: %d
  cursor_visible: %t

# Debug logging
logging:
  # debug, info, warn, error
  level: %s
  # Directory for condrv.log. Empty writes to stderr.
  dir: ""
  # Rotate condrv.log once it would exceed this size (0 disables)
  max_size_mb: %d
  max_backups: %d
  compress: %t

# CLI output
output:
  # auto, always, never
  color: %s
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := appconfig.ConfigDir()
	configFile := appconfig.ConfigFile()

	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'condrv config set' to modify values", configFile)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	d := appconfig.Default()
	var ids []string
	for _, id := range codepage.IDs() {
		ids = append(ids, strconv.FormatUint(uint64(id), 10))
	}
	content := fmt.Sprintf(configTemplate,
		strings.Join(ids, ", "),
		d.Console.Codepage, d.Console.OutputCodepage,
		d.Console.CursorSize, d.Console.CursorVisible,
		d.Logging.Level, d.Logging.MaxSizeMB, d.Logging.MaxBackups, d.Logging.Compress,
		d.Output.Color,
	)

	if err := os.WriteFile(configFile, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", configFile)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", appconfig.ConfigFile())
	}

	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", filepath.Join(appconfig.ConfigDir(), "config.yaml"))
	fmt.Fprintf(out, "  2. ./config.yaml (current directory)\n")
	fmt.Fprintln(out, "\nEnvironment variables: CONDRV_* (e.g., CONDRV_CONSOLE_CODEPAGE)")
	return nil
}
