package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/Iron-Ham/condrv/internal/codepage"
	"github.com/Iron-Ham/condrv/internal/logging"
)

// Config represents the complete condrv configuration
type Config struct {
	Console ConsoleConfig `mapstructure:"console" yaml:"console"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
}

// ConsoleConfig controls the initial state of the simulated console
type ConsoleConfig struct {
	// Codepage is the input code page. ANSI title calls transcode through it.
	// Must be a registered code page id (default: 28591, ISO-8859-1)
	Codepage uint32 `mapstructure:"codepage" yaml:"codepage"`
	// OutputCodepage is the code page WriteConsoleA decodes with (default: 28591)
	OutputCodepage uint32 `mapstructure:"output_codepage" yaml:"output_codepage"`
	// InitialTitle is the title the console starts with (default: "")
	InitialTitle string `mapstructure:"initial_title" yaml:"initial_title"`
	// CursorSize is the percentage of the cell the cursor fills, 1..100 (default: 25)
	CursorSize uint32 `mapstructure:"cursor_size" yaml:"cursor_size"`
	// CursorVisible controls the initial cursor visibility (default: true)
	CursorVisible bool `mapstructure:"cursor_visible" yaml:"cursor_visible"`
}

// LoggingConfig controls debug logging
type LoggingConfig struct {
	// Level is the minimum level written: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level" yaml:"level"`
	// Dir is where condrv.log is written. Empty logs to stderr (default: "")
	Dir string `mapstructure:"dir" yaml:"dir"`
	// MaxSizeMB rotates condrv.log once it would exceed this size (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	// MaxBackups is the number of rotated files kept (default: 3)
	MaxBackups int `mapstructure:"max_backups" yaml:"max_backups"`
	// Compress gzips rotated files (default: false)
	Compress bool `mapstructure:"compress" yaml:"compress"`
}

// Rotation returns the logging rotation settings.
func (l LoggingConfig) Rotation() logging.RotationConfig {
	return logging.RotationConfig{
		MaxSizeMB:  l.MaxSizeMB,
		MaxBackups: l.MaxBackups,
		Compress:   l.Compress,
	}
}

// OutputConfig controls CLI rendering
type OutputConfig struct {
	// Color is "auto", "always" or "never" (default: "auto").
	// auto enables styling only when stdout is a terminal.
	Color string `mapstructure:"color" yaml:"color"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	rotation := logging.DefaultRotationConfig()
	return &Config{
		Console: ConsoleConfig{
			Codepage:       codepage.Default,
			OutputCodepage: codepage.Default,
			InitialTitle:   "",
			CursorSize:     25,
			CursorVisible:  true,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Dir:        "",
			MaxSizeMB:  rotation.MaxSizeMB,
			MaxBackups: rotation.MaxBackups,
			Compress:   rotation.Compress,
		},
		Output: OutputConfig{
			Color: ColorAuto,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Console defaults
	viper.SetDefault("console.codepage", defaults.Console.Codepage)
	viper.SetDefault("console.output_codepage", defaults.Console.OutputCodepage)
	viper.SetDefault("console.initial_title", defaults.Console.InitialTitle)
	viper.SetDefault("console.cursor_size", defaults.Console.CursorSize)
	viper.SetDefault("console.cursor_visible", defaults.Console.CursorVisible)

	// Logging defaults
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	viper.SetDefault("logging.compress", defaults.Logging.Compress)

	// Output defaults
	viper.SetDefault("output.color", defaults.Output.Color)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "condrv")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".condrv"
	}
	return filepath.Join(home, ".config", "condrv")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
