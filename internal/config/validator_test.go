package config

import (
	"strings"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	err := ValidationError{
		Field:   "test.field",
		Value:   123,
		Message: "must be greater than zero",
	}

	expected := "test.field: must be greater than zero (got: 123)"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	t.Run("empty errors", func(t *testing.T) {
		var errs ValidationErrors
		if errs.Error() != "" {
			t.Errorf("Error() for empty = %q, want empty string", errs.Error())
		}
	})

	t.Run("single error", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "test.field", Value: 123, Message: "is invalid"},
		}
		expected := "test.field: is invalid (got: 123)"
		if errs.Error() != expected {
			t.Errorf("Error() = %q, want %q", errs.Error(), expected)
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "field1", Value: "bad", Message: "is invalid"},
			{Field: "field2", Value: -1, Message: "must be positive"},
		}
		result := errs.Error()
		if !strings.Contains(result, "2 validation errors") {
			t.Errorf("Error() should mention 2 errors: %s", result)
		}
		if !strings.Contains(result, "field1") || !strings.Contains(result, "field2") {
			t.Errorf("Error() should mention both fields: %s", result)
		}
	})
}

func TestConfig_Validate_DefaultConfig(t *testing.T) {
	cfg := Default()
	errs := cfg.Validate()
	if len(errs) != 0 {
		t.Errorf("Default config should be valid, got %d errors: %v", len(errs), errs)
	}
}

func hasField(errs []ValidationError, field string) bool {
	for _, err := range errs {
		if err.Field == field {
			return true
		}
	}
	return false
}

func TestConfig_Validate_Console(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		field   string
		wantErr bool
	}{
		{"registered codepage", func(c *Config) { c.Console.Codepage = 1252 }, "console.codepage", false},
		{"ascii codepage", func(c *Config) { c.Console.Codepage = 20127 }, "console.codepage", false},
		{"unknown codepage", func(c *Config) { c.Console.Codepage = 65001 }, "console.codepage", true},
		{"zero codepage", func(c *Config) { c.Console.Codepage = 0 }, "console.codepage", true},
		{"unknown output codepage", func(c *Config) { c.Console.OutputCodepage = 1200 }, "console.output_codepage", true},
		{"cursor size minimum", func(c *Config) { c.Console.CursorSize = 1 }, "console.cursor_size", false},
		{"cursor size maximum", func(c *Config) { c.Console.CursorSize = 100 }, "console.cursor_size", false},
		{"cursor size zero", func(c *Config) { c.Console.CursorSize = 0 }, "console.cursor_size", true},
		{"cursor size too large", func(c *Config) { c.Console.CursorSize = 101 }, "console.cursor_size", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if got := hasField(cfg.Validate(), tt.field); got != tt.wantErr {
				t.Errorf("error for %s = %v, want %v", tt.field, got, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate_CodepageMessage(t *testing.T) {
	cfg := Default()
	cfg.Console.Codepage = 65001
	errs := cfg.Validate()
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
	if !strings.Contains(errs[0].Message, "28591") {
		t.Errorf("message should list supported code pages: %s", errs[0].Message)
	}
}

func TestConfig_Validate_Logging(t *testing.T) {
	t.Run("valid log levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", ""} {
			cfg := Default()
			cfg.Logging.Level = level
			if hasField(cfg.Validate(), "logging.level") {
				t.Errorf("level %q should be valid", level)
			}
		}
	})

	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"invalid log level", func(c *Config) { c.Logging.Level = "invalid" }, "logging.level"},
		{"case sensitive log level", func(c *Config) { c.Logging.Level = "INFO" }, "logging.level"},
		{"negative max size", func(c *Config) { c.Logging.MaxSizeMB = -1 }, "logging.max_size_mb"},
		{"max size too large", func(c *Config) { c.Logging.MaxSizeMB = 1001 }, "logging.max_size_mb"},
		{"negative backups", func(c *Config) { c.Logging.MaxBackups = -1 }, "logging.max_backups"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if !hasField(cfg.Validate(), tt.field) {
				t.Errorf("expected error for %s", tt.field)
			}
		})
	}

	t.Run("rotation disabled", func(t *testing.T) {
		cfg := Default()
		cfg.Logging.MaxSizeMB = 0
		if hasField(cfg.Validate(), "logging.max_size_mb") {
			t.Error("max_size_mb 0 should be valid")
		}
	})
}

func TestConfig_Validate_Output(t *testing.T) {
	for _, mode := range append(ValidColorModes(), "") {
		cfg := Default()
		cfg.Output.Color = mode
		if hasField(cfg.Validate(), "output.color") {
			t.Errorf("color %q should be valid", mode)
		}
	}

	cfg := Default()
	cfg.Output.Color = "rainbow"
	if !hasField(cfg.Validate(), "output.color") {
		t.Error("expected error for invalid color mode")
	}
}

func TestValidLogLevels(t *testing.T) {
	levels := ValidLogLevels()
	expected := []string{"debug", "info", "warn", "error"}
	if strings.Join(levels, ",") != strings.Join(expected, ",") {
		t.Errorf("ValidLogLevels() = %v, want %v", levels, expected)
	}
}

func TestConfig_Validate_MultipleErrors(t *testing.T) {
	cfg := Default()
	cfg.Console.Codepage = 1
	cfg.Console.CursorSize = 500
	cfg.Logging.Level = "invalid"
	cfg.Output.Color = "sometimes"

	errs := cfg.Validate()
	if len(errs) != 4 {
		t.Errorf("expected 4 errors, got %d: %v", len(errs), errs)
	}
}
