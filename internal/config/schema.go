package config

import (
	"fmt"
	"strings"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config represents the complete .schemacheck.yml configuration
type Config struct {
	Version    string           `yaml:"version" toml:"version"`
	Schema     SchemaConfig     `yaml:"schema" toml:"schema"`
	Validation ValidationConfig `yaml:"validation" toml:"validation"`
	Output     OutputConfig     `yaml:"output" toml:"output"`
	Batch      BatchConfig      `yaml:"batch" toml:"batch"`
}

// SchemaConfig says where entity schema documents live
type SchemaConfig struct {
	Paths    []string `yaml:"paths" toml:"paths"`
	Filename string   `yaml:"filename" toml:"filename"`
}

// ValidationConfig tunes how documents are judged
type ValidationConfig struct {
	Strict     bool   `yaml:"strict" toml:"strict"`                               // Fail on warnings
	JSONSchema string `yaml:"json_schema,omitempty" toml:"json_schema,omitempty"` // Optional extra JSON Schema pass
}

// OutputConfig holds report settings
type OutputConfig struct {
	Format string `yaml:"format" toml:"format"` // text, json
	Color  bool   `yaml:"color" toml:"color"`
}

// BatchConfig holds batch validation settings
type BatchConfig struct {
	Jobs int `yaml:"jobs" toml:"jobs"` // 0 = one per CPU
}

// Defaults returns a Config with sensible defaults
func Defaults() *Config {
	return &Config{
		Version: "1",
		Schema: SchemaConfig{
			Paths:    []string{"./schemas"},
			Filename: "schema.json",
		},
		Output: OutputConfig{
			Format: FormatText,
			Color:  true,
		},
	}
}

// fillBlanks restores defaults for keys a config file set to empty values.
func (c *Config) fillBlanks() {
	def := Defaults()
	if c.Schema.Filename == "" {
		c.Schema.Filename = def.Schema.Filename
	}
	if c.Output.Format == "" {
		c.Output.Format = def.Output.Format
	}
}

// Validate checks if config is valid. It never modifies c.
func (c *Config) Validate() error {
	if len(c.Schema.Paths) == 0 {
		return &ConfigError{
			Field:      "schema.paths",
			Reason:     "At least one schema path is required",
			Suggestion: `paths: ["./schemas"]`,
		}
	}

	if c.Schema.Filename == "" {
		return &ConfigError{
			Field:      "schema.filename",
			Reason:     "A schema file name is required",
			Suggestion: `filename: "schema.json"`,
		}
	}
	if strings.ContainsAny(c.Schema.Filename, `/\`) {
		return &ConfigError{
			Field:      "schema.filename",
			Reason:     fmt.Sprintf("must be a file name, not a path: %q", c.Schema.Filename),
			Suggestion: "move the directory part into schema.paths",
		}
	}

	switch c.Output.Format {
	case FormatText, FormatJSON:
	default:
		return &ConfigError{
			Field:      "output.format",
			Reason:     fmt.Sprintf("unknown format %q", c.Output.Format),
			Suggestion: "use 'text' or 'json'",
		}
	}

	if c.Batch.Jobs < 0 {
		return &ConfigError{
			Field:  "batch.jobs",
			Reason: "must not be negative",
		}
	}

	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field      string
	Reason     string
	Suggestion string
}

func (e *ConfigError) Error() string {
	msg := "Configuration error: " + e.Field + ": " + e.Reason
	if e.Suggestion != "" {
		msg += "\nSuggestion: " + e.Suggestion
	}
	return msg
}
