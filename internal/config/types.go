// Package config loads formstruct settings from defaults, a YAML file,
// FORMSTRUCT_ environment variables, and command-line flags.
package config

import (
	"fmt"

	"github.com/ukaji3/formstruct-go/pkg/formstruct/parser"
)

// Output formats accepted by the CLI.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Default configuration values.
const (
	DefaultDatabase = "formstruct.db"
	DefaultOutput   = OutputText
)

// Config holds all formstruct settings.
type Config struct {
	Database           string `koanf:"database"`
	MaxHeaderProbeRows int    `koanf:"max_header_probe_rows"`
	Verbose            bool   `koanf:"verbose"`
	Output             string `koanf:"output"`
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Database == "" {
		return fmt.Errorf("database is required")
	}
	if c.MaxHeaderProbeRows < 0 {
		return fmt.Errorf("max_header_probe_rows must not be negative, got %d", c.MaxHeaderProbeRows)
	}
	switch c.Output {
	case OutputText, OutputJSON:
	default:
		return fmt.Errorf("invalid output format %q (must be %s or %s)", c.Output, OutputText, OutputJSON)
	}
	return nil
}

func defaults() map[string]any {
	return map[string]any{
		"database":              DefaultDatabase,
		"max_header_probe_rows": parser.DefaultMaxProbeRows,
		"verbose":               false,
		"output":                DefaultOutput,
	}
}
