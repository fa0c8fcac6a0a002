package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/delivery/internal/cli/output"
)

var (
	logLevels  = []string{"debug", "info", "warn", "warning", "error"}
	logFormats = []string{"text", "json"}
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("database is required")
	}
	if !output.Mode(c.OutputFormat).Valid() {
		return fmt.Errorf("unknown output format %q (want auto, text or json)", c.OutputFormat)
	}
	if c.LogLevel != "" && !slices.Contains(logLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("unknown log level %q (want one of %s)", c.LogLevel, strings.Join(logLevels, ", "))
	}
	if c.LogFormat != "" && !slices.Contains(logFormats, strings.ToLower(c.LogFormat)) {
		return fmt.Errorf("unknown log format %q (want text or json)", c.LogFormat)
	}
	return nil
}
