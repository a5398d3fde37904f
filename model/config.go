package model

import (
	"fmt"
	"log/slog"
	"strings"
)

// Config represents the runtime configuration of a speechgraph instance
type Config struct {
	// Extraction
	ExtractInterim bool `json:"extract_interim" mapstructure:"extract_interim"` // Also extract from non-final segments

	// Serving
	Listen      string   `json:"listen" mapstructure:"listen"`
	CORSOrigins []string `json:"cors_origins,omitempty" mapstructure:"cors_origins"`

	// Logging
	LogLevel string `json:"log_level" mapstructure:"log_level"`
}

// DefaultConfig returns a configuration that only extracts finalized text
func DefaultConfig() Config {
	return Config{
		ExtractInterim: false,
		Listen:         "127.0.0.1:8088",
		CORSOrigins:    []string{"*"},
		LogLevel:       "info",
	}
}

// SlogLevel parses LogLevel into a slog.Level
func (c Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", c.LogLevel)
}

// Validate checks that the configuration can be used to start a server
func (c Config) Validate() error {
	if strings.TrimSpace(c.Listen) == "" {
		return fmt.Errorf("listen address is required")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}
