package model

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Run("Returns correct default values", func(t *testing.T) {
		config := DefaultConfig()

		assert.False(t, config.ExtractInterim, "Only finalized text should be extracted by default")
		assert.Equal(t, "127.0.0.1:8088", config.Listen)
		assert.Equal(t, []string{"*"}, config.CORSOrigins)
		assert.Equal(t, "info", config.LogLevel)
		assert.NoError(t, config.Validate())
	})

	t.Run("Can be modified after creation", func(t *testing.T) {
		config := DefaultConfig()

		config.ExtractInterim = true
		config.Listen = ":9000"

		assert.True(t, config.ExtractInterim)
		assert.Equal(t, ":9000", config.Listen)
		assert.False(t, DefaultConfig().ExtractInterim, "Defaults should not be shared")
	})
}

func TestConfigSlogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"", slog.LevelInfo},
		{"info", slog.LevelInfo},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := Config{LogLevel: tt.input}.SlogLevel()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}

	t.Run("unknown level", func(t *testing.T) {
		_, err := Config{LogLevel: "verbose"}.SlogLevel()
		assert.Error(t, err)
	})
}

func TestConfigValidate(t *testing.T) {
	t.Run("Missing listen address", func(t *testing.T) {
		config := DefaultConfig()
		config.Listen = "  "
		assert.Error(t, config.Validate())
	})

	t.Run("Invalid log level", func(t *testing.T) {
		config := DefaultConfig()
		config.LogLevel = "loud"
		assert.Error(t, config.Validate())
	})
}
