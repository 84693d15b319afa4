package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/draftforge/draftforge-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLevels(t *testing.T) {
	cases := []struct {
		configured string
		enabled    slog.Level
		disabled   slog.Level
	}{
		{"debug", slog.LevelDebug, slog.LevelDebug - 4},
		{"info", slog.LevelInfo, slog.LevelDebug},
		{"warn", slog.LevelWarn, slog.LevelInfo},
		{"error", slog.LevelError, slog.LevelWarn},
		{"shouting", slog.LevelInfo, slog.LevelDebug}, // invalid falls back to info
	}

	for _, tc := range cases {
		t.Run(tc.configured, func(t *testing.T) {
			logger := Setup(config.ServerConfig{Port: 8080, LogLevel: tc.configured})
			require.NotNil(t, logger)
			assert.True(t, logger.Enabled(context.Background(), tc.enabled),
				"level %v should be enabled for %q", tc.enabled, tc.configured)
			assert.False(t, logger.Enabled(context.Background(), tc.disabled),
				"level %v should be disabled for %q", tc.disabled, tc.configured)
		})
	}
}
