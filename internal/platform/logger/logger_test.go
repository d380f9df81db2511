package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLevels(t *testing.T) {
	testCases := []struct {
		name     string
		level    string
		enabled  slog.Level
		disabled slog.Level
	}{
		{name: "debug enables everything", level: "debug", enabled: slog.LevelDebug, disabled: slog.LevelDebug - 4},
		{name: "info filters debug", level: "info", enabled: slog.LevelInfo, disabled: slog.LevelDebug},
		{name: "warn filters info", level: "warn", enabled: slog.LevelWarn, disabled: slog.LevelInfo},
		{name: "error filters warn", level: "error", enabled: slog.LevelError, disabled: slog.LevelWarn},
		{name: "case insensitive", level: "WARN", enabled: slog.LevelWarn, disabled: slog.LevelInfo},
		{name: "unknown falls back to info", level: "verbose", enabled: slog.LevelInfo, disabled: slog.LevelDebug},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			logger, err := Setup(tc.level)
			require.NoError(t, err)
			require.NotNil(t, logger)

			ctx := context.Background()
			assert.True(t, logger.Enabled(ctx, tc.enabled))
			assert.False(t, logger.Enabled(ctx, tc.disabled))
		})
	}
}

func TestSetupInstallsDefaultLogger(t *testing.T) {
	logger, err := Setup("info")
	require.NoError(t, err)
	assert.Same(t, logger, slog.Default())
}
