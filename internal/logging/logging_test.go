package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{" error ", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_FiltersByLevel(t *testing.T) {
	for _, pretty := range []bool{true, false} {
		var buf bytes.Buffer
		logger := New(&buf, slog.LevelWarn, pretty)

		logger.Info("quiet")
		logger.Warn("loud", "id", 100000)

		out := buf.String()
		assert.NotContains(t, out, "quiet")
		assert.Contains(t, out, "loud")
		assert.Contains(t, out, "100000")
	}
}

func TestSetup_InstallsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger, err := Setup(&buf, "debug", false)
	require.NoError(t, err)
	assert.Same(t, logger, slog.Default())

	slog.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestSetup_UnknownLevelFallsBack(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger, err := Setup(&buf, "chatty", false)
	assert.Error(t, err)
	require.NotNil(t, logger)

	logger.Debug("hidden")
	logger.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestSetLevel_ChangesSetupLoggers(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(prev)
		_ = SetLevel("info")
	})

	var buf bytes.Buffer
	logger, err := Setup(&buf, "warn", false)
	require.NoError(t, err)

	logger.Info("before")
	require.NoError(t, SetLevel("debug"))
	logger.Debug("after")

	assert.NotContains(t, buf.String(), "before")
	assert.Contains(t, buf.String(), "after")

	assert.Error(t, SetLevel("chatty"))
	logger.Debug("still debug")
	assert.Contains(t, buf.String(), "still debug")
}
