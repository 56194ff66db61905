package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{-1, zerolog.WarnLevel},
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{7, zerolog.TraceLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelFor(tt.verbosity), "verbosity %d", tt.verbosity)
	}
}

func TestSetupLoggerTo_FiltersByLevel(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	t.Cleanup(Reset)

	var buf bytes.Buffer
	SetupLoggerTo(&buf, 0)
	logger := GetLogger("test")
	logger.Info().Msg("quiet info")
	logger.Warn().Msg("loud warning")

	out := buf.String()
	assert.NotContains(t, out, "quiet info")
	assert.Contains(t, out, "loud warning")
	assert.Contains(t, out, "component=test")
}

func TestLogOperationStart(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	t.Cleanup(Reset)

	var buf bytes.Buffer
	SetupLoggerTo(&buf, 2)
	done := LogOperationStart(GetLogger("cli"), "validate")
	done()

	out := buf.String()
	assert.Contains(t, out, "Operation started")
	assert.Contains(t, out, "Operation completed")
	assert.Contains(t, out, "operation=validate")
}

func TestReset_QuietUntilConfigured(t *testing.T) {
	t.Cleanup(Reset)

	var buf bytes.Buffer
	SetupLoggerTo(&buf, 3)
	configured := GetLogger("store")
	assert.True(t, configured.Debug().Enabled())

	Reset()
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
	reset := GetLogger("store")
	assert.False(t, reset.Debug().Enabled())
	assert.True(t, reset.Warn().Enabled())
}
