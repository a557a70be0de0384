package logger

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ParseLevel_WithKnownAndUnknownValues_ReturnsExpectedLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func Test_GetLogger_CalledTwice_ReturnsSameLogger(t *testing.T) {
	first := GetLogger()
	second := GetLogger()

	assert.NotNil(t, first)
	assert.Same(t, first, second)
}
