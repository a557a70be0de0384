package logger

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	once     sync.Once
	logger   *slog.Logger
	logLevel = new(slog.LevelVar)
)

// GetLogger returns the process-wide logger. The level can be changed
// later with SetLevel once the environment is loaded.
func GetLogger() *slog.Logger {
	once.Do(func() {
		logLevel.Set(ParseLevel(os.Getenv("LOG_LEVEL")))

		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: logLevel,
		}))
	})

	return logger
}

func SetLevel(level slog.Level) {
	logLevel.Set(level)
}

// ParseLevel converts "debug", "info", "warn" or "error" to a slog.Level.
// Unknown strings default to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
