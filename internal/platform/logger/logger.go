// Package logger provides structured logging functionality for the application
// using Go's standard library log/slog package.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Setup initializes and configures the application's logging system based on
// the provided log level. It creates a structured JSON logger writing to
// stdout and sets it as the default logger for the application.
//
// Unknown levels fall back to info with a warning on stderr.
func Setup(logLevel string) (*slog.Logger, error) {
	var level slog.Level
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo

		tmpLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		tmpLogger.Warn("invalid log level configured, using default level",
			"configured_level", logLevel,
			"default_level", "info")
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewJSONHandler(os.Stdout, opts)
	logger := slog.New(handler)

	// Set this logger as the default for the application so the slog
	// package functions (slog.Info, slog.Error, ...) use it too.
	slog.SetDefault(logger)

	return logger, nil
}
