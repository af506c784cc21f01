// Package telemetry provides structured logging and metrics for the worker.
package telemetry

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the process logger. Level comes from LOG_LEVEL
// (debug, info, warn, error; default info). LOG_FORMAT=console switches
// from JSON to human-readable output for local development.
func NewLogger() zerolog.Logger {
	level := parseLevel(os.Getenv("LOG_LEVEL"))

	var logger zerolog.Logger
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "console") {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	} else {
		logger = zerolog.New(os.Stderr)
	}

	return logger.Level(level).With().Timestamp().Logger()
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
