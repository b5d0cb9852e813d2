// Package logging configures the process-wide slog logger.
//
// Usage:
//
//	logger := logging.Setup(os.Stderr, "info", "text") // colored output via tint
//	logger := logging.Setup(os.Stdout, "debug", "json") // one JSON object per line
package logging

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup builds a logger for the given level and format, installs it as the
// slog default and returns it. Unknown levels fall back to info; any format
// other than "json" selects tint.
func Setup(w io.Writer, level, format string) *slog.Logger {
	logger := New(w, ParseLevel(level), format)
	slog.SetDefault(logger)
	return logger
}

// New builds a logger without touching the slog default.
func New(w io.Writer, level slog.Level, format string) *slog.Logger {
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  level == slog.LevelDebug,
	}))
}

// ParseLevel maps debug, info, warn and error to slog levels.
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
