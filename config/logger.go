package config

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// NewLogger returns a slog.Logger configured from GO_ENV and LOG_LEVEL,
// writing to stdout.
func NewLogger() *slog.Logger {
	return NewLoggerTo(os.Stdout)
}

// NewLoggerTo is NewLogger with an explicit destination. The CLI logs to
// stderr so command output stays clean.
// Production uses JSON handler; otherwise text handler.
// LOG_LEVEL may be: debug, info, warn, error (default: info).
func NewLoggerTo(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(os.Getenv("LOG_LEVEL"))}
	if os.Getenv("GO_ENV") == "production" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
