package app

import (
	"io"
	"log/slog"
)

// parseLevel maps a validated log-level name to its slog level. Unknown
// names fall back to warn, the quietest level that still reports skipped
// input.
func parseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// newLogger builds the logger for one App. It writes to logW only and does
// not touch the global logger, so stdout stays reserved for the result.
func newLogger(levelStr, formatStr string, logW io.Writer) *slog.Logger {
	level := parseLevel(levelStr)
	handlerOpts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	if formatStr == "json" {
		handler = slog.NewJSONHandler(logW, handlerOpts)
	} else {
		handler = slog.NewTextHandler(logW, handlerOpts)
	}
	return slog.New(handler).With("cmd", "mdl2json")
}
