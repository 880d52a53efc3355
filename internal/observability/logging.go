// Package observability provides structured logging and telemetry setup.
package observability

import (
	"log/slog"
	"os"
	"strings"
)

// InitLogger configures the global slog logger with JSON output at the given
// level. Logs go to stderr so they never interleave with the stdio MCP
// transport on stdout.
func InitLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return logger
}
