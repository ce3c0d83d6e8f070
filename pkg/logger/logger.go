// Package logger builds the process-wide slog logger and the attribute helpers
// used across packages.
package logger

import (
	"log/slog"
	"os"
	"strings"

	"go.uber.org/fx"
)

var Module = fx.Module("logger",
	fx.Provide(NewLogger),
)

// NewLogger creates a logger from LOG_LEVEL and GO_ENV / ENVIRONMENT.
// Production uses JSON output, everything else the text handler. Output goes
// to stderr so commands can keep stdout for their own payload.
func NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(os.Getenv("LOG_LEVEL")),
	}

	var handler slog.Handler
	if isProduction() {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
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

func isProduction() bool {
	for _, key := range []string{"GO_ENV", "ENVIRONMENT"} {
		if strings.EqualFold(os.Getenv(key), "production") {
			return true
		}
	}
	return false
}

// Scope tags a log line with the component that produced it.
func Scope(name string) slog.Attr {
	return slog.String("scope", name)
}

// Error wraps err as the "error" attribute.
func Error(err error) slog.Attr {
	return slog.Any("error", err)
}
