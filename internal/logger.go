package internal

import (
	"io"
	"log/slog"
	"os"
)

// NewLogger creates a configured slog.Logger based on the environment.
// For DEV environment (isDev=true):
//   - Uses text handler for human-readable output
//   - Sets log level to DEBUG for detailed logging
//
// For PROD environment (isDev=false):
//   - Uses JSON handler with Cloud Logging field names (severity, message)
//   - Sets log level to INFO for production use
func NewLogger(isDev bool) *slog.Logger {
	return newLogger(os.Stdout, isDev)
}

func newLogger(w io.Writer, isDev bool) *slog.Logger {
	var handler slog.Handler
	if isDev {
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:       slog.LevelInfo,
			ReplaceAttr: cloudLoggingAttr,
		})
	}

	return slog.New(handler).With("service", "lesson-notifier")
}

func cloudLoggingAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}

	switch a.Key {
	case slog.LevelKey:
		a.Key = "severity"
		if level, ok := a.Value.Any().(slog.Level); ok && level == slog.LevelWarn {
			a.Value = slog.StringValue("WARNING")
		}
	case slog.MessageKey:
		a.Key = "message"
	}
	return a
}
