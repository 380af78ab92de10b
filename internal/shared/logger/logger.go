package logger

import (
	"io"
	"log/slog"
	"os"

	"sso-server/internal/shared/config"
)

// Init builds the process logger from the logging config and installs it as
// the slog default.
func Init(cfg *config.Config) *slog.Logger {
	logger := New(os.Stdout, cfg.Logging)
	slog.SetDefault(logger)

	logger.With("component", "logger").Debug("Logger initialized",
		"level", cfg.Logging.Level,
		"json_format", cfg.Logging.JSONFormat,
		"environment", cfg.Server.Environment,
	)

	return logger
}

func New(w io.Writer, logConfig config.LoggingConfig) *slog.Logger {
	options := &slog.HandlerOptions{Level: parseLogLevel(logConfig.Level)}

	var handler slog.Handler
	if logConfig.JSONFormat {
		handler = slog.NewJSONHandler(w, options)
	} else {
		handler = slog.NewTextHandler(w, options)
	}

	return slog.New(handler)
}

func parseLogLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
