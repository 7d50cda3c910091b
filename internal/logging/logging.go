// Package logging sets up the client's diagnostic log. Output goes to a
// rotating file, not the terminal; the terminal belongs to the UI.
package logging

import (
	"log/slog"

	"github.com/Manideep236692/IARE-ChatBot/internal/config"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Init builds a JSON slog logger writing to the configured rotating file
// and installs it as the default.
func Init(cfg config.LogConfig) *slog.Logger {
	w := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     28,
		Compress:   true,
	}
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(level string) slog.Level {
	switch level {
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
