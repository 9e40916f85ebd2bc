// Package logger configures the process-wide structured logger.
package logger

import (
	"log/slog"
	"os"
)

var Logger *slog.Logger

// Init builds the slog logger and installs it as the default. DEBUG
// lowers the level, LOG_FORMAT=json switches the handler.
func Init() {
	level := slog.LevelInfo
	if os.Getenv("DEBUG") == "true" {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if os.Getenv("LOG_FORMAT") == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	Logger = slog.New(handler)
	slog.SetDefault(Logger)
}

func get() *slog.Logger {
	if Logger == nil {
		return slog.Default()
	}
	return Logger
}

func Info(msg string, args ...any) {
	get().Info(msg, args...)
}

func Error(msg string, args ...any) {
	get().Error(msg, args...)
}

func Debug(msg string, args ...any) {
	get().Debug(msg, args...)
}

func Warn(msg string, args ...any) {
	get().Warn(msg, args...)
}
