package app

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ayoisaiah/guardian/internal/config"
)

const envDebug = "GUARDIAN_DEBUG"

// newLogger writes JSON entries to w. Debug entries are only kept when
// GUARDIAN_DEBUG is set.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if _, ok := os.LookupEnv(envDebug); ok {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(handler).With(slog.String("version", config.Version))
}

// rotatingFile is the log file, rotated once it grows past 10 MB.
func rotatingFile(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
	}
}
