// Package logging configures colored structured logging with tint.
//
// Usage:
//
//	logging.Setup("warn")                   // level from config or LOG_LEVEL
//	logging.SetupWithLevel(slog.LevelDebug) // explicit level override
//
// Logs go to stderr so they never interleave with prompts on stdout.
package logging

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

// Setup configures colored logging at the named level (debug, info, warn,
// error; anything else means info) and returns the new default logger.
func Setup(level string) *slog.Logger {
	return SetupWithLevel(ParseLevel(level))
}

// SetupWithLevel configures colored logging at the given level.
func SetupWithLevel(level slog.Level) *slog.Logger {
	logger := slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			AddSource:  level <= slog.LevelDebug,
			NoColor:    !term.IsTerminal(int(os.Stderr.Fd())),
		}),
	)
	slog.SetDefault(logger)
	return logger
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
