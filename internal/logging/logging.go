// Package logging builds the slog loggers both binaries use.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// ParseLevel parses a level name: debug, info, warn (or warning) and error.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// level is the level of loggers built by Setup; SetLevel changes it live.
var level = new(slog.LevelVar)

// New returns a logger writing to w at level. Pretty output is colourised tint;
// otherwise it is plain slog text, suitable for journals and pipes.
func New(w io.Writer, level slog.Leveler, pretty bool) *slog.Logger {
	if pretty {
		return slog.New(tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Setup builds a logger from a level name and installs it as the default.
// An unknown name falls back to info and is reported in the returned error.
func Setup(w io.Writer, levelName string, pretty bool) (*slog.Logger, error) {
	parsed, err := ParseLevel(levelName)
	level.Set(parsed)
	logger := New(w, level, pretty)
	slog.SetDefault(logger)
	return logger, err
}

// SetLevel changes the level of every logger built by Setup.
// An unknown name leaves the level unchanged.
func SetLevel(levelName string) error {
	parsed, err := ParseLevel(levelName)
	if err != nil {
		return err
	}
	level.Set(parsed)
	return nil
}
