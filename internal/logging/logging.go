// Package logging builds the slog loggers used across pawmatch.
//
// Output is rendered by tint. The TUI writes to a file without color so the
// activity view can tail it; CLI commands write colored output to stderr.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lmittmann/tint"
)

// TimeFormat is the timestamp layout written at the start of every line.
const TimeFormat = "2006-01-02 15:04:05"

// Options configures New.
type Options struct {
	// Writer receives log lines. Defaults to os.Stderr.
	Writer io.Writer
	// Level is a slog level name: debug, info, warn or error.
	Level     string
	NoColor   bool
	AddSource bool
}

// ParseLevel maps a level name to a slog.Level. Empty means info.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	name = strings.TrimSpace(name)
	if name == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo, fmt.Errorf("parse log level %q: %w", name, err)
	}
	return level, nil
}

// New returns a tint-backed logger. An unknown level falls back to info and
// is reported through the returned error alongside a usable logger.
func New(opts Options) (*slog.Logger, error) {
	if opts.Writer == nil {
		opts.Writer = os.Stderr
	}
	level, err := ParseLevel(opts.Level)
	handler := tint.NewHandler(opts.Writer, &tint.Options{
		Level:      level,
		AddSource:  opts.AddSource,
		TimeFormat: TimeFormat,
		NoColor:    opts.NoColor,
	})
	return slog.New(handler), err
}

// OpenFile opens path for appending, creating parent directories.
func OpenFile(path string) (*os.File, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("log file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
