// Package logging sends structured JSON logs to a rotating file, keeping the
// terminal free for the UI.
package logging

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Level string

var _ pflag.Value = (*Level)(nil)

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

func (l *Level) String() string {
	if l == nil {
		return ""
	}
	return string(*l)
}

func (l *Level) Set(v string) error {
	for _, level := range []Level{LevelDebug, LevelInfo, LevelWarn, LevelError} {
		if v == string(level) {
			*l = level
			return nil
		}
	}
	return errors.New(`must be one of "debug", "info", "warn", or "error"`)
}

func (l *Level) Type() string {
	return "log-level"
}

func (l Level) SlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Sink returns the rotating writer for filename. When the directory cannot be
// created it falls back to fallback.
func Sink(filename string, fallback io.Writer) io.Writer {
	if filename == "" {
		return fallback
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fallback
	}
	return &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    50,
		MaxAge:     7,
		MaxBackups: 3,
		Compress:   true,
	}
}

// New builds a JSON logger writing to w at level.
func New(w io.Writer, level Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level.SlogLevel(),
	}))
}

// Setup installs a file-backed logger as the slog default and returns it
// with a function that flushes and closes the file.
func Setup(filename string, level Level) (*slog.Logger, func() error) {
	w := Sink(filename, io.Discard)
	log := New(w, level)
	slog.SetDefault(log)
	closer := func() error { return nil }
	if c, ok := w.(io.Closer); ok {
		closer = c.Close
	}
	return log, closer
}
