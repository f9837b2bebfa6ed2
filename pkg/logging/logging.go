package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// LevelOff silences every record, for status bars that merge stderr into
// their own output.
const LevelOff = slog.Level(12)

// DefaultLevel applies when no level or an unknown one is configured. The
// reporter cycles twice a second, so info would log every cycle.
const DefaultLevel = slog.LevelWarn

// Logger is the JSON logger handed to every component. It never writes to
// stdout, which carries the status records and query output.
type Logger struct {
	core   *slog.Logger
	closer io.Closer
	mu     sync.Mutex
}

// Options describe how to construct a logger instance.
type Options struct {
	// File, when set, receives a copy of every line (appended, mode 0600).
	File string
	// Level is one of debug, info, warn, error or off.
	Level string
	// Output defaults to stderr.
	Output io.Writer
}

// New builds a logger writing JSON to Output and, optionally, to File.
func New(opts Options) (*Logger, error) {
	level := parseLevel(opts.Level)
	writer := opts.Output
	if writer == nil {
		writer = os.Stderr
	}
	var closer io.Closer

	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, err
		}
		writer = io.MultiWriter(writer, f)
		closer = f
	}

	handler := slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: level})
	return &Logger{
		core:   slog.New(handler),
		closer: closer,
	}, nil
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{core: slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: LevelOff}))}
}

// Info logs at info level.
func (l *Logger) Info(msg string, args ...any) {
	l.core.Info(msg, args...)
}

// Error logs at error level.
func (l *Logger) Error(msg string, args ...any) {
	l.core.Error(msg, args...)
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, args ...any) {
	l.core.Debug(msg, args...)
}

// Warn logs at warn level.
func (l *Logger) Warn(msg string, args ...any) {
	l.core.Warn(msg, args...)
}

// Sync flushes and closes any underlying file handles.
func (l *Logger) Sync() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closer != nil {
		_ = l.closer.Close()
		l.closer = nil
	}
}

// With returns a child logger with structured attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{core: l.core.With(args...)}
}

// parseLevel maps LOG_LEVEL / logging.level onto slog levels.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "off", "none", "quiet":
		return LevelOff
	default:
		return DefaultLevel
	}
}
