package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

type options struct {
	writer io.Writer
	level  slog.Level
	source bool
	json   bool
}

// Option configures the logger built by New.
type Option func(*options)

// WithLevel sets the minimum level from a verbose string: debug, info, warn or error.
func WithLevel(verbose string) Option {
	return func(o *options) {
		o.level = ParseLevel(verbose)
	}
}

// WithSource adds the source file and line to every record.
func WithSource() Option {
	return func(o *options) {
		o.source = true
	}
}

// WithWriter redirects the output, stderr by default.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		o.writer = w
	}
}

// WithJSON switches the output to JSON lines.
func WithJSON() Option {
	return func(o *options) {
		o.json = true
	}
}

// New creates a slog logger with UTC timestamps.
func New(opts ...Option) *slog.Logger {
	o := &options{
		writer: os.Stderr,
		level:  slog.LevelInfo,
	}
	for _, opt := range opts {
		opt(o)
	}

	handlerOptions := &slog.HandlerOptions{
		Level:     o.level,
		AddSource: o.source,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
			}
			return a
		},
	}

	var handler slog.Handler
	if o.json {
		handler = slog.NewJSONHandler(o.writer, handlerOptions)
	} else {
		handler = slog.NewTextHandler(o.writer, handlerOptions)
	}

	return slog.New(handler)
}

// ParseLevel converts a verbose string to a slog level, info for unknown values.
func ParseLevel(verbose string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(verbose)) {
	case "debug", "trace", "all":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "fatal", "none":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard returns a logger that drops everything, handy in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
