// Package logx provides a structured logging implementation based on slog.
//
// Overview:
//   - Responsibility: Implement core/log.Logger over log/slog handlers
//   - Key Types: Logger implementation, Options for configuration
//   - Concurrency Model: Loggers are safe for concurrent use
//   - Error Semantics: No errors returned; logging failures are silently handled
//   - Performance Notes: Key-value pairs convert to slog attrs lazily per record
//
// Usage:
//
//	logger := logx.New(logx.WithFormat(logx.FormatJSON), logx.WithLevel(slog.LevelDebug))
//	logger.Info("request submitted", log.Str("call", "GetUser"))
package logx

import (
	"io"
	"log/slog"
	"os"

	"go.eggybyte.com/outcall/core/log"
)

// Format specifies the output format for logs.
type Format string

const (
	// FormatText outputs logs as key=value text.
	FormatText Format = "text"
	// FormatJSON outputs logs as JSON objects.
	FormatJSON Format = "json"
)

// Options configures the logger behavior.
type Options struct {
	Format Format     // Output format: text or json
	Level  slog.Level // Minimum log level
	Writer io.Writer  // Output writer (default: os.Stderr)
}

// Option configures logger behavior.
type Option func(*Options)

// WithFormat sets the output format.
func WithFormat(format Format) Option {
	return func(o *Options) {
		o.Format = format
	}
}

// WithLevel sets the minimum log level.
func WithLevel(level slog.Level) Option {
	return func(o *Options) {
		o.Level = level
	}
}

// WithWriter sets the output writer.
func WithWriter(w io.Writer) Option {
	return func(o *Options) {
		o.Writer = w
	}
}

// Logger implements the core/log.Logger interface using slog.
type Logger struct {
	slogger *slog.Logger
}

// New creates a new Logger with the given options.
func New(opts ...Option) log.Logger {
	options := Options{
		Format: FormatText,
		Level:  slog.LevelInfo,
		Writer: os.Stderr,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Writer == nil {
		options.Writer = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: options.Level}
	var handler slog.Handler
	if options.Format == FormatJSON {
		handler = slog.NewJSONHandler(options.Writer, handlerOpts)
	} else {
		handler = slog.NewTextHandler(options.Writer, handlerOpts)
	}

	return &Logger{slogger: slog.New(handler)}
}

// With returns a new Logger with the given key-value pairs attached.
func (l *Logger) With(kv ...any) log.Logger {
	return &Logger{slogger: l.slogger.With(flatten(kv)...)}
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, kv ...any) {
	l.slogger.Debug(msg, flatten(kv)...)
}

// Info logs an informational message.
func (l *Logger) Info(msg string, kv ...any) {
	l.slogger.Info(msg, flatten(kv)...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, kv ...any) {
	l.slogger.Warn(msg, flatten(kv)...)
}

// Error logs an error message with the error as a structured field.
func (l *Logger) Error(err error, msg string, kv ...any) {
	errText := ""
	if err != nil {
		errText = err.Error()
	}
	args := append([]any{slog.String("error", errText)}, flatten(kv)...)
	l.slogger.Error(msg, args...)
}

// flatten expands the core/log pair encoding ([]any{key, value} elements)
// into slog's alternating key-value argument form.
func flatten(kv []any) []any {
	out := make([]any, 0, len(kv)*2)
	for _, item := range kv {
		if pair, ok := item.([]any); ok && len(pair) == 2 {
			out = append(out, pair[0], pair[1])
			continue
		}
		out = append(out, item)
	}
	return out
}
