// Package log defines the structured logging contract used across outcall.
//
// Overview:
//   - Responsibility: Stable logging interface decoupled from any backend
//   - Key Types: Logger interface with key-value structured logging, Nop logger
//   - Concurrency Model: Implementations must be safe for concurrent use
//   - Error Semantics: Logging never returns errors; failures are swallowed
//   - Performance Notes: Key-value pairs are passed through without allocation
//
// Usage:
//
//	logger.Warn("cancel handle panicked", log.Str("call", "GetUser"))
package log

import "time"

// Logger is a structured, leveled logging interface compatible with slog
// conventions. Implementations must be safe for concurrent use.
type Logger interface {
	// With returns a Logger that attaches the given key-value pairs to
	// every subsequent record.
	With(kv ...any) Logger

	// Debug logs a debug message with optional key-value pairs.
	Debug(msg string, kv ...any)

	// Info logs an informational message with optional key-value pairs.
	Info(msg string, kv ...any)

	// Warn logs a warning message with optional key-value pairs.
	Warn(msg string, kv ...any)

	// Error logs an error with a message and optional key-value pairs.
	// The error is the first parameter so backends can surface it as a
	// dedicated field.
	Error(err error, msg string, kv ...any)
}

// Str creates a string key-value pair.
func Str(k, v string) any {
	return []any{k, v}
}

// Int creates an integer key-value pair.
func Int(k string, v int) any {
	return []any{k, v}
}

// Dur creates a duration key-value pair.
func Dur(k string, v time.Duration) any {
	return []any{k, v}
}

// Nop returns a Logger that discards everything. It is the default logger
// for components that accept an optional Logger.
func Nop() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) With(kv ...any) Logger                  { return nopLogger{} }
func (nopLogger) Debug(msg string, kv ...any)            {}
func (nopLogger) Info(msg string, kv ...any)             {}
func (nopLogger) Warn(msg string, kv ...any)             {}
func (nopLogger) Error(err error, msg string, kv ...any) {}
