// Package testingx provides test collaborators for outcall.
package testingx

import (
	"strings"
	"sync"
	"testing"

	"go.eggybyte.com/outcall/core/log"
)

// MockLogger is a recording logger for tests. It is safe for concurrent
// use; log sites in outcall may run on transport goroutines.
type MockLogger struct {
	t       *testing.T
	mu      sync.Mutex
	entries []LogEntry
}

// LogEntry is a single recorded log record.
type LogEntry struct {
	Level   string
	Message string
	Fields  []any
	Error   error
}

// NewMockLogger creates a MockLogger bound to the test.
func NewMockLogger(t *testing.T) *MockLogger {
	return &MockLogger{t: t}
}

// With returns the receiver; attached fields are not tracked.
func (m *MockLogger) With(kv ...any) log.Logger {
	return m
}

// Debug records a debug entry.
func (m *MockLogger) Debug(msg string, kv ...any) {
	m.record("DEBUG", msg, nil, kv)
}

// Info records an info entry.
func (m *MockLogger) Info(msg string, kv ...any) {
	m.record("INFO", msg, nil, kv)
}

// Warn records a warning entry.
func (m *MockLogger) Warn(msg string, kv ...any) {
	m.record("WARN", msg, nil, kv)
}

// Error records an error entry.
func (m *MockLogger) Error(err error, msg string, kv ...any) {
	m.record("ERROR", msg, err, kv)
}

func (m *MockLogger) record(level, msg string, err error, kv []any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, LogEntry{
		Level:   level,
		Message: msg,
		Fields:  kv,
		Error:   err,
	})
}

// Entries returns a copy of all recorded entries.
func (m *MockLogger) Entries() []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]LogEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// CountLevel returns how many entries were recorded at the given level.
func (m *MockLogger) CountLevel(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

// HasMessage reports whether any entry's message contains substr.
func (m *MockLogger) HasMessage(substr string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		if strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
