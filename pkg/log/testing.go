// Testing utilities for structured logging: a capture logger that records
// messages in memory so tests can assert on log output without touching
// stderr.

package log

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// TestLogger is a Logger implementation for tests. It captures all emitted
// records in memory for later inspection.
type TestLogger struct {
	mu      sync.Mutex
	level   Level
	fields  []any
	records []TestRecord
	parent  *TestLogger
}

// TestRecord is one captured log record.
type TestRecord struct {
	Level   Level
	Message string
	Fields  []any
}

// NewTestLogger creates a TestLogger capturing records at or above level.
func NewTestLogger(level Level) *TestLogger {
	return &TestLogger{level: level}
}

// Debug implements Logger.Debug.
func (t *TestLogger) Debug(msg string, fields ...any) { t.record(LevelDebug, msg, fields) }

// Info implements Logger.Info.
func (t *TestLogger) Info(msg string, fields ...any) { t.record(LevelInfo, msg, fields) }

// Warn implements Logger.Warn.
func (t *TestLogger) Warn(msg string, fields ...any) { t.record(LevelWarn, msg, fields) }

// Error implements Logger.Error.
func (t *TestLogger) Error(msg string, fields ...any) { t.record(LevelError, msg, fields) }

// With implements Logger.With. Derived loggers share the parent's record
// buffer so captured output is visible from the root TestLogger.
func (t *TestLogger) With(fields ...any) Logger {
	root := t.root()
	return &TestLogger{
		level:  t.level,
		fields: append(append([]any{}, t.fields...), fields...),
		parent: root,
	}
}

// Enabled implements Logger.Enabled.
func (t *TestLogger) Enabled(_ context.Context, level Level) bool {
	return level >= t.level
}

// Records returns a copy of all captured records.
func (t *TestLogger) Records() []TestRecord {
	root := t.root()
	root.mu.Lock()
	defer root.mu.Unlock()
	out := make([]TestRecord, len(root.records))
	copy(out, root.records)
	return out
}

// Contains reports whether any captured record's message contains substr.
func (t *TestLogger) Contains(substr string) bool {
	for _, r := range t.Records() {
		if strings.Contains(r.Message, substr) {
			return true
		}
	}
	return false
}

// CountMessages returns how many captured records carry exactly msg.
func (t *TestLogger) CountMessages(msg string) int {
	n := 0
	for _, r := range t.Records() {
		if r.Message == msg {
			n++
		}
	}
	return n
}

// String renders all captured records, one per line.
func (t *TestLogger) String() string {
	var b strings.Builder
	for _, r := range t.Records() {
		fmt.Fprintf(&b, "%s %s %v\n", r.Level, r.Message, r.Fields)
	}
	return b.String()
}

func (t *TestLogger) record(level Level, msg string, fields []any) {
	if level < t.level {
		return
	}
	root := t.root()
	root.mu.Lock()
	defer root.mu.Unlock()
	all := append(append([]any{}, t.fields...), fields...)
	root.records = append(root.records, TestRecord{Level: level, Message: msg, Fields: all})
}

func (t *TestLogger) root() *TestLogger {
	if t.parent != nil {
		return t.parent
	}
	return t
}
