// Package log provides structured logging for weak-supervision operations.
//
// It defines a minimal logging interface backed by zerolog, together with
// standard attribute keys for the quantities this pipeline logs: model and
// operation identity, label-matrix shape, and optimization progress. The
// interface keeps the numeric code independent of the logging backend and
// makes log output assertable in tests via a capture logger.
package log

import (
	"context"
)

// Logger defines a structured logging interface with key-value fields.
//
// Fields are passed as alternating key-value pairs. The With method returns
// a derived logger with fields pre-populated, so a model can build a
// contextual logger once at the start of Fit and reuse it per epoch.
type Logger interface {
	// Debug logs a debug-level message with optional structured fields.
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional structured fields.
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional structured fields.
	Warn(msg string, fields ...any)

	// Error logs an error-level message with optional structured fields.
	// If the first field is an error, it is attached as the error attribute.
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits records at the given level.
	// Use it to skip expensive field construction for suppressed levels.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level values.
type Level int

// Standard logging levels.
const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
