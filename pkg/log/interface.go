// Package log provides the structured logging used by mlpack bindings.
//
// The Logger interface is slog-compatible so that any backend can be plugged
// in. ConsoleLogger is a zerolog backend that renders the "[INFO ] message"
// lines printed by command-line programs. JSONLogger writes slog JSON records
// instead, and TestLogger captures JSON lines for assertions.
//
// Example usage:
//
//	logger := log.NewConsoleLogger(os.Stderr, log.LevelWarn, false)
//	logger.With(log.BindingKey, "linear_regression").Info("Loading model",
//	    log.ParamNameKey, "input_model",
//	    log.FileKey, "lr.json",
//	)
package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with log/slog.
type Logger interface {
	// Debug logs diagnostic detail with optional key-value fields.
	Debug(msg string, fields ...any)

	// Info logs informational messages. Bindings only show these when
	// --verbose is given.
	Info(msg string, fields ...any)

	// Warn logs problems that do not stop the program.
	Warn(msg string, fields ...any)

	// Error logs a fatal condition. If the first field is an error it is
	// attached to the record as the error attribute.
	//
	//   logger.Error("Parsing failed", err, log.FlagKey, "--test_file")
	Error(msg string, fields ...any)

	// With returns a Logger that adds fields to every record.
	With(fields ...any) Logger

	// Enabled reports whether records at level are emitted.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
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

// LevelSetter is implemented by loggers whose level can change after
// construction, such as when --verbose is parsed.
type LevelSetter interface {
	SetLevel(level Level)
}
