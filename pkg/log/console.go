package log

import (
	"context"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ConsoleLogger writes human-readable lines to a terminal using zerolog's
// ConsoleWriter:
//
//	[INFO ] Loading 'test.csv' as CSV data.  Size is 3 x 1000.
//	[WARN ] --output_predictions_file ignored because --test_file is not specified!
//	[FATAL] Required option --test_file is undefined.
//
// Loggers derived with With share the level of their parent, so raising the
// verbosity after parsing affects every logger handed out earlier.
type ConsoleLogger struct {
	zl    zerolog.Logger
	level *Level
}

// NewConsoleLogger creates a ConsoleLogger writing to w. Records below level
// are dropped.
func NewConsoleLogger(w io.Writer, level Level, color bool) *ConsoleLogger {
	cw := zerolog.ConsoleWriter{
		Out:         w,
		NoColor:     !color,
		PartsOrder:  []string{zerolog.LevelFieldName, zerolog.MessageFieldName},
		FormatLevel: formatConsoleLevel,
	}
	lvl := level
	return &ConsoleLogger{
		zl:    zerolog.New(cw),
		level: &lvl,
	}
}

func formatConsoleLevel(i interface{}) string {
	s, _ := i.(string)
	switch s {
	case zerolog.LevelDebugValue:
		return "[DEBUG]"
	case zerolog.LevelInfoValue:
		return "[INFO ]"
	case zerolog.LevelWarnValue:
		return "[WARN ]"
	case zerolog.LevelErrorValue:
		return "[FATAL]"
	default:
		return "[" + strings.ToUpper(s) + "]"
	}
}

// SetLevel changes the minimum level of c and of every logger derived from it.
func (c *ConsoleLogger) SetLevel(level Level) {
	*c.level = level
}

// Level returns the current minimum level.
func (c *ConsoleLogger) Level() Level {
	return *c.level
}

// Debug implements Logger.Debug.
func (c *ConsoleLogger) Debug(msg string, fields ...any) {
	if c.enabled(LevelDebug) {
		c.zl.Debug().Fields(fields).Msg(msg)
	}
}

// Info implements Logger.Info.
func (c *ConsoleLogger) Info(msg string, fields ...any) {
	if c.enabled(LevelInfo) {
		c.zl.Info().Fields(fields).Msg(msg)
	}
}

// Warn implements Logger.Warn.
func (c *ConsoleLogger) Warn(msg string, fields ...any) {
	if c.enabled(LevelWarn) {
		c.zl.Warn().Fields(fields).Msg(msg)
	}
}

// Error implements Logger.Error. A leading error field is attached with Err;
// its structured details are only added when debug output is enabled.
func (c *ConsoleLogger) Error(msg string, fields ...any) {
	if !c.enabled(LevelError) {
		return
	}
	event := c.zl.Error()
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			fields = fields[1:]
			if c.enabled(LevelDebug) {
				event = event.Err(err)
				var m zerolog.LogObjectMarshaler
				if errors.As(err, &m) {
					event = event.Object("details", m)
				}
			}
		}
	}
	event.Fields(fields).Msg(msg)
}

// With implements Logger.With.
func (c *ConsoleLogger) With(fields ...any) Logger {
	return &ConsoleLogger{
		zl:    c.zl.With().Fields(fields).Logger(),
		level: c.level,
	}
}

// Enabled implements Logger.Enabled.
func (c *ConsoleLogger) Enabled(ctx context.Context, level Level) bool {
	return c.enabled(level)
}

func (c *ConsoleLogger) enabled(level Level) bool {
	return level >= *c.level
}

// nopLogger discards everything.
type nopLogger struct{}

// Nop returns a Logger that discards all records.
func Nop() Logger { return nopLogger{} }

func (nopLogger) Debug(string, ...any)                {}
func (nopLogger) Info(string, ...any)                 {}
func (nopLogger) Warn(string, ...any)                 {}
func (nopLogger) Error(string, ...any)                {}
func (n nopLogger) With(...any) Logger                { return n }
func (nopLogger) Enabled(context.Context, Level) bool { return false }
