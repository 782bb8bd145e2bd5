package log

import (
	"context"
	"io"
	"log/slog"
)

// JSONLogger is a Logger writing one JSON object per record through
// log/slog. A leading error field of Error is logged under ErrAttrKey, so the
// record carries the stack trace and the error kind.
type JSONLogger struct {
	l     *slog.Logger
	level *slog.LevelVar
}

// NewJSONLogger creates a JSONLogger writing to w. Records below level are
// dropped.
func NewJSONLogger(w io.Writer, level Level) *JSONLogger {
	lv := new(slog.LevelVar)
	lv.Set(slog.Level(level))
	return &JSONLogger{l: slog.New(jsonHandler(w, lv, false)), level: lv}
}

// SetLevel changes the minimum level of j and of every logger derived from it.
func (j *JSONLogger) SetLevel(level Level) {
	j.level.Set(slog.Level(level))
}

// Level returns the current minimum level.
func (j *JSONLogger) Level() Level {
	return Level(j.level.Level())
}

// Debug implements Logger.Debug.
func (j *JSONLogger) Debug(msg string, fields ...any) { j.l.Debug(msg, fields...) }

// Info implements Logger.Info.
func (j *JSONLogger) Info(msg string, fields ...any) { j.l.Info(msg, fields...) }

// Warn implements Logger.Warn.
func (j *JSONLogger) Warn(msg string, fields ...any) { j.l.Warn(msg, fields...) }

// Error implements Logger.Error.
func (j *JSONLogger) Error(msg string, fields ...any) {
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			fields = append([]any{ErrAttr(err)}, fields[1:]...)
		}
	}
	j.l.Error(msg, fields...)
}

// With implements Logger.With.
func (j *JSONLogger) With(fields ...any) Logger {
	return &JSONLogger{l: j.l.With(fields...), level: j.level}
}

// Enabled implements Logger.Enabled.
func (j *JSONLogger) Enabled(ctx context.Context, level Level) bool {
	return j.l.Enabled(ctx, slog.Level(level))
}
