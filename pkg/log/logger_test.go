package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"

	mlerrors "github.com/shrit/mlpack/pkg/errors"
)

func TestTestLoggerCapturesLevelsAndFields(t *testing.T) {
	logger, buffer := NewTestLogger(LevelDebug)

	logger.Debug("debug message", "key1", "value1", "number", 42)
	logger.Info("info message", OperationKey, OperationPredict)
	logger.Warn("warning message", FlagKey, "--output_predictions")
	logger.Error("error message", fmt.Errorf("boom"), ErrorCodeKey, "TEST_ERROR")

	if buffer.Len() == 0 {
		t.Fatal("expected captured output")
	}
	for _, msg := range []string{"debug message", "info message", "warning message", "error message"} {
		if !logger.ContainsMessage(msg) {
			t.Errorf("message %q not captured", msg)
		}
	}
	if !logger.ContainsField("key1", "value1") {
		t.Error("key1=value1 not captured")
	}
	if !logger.ContainsField("number", 42.0) {
		t.Error("number=42 not captured")
	}
	if !logger.ContainsField(ErrAttrKey, "boom") {
		t.Error("leading error not recorded under the error key")
	}
	if !logger.ContainsField("level", "WARN") {
		t.Error("level name not recorded")
	}
}

func TestTestLoggerWithSharesLevel(t *testing.T) {
	logger, _ := NewTestLogger(LevelWarn)
	child := logger.With(BindingKey, "linear_regression_predict")

	child.Info("hidden")
	if logger.ContainsMessage("hidden") {
		t.Fatal("info record emitted below warn level")
	}

	logger.SetLevel(LevelInfo)
	child.Info("shown", ParamNameKey, "test")
	if !logger.ContainsField(BindingKey, "linear_regression_predict") {
		t.Error("With field missing from child record")
	}
	if !logger.ContainsField(ParamNameKey, "test") {
		t.Error("record field missing")
	}
	if !child.Enabled(context.Background(), LevelInfo) {
		t.Error("child should see the raised verbosity")
	}

	logger.Clear()
	entries, err := logger.GetLogEntries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("Clear left %d entries", len(entries))
	}
}

func TestTestLoggerConcurrentWrites(t *testing.T) {
	logger, _ := NewTestLogger(LevelInfo)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				logger.With("worker", id).Info("tick", "iteration", j)
			}
		}(i)
	}
	wg.Wait()

	entries, err := logger.GetLogEntries()
	if err != nil {
		t.Fatalf("interleaved output: %v", err)
	}
	if len(entries) != 80 {
		t.Errorf("got %d entries, want 80", len(entries))
	}
}

func TestConsoleLoggerFormat(t *testing.T) {
	tests := []struct {
		name string
		emit func(l Logger)
		want string
	}{
		{"info", func(l Logger) { l.Info("Loading model.") }, "[INFO ] Loading model."},
		{"warn", func(l Logger) { l.Warn("ignored") }, "[WARN ] ignored"},
		{"debug", func(l Logger) { l.Debug("detail") }, "[DEBUG] detail"},
		{"fatal", func(l Logger) { l.Error("Required option --test_file is undefined.") }, "[FATAL] Required option --test_file is undefined."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(NewConsoleLogger(&buf, LevelDebug, false))
			if got := strings.TrimSpace(buf.String()); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConsoleLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf, LevelWarn, false)
	derived := logger.With(BindingKey, "linear_regression")

	derived.Info("quiet")
	if buf.Len() != 0 {
		t.Fatalf("info emitted at warn level: %q", buf.String())
	}
	if derived.Enabled(context.Background(), LevelInfo) {
		t.Error("Enabled(info) should be false at warn level")
	}

	logger.SetLevel(LevelInfo)
	derived.Info("loud")
	out := buf.String()
	if !strings.Contains(out, "[INFO ] loud") {
		t.Errorf("missing info line after SetLevel: %q", out)
	}
	if !strings.Contains(out, "linear_regression") {
		t.Errorf("With field not rendered: %q", out)
	}
	if logger.Level() != LevelInfo {
		t.Errorf("Level() = %v", logger.Level())
	}
}

func TestConsoleLoggerErrorDetailsOnlyWhenDebugging(t *testing.T) {
	err := mlerrors.NewMissingRequiredError("test_file")

	var quiet bytes.Buffer
	NewConsoleLogger(&quiet, LevelInfo, false).Error(err.Error(), err)
	if strings.Contains(quiet.String(), "MISSING_REQUIRED") {
		t.Errorf("details rendered without debug: %q", quiet.String())
	}

	var loud bytes.Buffer
	NewConsoleLogger(&loud, LevelDebug, false).Error(err.Error(), err)
	if !strings.Contains(loud.String(), "MISSING_REQUIRED") {
		t.Errorf("details missing with debug: %q", loud.String())
	}
}

func TestNopLogger(t *testing.T) {
	l := Nop()
	l.Info("x")
	l.With("a", 1).Error("y")
	if l.Enabled(context.Background(), LevelError) {
		t.Error("nop logger should never be enabled")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"info", LevelInfo, false},
		{"warn", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	defer func() {
		if recover() == nil {
			t.Error("ToLogLevel should panic on unknown names")
		}
	}()
	ToLogLevel("loud")
}

func TestErrFmtHandlerAddsStackAndKind(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	SetupLoggerTo(&buf, "debug")
	slog.Error("parse failed", ErrAttr(mlerrors.NewMissingRequiredError("test_file")))
	slog.Info("plain")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines", len(lines))
	}
	var first map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatal(err)
	}
	if first["message"] != "parse failed" {
		t.Errorf("message = %v", first["message"])
	}
	if first["severity"] != "ERROR" {
		t.Errorf("severity = %v", first["severity"])
	}
	if first[ErrorTypeKey] != "UserInputError" {
		t.Errorf("%s = %v", ErrorTypeKey, first[ErrorTypeKey])
	}
	if strings.Contains(lines[1], StacktraceAttrKey) {
		t.Error("stacktrace added to a record without an error")
	}
}

func TestErrFmtHandlerStacktrace(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	SetupLoggerTo(&buf, "info")
	slog.Error("failed", ErrAttr(errors.New("boom")))

	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatal(err)
	}
	st, _ := entry[StacktraceAttrKey].(string)
	if st == "" {
		t.Fatal("expected a stacktrace attribute")
	}
	if _, ok := entry[ErrorTypeKey]; ok {
		t.Error("plain errors carry no kind")
	}
}

func TestJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, LevelWarn)
	child := logger.With(BindingKey, "linear_regression")

	child.Info("dropped")
	logger.SetLevel(LevelInfo)
	child.Info("kept", ParamNameKey, "test")
	child.Error("Required option --test_file is undefined.", mlerrors.NewMissingRequiredError("test_file"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), buf.String())
	}
	var info, fatal map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &info); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &fatal); err != nil {
		t.Fatal(err)
	}
	if info["message"] != "kept" || info[ParamNameKey] != "test" || info[BindingKey] != "linear_regression" {
		t.Errorf("info record = %v", info)
	}
	if fatal["severity"] != "ERROR" || fatal[ErrorTypeKey] != "UserInputError" {
		t.Errorf("error record = %v", fatal)
	}
	if fatal[ErrAttrKey] != "Required option --test_file is undefined." {
		t.Errorf("%s = %v", ErrAttrKey, fatal[ErrAttrKey])
	}
	if logger.Level() != LevelInfo || !child.Enabled(context.Background(), LevelInfo) {
		t.Error("derived loggers share the level")
	}
}

func BenchmarkConsoleLogger(b *testing.B) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf, LevelInfo, false)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("Loading data", FileKey, "test.csv")
		buf.Reset()
	}
}
