package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/shrit/mlpack"
	"github.com/shrit/mlpack/core/params"
	"github.com/shrit/mlpack/core/timer"
	"github.com/shrit/mlpack/pkg/errors"
	"github.com/shrit/mlpack/pkg/log"
)

func newParams(t *testing.T, ds ...params.ParamData) (*params.Params, *log.TestLogger) {
	t.Helper()
	logger, _ := log.NewTestLogger(log.LevelInfo)
	p := params.New(logger)
	p.SetDetails(params.BindingDetails{Name: "test", Short: "A test program."})
	if err := AddDefaultOptions(p); err != nil {
		t.Fatal(err)
	}
	for _, d := range ds {
		if err := p.Add(d); err != nil {
			t.Fatal(err)
		}
	}
	return p, logger
}

func parse(p *params.Params, args ...string) (string, error) {
	var out bytes.Buffer
	err := ParseCommandLine(p, args, &out)
	return out.String(), err
}

func errCode(err error) string {
	var pe *errors.ParamError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

type kernel struct {
	Bandwidth float64 `json:"bandwidth" yaml:"bandwidth" xml:"bandwidth"`
}

func (kernel) ModelName() string { return "GaussianKernel" }

func TestHasFollowsAlias(t *testing.T) {
	p, _ := newParams(t, params.FlagParam("bool", "True or false.", 'a'))

	has, err := p.Has("bool")
	if err != nil || has {
		t.Fatalf("Has before parsing = %v, %v", has, err)
	}
	if _, err := parse(p, "-a"); err != nil {
		t.Fatal(err)
	}
	byName, _ := p.Has("bool")
	byAlias, _ := p.Has("a")
	if !byName || byName != byAlias {
		t.Errorf("Has(bool) = %v, Has(a) = %v", byName, byAlias)
	}
	v, _ := params.Get[bool](p, "a")
	if !v {
		t.Error("flag should be set through its alias")
	}
}

func TestDefaultValue(t *testing.T) {
	p, _ := newParams(t, params.IntIn("test", "test desc", 0, 42))
	if _, err := parse(p); err != nil {
		t.Fatal(err)
	}
	if v, _ := params.Get[int](p, "test"); v != 42 {
		t.Errorf("default = %d", v)
	}
	if has, _ := p.Has("test"); has {
		t.Error("a default value does not count as passed")
	}
}

func TestDuplicateToggle(t *testing.T) {
	for _, args := range [][]string{{"--test", "--test"}, {"-tt"}, {"--test", "-t"}} {
		p, _ := newParams(t, params.FlagParam("test", "test", 't'))
		if _, err := parse(p, args...); err != nil {
			t.Errorf("%v: %v", args, err)
		}
		if has, _ := p.Has("test"); !has {
			t.Errorf("%v: flag not passed", args)
		}
	}
}

func TestDuplicateSingleValue(t *testing.T) {
	p, _ := newParams(t)
	_, err := parse(p, "--info", "test1", "--info", "test2")
	if errCode(err) != errors.CodeConflictingValue {
		t.Fatalf("conflicting values: %v", err)
	}
	if err.Error() != `"info" is defined multiple times.` {
		t.Errorf("message = %q", err.Error())
	}
	if errors.KindOf(err) != errors.KindUserInput {
		t.Errorf("kind = %v", errors.KindOf(err))
	}

	p, _ = newParams(t, params.FloatIn("lambda", "Lambda.", 'l', 0))
	if _, err := parse(p, "--lambda", "0.5", "-l", "0.5", "--lambda=0.5"); err != nil {
		t.Fatalf("identical values should be accepted: %v", err)
	}
	if v, _ := params.Get[float64](p, "lambda"); v != 0.5 {
		t.Errorf("lambda = %v", v)
	}

	p, _ = newParams(t, params.FloatIn("lambda", "Lambda.", 'l', 0))
	if _, err := parse(p, "--lambda", "1", "-l", "1.0", "--lambda=1e0"); err != nil {
		t.Fatalf("equal numbers should be accepted: %v", err)
	}
	if v, _ := params.Get[float64](p, "lambda"); v != 1 {
		t.Errorf("lambda = %v", v)
	}

	p, _ = newParams(t, params.FloatIn("lambda", "Lambda.", 'l', 0))
	if _, err := parse(p, "--lambda", "1", "-l", "1.5"); errCode(err) != errors.CodeConflictingValue {
		t.Errorf("different numbers: %v", err)
	}

	p, _ = newParams(t, params.StringIn("name", "Name.", 'n', ""))
	if _, err := parse(p, "--name", "1", "-n", "1.0"); errCode(err) != errors.CodeConflictingValue {
		t.Errorf("strings compare as written: %v", err)
	}
}

func TestBooleanOption(t *testing.T) {
	p, _ := newParams(t, params.FlagParam("flag_test", "flag test description", 0))
	if v, _ := params.Get[bool](p, "flag_test"); v {
		t.Error("a flag is false by default")
	}
	if _, err := parse(p, "--flag_test"); err != nil {
		t.Fatal(err)
	}
	if v, _ := params.Get[bool](p, "flag_test"); !v {
		t.Error("flag should be true once passed")
	}
	if has, _ := p.Has("flag_test"); !has {
		t.Error("Has should report the flag")
	}
}

func TestVectorForms(t *testing.T) {
	forms := [][]string{
		{"--test_vec", "1", "2", "4"},
		{"--test_vec", "1", "--test_vec", "2", "--test_vec", "4"},
		{"-t", "1", "2", "-t", "4"},
		{"--test_vec=1", "2", "4"},
		{"-t1", "-t2", "-t4"},
	}
	for _, args := range forms {
		p, _ := newParams(t, params.VectorIn[int]("test_vec", "test description", 't'))
		if _, err := parse(p, args...); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		if has, _ := p.Has("test_vec"); !has {
			t.Errorf("%v: not passed", args)
		}
		v, err := params.Get[[]int](p, "test_vec")
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(v, []int{1, 2, 4}) {
			t.Errorf("%v: got %v", args, v)
		}
	}

	p, _ := newParams(t,
		params.VectorIn[float64]("offsets", "Offsets.", 'o'),
		params.FlagParam("flag", "Flag.", 'f'),
	)
	if _, err := parse(p, "-o", "-1", "2.5", "-3e2", "-f"); err != nil {
		t.Fatal(err)
	}
	v, _ := params.Get[[]float64](p, "offsets")
	if !reflect.DeepEqual(v, []float64{-1, 2.5, -300}) {
		t.Errorf("negative numbers should be values: %v", v)
	}
	if f, _ := params.Get[bool](p, "flag"); !f {
		t.Error("the flag after the vector should be parsed")
	}
}

func TestScalarForms(t *testing.T) {
	forms := [][]string{
		{"--double", "3.12"},
		{"--double=3.12"},
		{"-d", "3.12"},
		{"-d3.12"},
		{"-vd", "3.12"},
	}
	for _, args := range forms {
		p, _ := newParams(t,
			params.FloatIn("double", "A double.", 'd', 0),
			params.StringIn("string", "A string.", 's', ""),
		)
		if _, err := parse(p, args...); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		if has, _ := p.Has("double"); !has {
			t.Errorf("%v: not passed", args)
		}
		if v, _ := params.Get[float64](p, "double"); v != 3.12 {
			t.Errorf("%v: double = %v", args, v)
		}
	}

	p, _ := newParams(t, params.IntIn("int", "An int.", 'i', 0), params.StringIn("string", "A string.", 's', ""))
	if _, err := parse(p, "-i", "-5", "--string", "--not-a-flag"); err != nil {
		t.Fatal(err)
	}
	if v, _ := params.Get[int](p, "int"); v != -5 {
		t.Errorf("int = %d", v)
	}
	if v, _ := params.Get[string](p, "string"); v != "--not-a-flag" {
		t.Errorf("a single value is taken as is: %q", v)
	}
}

func TestRejectedCommandLines(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code string
	}{
		{"unknown long", []string{"--unknown"}, errors.CodeUnknownOption},
		{"unknown short", []string{"-z"}, errors.CodeUnknownOption},
		{"unknown with valid", []string{"-d", "1", "--unknown=3"}, errors.CodeUnknownOption},
		{"positional", []string{"-d", "1", "extra"}, errors.CodeUnexpectedToken},
		{"after terminator", []string{"--", "file.csv"}, errors.CodeUnexpectedToken},
		{"missing value", []string{"--double"}, errors.CodeMalformedValue},
		{"terminator as value", []string{"--double", "--"}, errors.CodeMalformedValue},
		{"terminator as short value", []string{"-d", "--"}, errors.CodeMalformedValue},
		{"malformed value", []string{"--double", "abc"}, errors.CodeMalformedValue},
		{"toggle with value", []string{"--verbose=true"}, errors.CodeMalformedValue},
		{"derived name of a scalar", []string{"--double_file", "x"}, errors.CodeUnknownOption},
		{"output without file", []string{"--count", "3"}, errors.CodeUnknownOption},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newParams(t, params.FloatIn("double", "A double.", 'd', 0), params.IntOut("count", "A count."))
			ps := NewParser(p, &bytes.Buffer{})
			err := ps.Parse(tt.args)
			if errCode(err) != tt.code {
				t.Fatalf("error = %v, want code %s", err, tt.code)
			}
			if errors.KindOf(err) != errors.KindUserInput || errors.ExitCode(err) != 1 {
				t.Errorf("kind = %v, exit = %d", errors.KindOf(err), errors.ExitCode(err))
			}
			if ps.State() != Rejected {
				t.Errorf("state = %v", ps.State())
			}
		})
	}
}

func TestTerminator(t *testing.T) {
	p, _ := newParams(t, params.FlagParam("flag", "Flag.", 'f'))
	if _, err := parse(p, "-f", "--"); err != nil {
		t.Fatal(err)
	}

	p, _ = newParams(t)
	out, err := parse(p, "--info", "--")
	if !errors.Is(err, ErrEarlyExit) {
		t.Fatalf("--info before the terminator: %v", err)
	}
	if !strings.Contains(out, "A test program.") {
		t.Errorf("general help expected, got %q", out)
	}
}

func TestRequiredOption(t *testing.T) {
	p, _ := newParams(t, params.FloatInReq("double", "Required test double", 'd'))
	ps := NewParser(p, &bytes.Buffer{})
	err := ps.Parse(nil)
	if errCode(err) != errors.CodeMissingRequired {
		t.Fatalf("error = %v", err)
	}
	if err.Error() != "Required option --double is undefined." {
		t.Errorf("message = %q", err.Error())
	}
	if ps.State() != Rejected {
		t.Errorf("state = %v", ps.State())
	}

	p, _ = newParams(t, params.ModelInReq[kernel]("kernel", "Test kernel", 'k'))
	_, err = parse(p)
	if err == nil || err.Error() != "Required option --kernel_file is undefined." {
		t.Errorf("required model: %v", err)
	}

	p, _ = newParams(t, params.FloatInReq("double", "Required test double", 'd'))
	ps = NewParser(p, &bytes.Buffer{})
	if err := ps.Parse([]string{"-d", "3.12"}); err != nil {
		t.Fatal(err)
	}
	if ps.State() != Done {
		t.Errorf("state = %v", ps.State())
	}
	if err := ps.Parse([]string{"-d", "3.12"}); errors.KindOf(err) != errors.KindConfig {
		t.Errorf("parsing twice: %v", err)
	}
}

func TestPrintableParams(t *testing.T) {
	var rows []string
	for i := 0; i < 1000; i++ {
		rows = append(rows, fmt.Sprintf("%d,%d,%d", i, i+1, i+2))
	}
	matrix := writeFile(t, "test_data_3_1000.csv", strings.Join(rows, "\n")+"\n")
	dir := t.TempDir()
	out := filepath.Join(dir, "file2.csv")
	in := filepath.Join(dir, "kernel.json")
	out2 := filepath.Join(dir, "kernel2.json")

	p, _ := newParams(t,
		params.MatrixIn("matrix", "Test matrix", 'm'),
		params.MatrixOut("matrix2", "Test matrix", 'M'),
		params.ModelIn[kernel]("kernel", "Test kernel", 'k'),
		params.ModelOut[kernel]("kernel2", "Test kernel", 'K'),
	)
	if _, err := parse(p, "--matrix_file", matrix, "-M", out, "-k", in, "-K", out2); err != nil {
		t.Fatal(err)
	}

	want := map[string]string{
		"matrix":  "'" + matrix + "' (3x1000 matrix)",
		"matrix2": "'" + out + "' (0x0 matrix)",
		"kernel":  in,
		"kernel2": out2,
	}
	for name, w := range want {
		got, err := p.GetPrintable(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if got != w {
			t.Errorf("%s: got %q, want %q", name, got, w)
		}
	}
	if has, _ := p.Has("matrix2"); !has {
		t.Error("an output is always reported by Has")
	}
	if _, err := p.Has("matrix_file"); errCode(err) != errors.CodeHiddenParam {
		t.Errorf("Has(matrix_file) = %v", err)
	}
}

func TestSerializationThroughEndProgram(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kernel.json")

	p, _ := newParams(t, params.ModelOut[kernel]("kernel", "Test kernel", 'k'))
	if _, err := parse(p, "--kernel_file", path); err != nil {
		t.Fatal(err)
	}
	if err := params.Set(p, "kernel", &kernel{Bandwidth: 0.5}); err != nil {
		t.Fatal(err)
	}
	if err := EndProgram(p, timer.New(), &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	p.Clear()
	if err := AddDefaultOptions(p); err != nil {
		t.Fatal(err)
	}
	if err := p.Add(params.ModelIn[kernel]("kernel", "Test kernel", 'k')); err != nil {
		t.Fatal(err)
	}
	if _, err := parse(p, "--kernel_file", path); err != nil {
		t.Fatal(err)
	}
	k, err := params.Get[*kernel](p, "kernel")
	if err != nil {
		t.Fatal(err)
	}
	if k.Bandwidth != 0.5 {
		t.Errorf("bandwidth = %v", k.Bandwidth)
	}
}

func TestMatrixRoundTripThroughEndProgram(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	m := mat.NewDense(3, 4, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12.5})

	p, _ := newParams(t, params.MatrixOut("matrix", "Output.", 'm'))
	if _, err := parse(p, "-m", path); err != nil {
		t.Fatal(err)
	}
	if err := params.Set(p, "matrix", m); err != nil {
		t.Fatal(err)
	}
	if err := EndProgram(p, nil, &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	q, _ := newParams(t, params.MatrixIn("matrix", "Input.", 'm'))
	if _, err := parse(q, "-m", path); err != nil {
		t.Fatal(err)
	}
	back, err := params.Get[*mat.Dense](q, "matrix")
	if err != nil {
		t.Fatal(err)
	}
	if !mat.EqualApprox(back, m, 1e-10) {
		t.Errorf("round trip = %v", mat.Formatted(back))
	}
}

func TestEndProgramOutputs(t *testing.T) {
	p, logger := newParams(t,
		params.IntOut("count", "A count."),
		params.VectorOut[string]("labels", "Labels."),
		params.MatrixOut("unsaved", "No destination.", 'u'),
	)
	if _, err := parse(p, "--verbose"); err != nil {
		t.Fatal(err)
	}
	params.Set(p, "count", 7)
	params.Set(p, "labels", []string{"a", "b"})
	params.Set(p, "unsaved", mat.NewDense(1, 1, []float64{1}))

	timers := timer.New()
	timers.Start("computation")

	var out bytes.Buffer
	if err := EndProgram(p, timers, &out); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "count: 7\nlabels: a, b\n" {
		t.Errorf("stdout = %q", got)
	}
	for _, msg := range []string{"Execution parameters:", "  count: 7", "  verbose: true", "Program timers:", "  computation: "} {
		if !logger.ContainsMessage(msg) {
			t.Errorf("verbose output lacks %q", msg)
		}
	}
	if timers.Count("computation") != 1 {
		t.Error("EndProgram should stop running timers")
	}
}

func TestVersion(t *testing.T) {
	p, _ := newParams(t)
	var out bytes.Buffer
	ps := NewParser(p, &out)
	err := ps.Parse([]string{"--help", "--version"})
	if !errors.Is(err, ErrEarlyExit) {
		t.Fatalf("error = %v", err)
	}
	if want := "test: part of " + mlpack.Version + ".\n"; out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
	if ps.State() != Done {
		t.Errorf("state = %v", ps.State())
	}
}

func TestHelp(t *testing.T) {
	for _, args := range [][]string{{"--help"}, {"-h"}, {"--info"}, {"--info", "-v"}} {
		p, _ := newParams(t,
			params.MatrixInReq("test", "Matrix containing X' (test regressors).", 'T'),
			params.FloatIn("lambda", "Regularization.", 'l', 0.25),
		)
		out, err := parse(p, args...)
		if !errors.Is(err, ErrEarlyExit) {
			t.Fatalf("%v: error = %v", args, err)
		}
		for _, want := range []string{"test", "--test_file", "--lambda", "A test program."} {
			if !strings.Contains(out, want) {
				t.Errorf("%v: help lacks %q:\n%s", args, want, out)
			}
		}
	}
}

func TestParamInfo(t *testing.T) {
	build := func() *params.Params {
		p, _ := newParams(t,
			params.MatrixInReq("test", "Matrix containing X' (test regressors).", 'T'),
			params.FloatIn("lambda", "Regularization.", 'l', 0.25),
			params.RowOut("output_predictions", "Predicted responses.", 'o'),
		)
		return p
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"test", []string{"--test_file (-T) [*mat.Dense]", "Matrix containing X'", "Required input parameter."}},
		{"test_file", []string{"--test_file (-T)"}},
		{"lambda", []string{"--lambda (-l) [float64]", "Optional input parameter.  Default value 0.25."}},
		{"o", []string{"--output_predictions_file (-o) [*mat.VecDense]", "Output parameter."}},
	}
	for _, tt := range tests {
		out, err := parse(build(), "--info", tt.query)
		if !errors.Is(err, ErrEarlyExit) {
			t.Fatalf("--info %s: %v", tt.query, err)
		}
		for _, w := range tt.want {
			if !strings.Contains(out, w) {
				t.Errorf("--info %s lacks %q:\n%s", tt.query, w, out)
			}
		}
	}

	_, err := parse(build(), "--info", "nonexistent")
	if errors.KindOf(err) != errors.KindUserInput {
		t.Errorf("unknown parameter: %v", err)
	}
}

func testBinding(run func(p *params.Params, timers *timer.Timers) error) Binding {
	return Binding{
		Details: params.BindingDetails{Name: "toy", Short: "A toy program."},
		Register: func(p *params.Params) error {
			if err := p.Add(params.IntInReq("n", "A number.", 'n')); err != nil {
				return err
			}
			return p.Add(params.IntOut("doubled", "Twice the number."))
		},
		Run: run,
	}
}

func doubler(p *params.Params, timers *timer.Timers) error {
	timers.Start("doubling")
	n, err := params.Get[int](p, "n")
	if err != nil {
		return err
	}
	timers.Stop("doubling")
	return params.Set(p, "doubled", 2*n)
}

func TestRun(t *testing.T) {
	tests := []struct {
		name       string
		run        func(p *params.Params, timers *timer.Timers) error
		args       []string
		code       int
		stdout     string
		stderrLike string
	}{
		{"success", doubler, []string{"-n", "21"}, 0, "doubled: 42\n", ""},
		{"version", doubler, []string{"--version"}, 0, "toy: part of " + mlpack.Version + ".\n", ""},
		{"missing required", doubler, nil, 1, "", "[FATAL] Required option --n is undefined."},
		{"unknown option", doubler, []string{"-n", "1", "--bogus"}, 1, "", "[FATAL] Unknown option '--bogus'."},
		{"binding bug", func(p *params.Params, _ *timer.Timers) error {
			_, err := params.Get[string](p, "n")
			return err
		}, []string{"-n", "1"}, 2, "", "[FATAL]"},
		{"panic", func(*params.Params, *timer.Timers) error {
			panic("boom")
		}, []string{"-n", "1"}, 1, "", "boom"},
		{"verbose", doubler, []string{"-n", "2", "-v"}, 0, "doubled: 4\n", "[INFO ] Program timers:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := Run(testBinding(tt.run), tt.args, Env{Stdout: &stdout, Stderr: &stderr, NoColor: true})
			if code != tt.code {
				t.Errorf("exit code = %d, want %d (stderr %q)", code, tt.code, stderr.String())
			}
			if stdout.String() != tt.stdout {
				t.Errorf("stdout = %q, want %q", stdout.String(), tt.stdout)
			}
			if tt.stderrLike != "" && !strings.Contains(stderr.String(), tt.stderrLike) {
				t.Errorf("stderr = %q, want it to contain %q", stderr.String(), tt.stderrLike)
			}
			if tt.stderrLike == "" && tt.code == 0 && tt.name != "verbose" && stderr.Len() != 0 {
				t.Errorf("unexpected stderr %q", stderr.String())
			}
		})
	}
}

func TestRunLogLevelFromEnv(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run(testBinding(doubler), []string{"--bogus"}, Env{Stdout: &stdout, Stderr: &stderr, LogLevel: "debug", NoColor: true})
	if code != 1 {
		t.Fatalf("exit code = %d", code)
	}
	for _, want := range []string{"[DEBUG] Command line rejected.", "[FATAL] Unknown option '--bogus'.", errors.CodeUnknownOption} {
		if !strings.Contains(stderr.String(), want) {
			t.Errorf("stderr lacks %q: %q", want, stderr.String())
		}
	}
}

func TestRunJSONLogFormat(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run(testBinding(doubler), []string{"-n", "2", "-v", "--bogus"},
		Env{Stdout: &stdout, Stderr: &stderr, LogFormat: "json"})
	if code != 1 {
		t.Fatalf("exit code = %d", code)
	}
	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(stderr.Bytes()), &entry); err != nil {
		t.Fatalf("stderr is not one JSON record: %v: %q", err, stderr.String())
	}
	want := map[string]interface{}{
		"severity":       "ERROR",
		"message":        "Unknown option '--bogus'.",
		log.BindingKey:   "toy",
		log.ErrorTypeKey: "UserInputError",
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("%s = %v, want %v", k, entry[k], v)
		}
	}

	stderr.Reset()
	stdout.Reset()
	code = Run(testBinding(doubler), []string{"-n", "2", "-v"},
		Env{Stdout: &stdout, Stderr: &stderr, LogFormat: "json"})
	if code != 0 || stdout.String() != "doubled: 4\n" {
		t.Fatalf("exit code = %d, stdout %q", code, stdout.String())
	}
	if !strings.Contains(stderr.String(), `"message":"Program timers:"`) {
		t.Errorf("verbose records missing: %q", stderr.String())
	}
}
