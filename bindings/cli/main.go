package cli

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/shrit/mlpack/core/params"
	"github.com/shrit/mlpack/core/timer"
	"github.com/shrit/mlpack/pkg/errors"
	"github.com/shrit/mlpack/pkg/log"
)

// Environment variables read by Main.
const (
	// EnvLogLevel overrides the default log level: debug, info, warn or error.
	EnvLogLevel = "MLPACK_LOG_LEVEL"
	// EnvNoColor disables colours when set to any non-empty value.
	EnvNoColor = "MLPACK_NO_COLOR"
	// EnvLogFormat selects the log format: console (the default) or json.
	EnvLogFormat = "MLPACK_LOG_FORMAT"
)

// levelLogger is a logger whose level --verbose can raise after parsing.
type levelLogger interface {
	log.Logger
	log.LevelSetter
	Level() log.Level
}

// Binding is one command-line program.
type Binding struct {
	// Details describe the program for --help. Details.Name is the program
	// name used by --version.
	Details params.BindingDetails
	// Register adds the parameters of the program.
	Register func(p *params.Params) error
	// Run computes the outputs from the inputs.
	Run func(p *params.Params, timers *timer.Timers) error
}

// Main runs b with the process arguments and standard streams and returns
// the exit status.
func Main(b Binding, args []string) int {
	return Run(b, args, Env{
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		LogLevel:  os.Getenv(EnvLogLevel),
		LogFormat: os.Getenv(EnvLogFormat),
		NoColor:   os.Getenv(EnvNoColor) != "",
	})
}

// Env is the environment of one run.
type Env struct {
	Stdout    io.Writer
	Stderr    io.Writer
	LogLevel  string
	LogFormat string
	NoColor   bool
}

// logger returns the root logger of a run, writing to Stderr.
func (e Env) logger(level log.Level) levelLogger {
	if e.LogFormat == "json" {
		return log.NewJSONLogger(e.Stderr, level)
	}
	return log.NewConsoleLogger(e.Stderr, level, e.color())
}

func (e Env) color() bool {
	if e.NoColor {
		return false
	}
	f, ok := e.Stderr.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// Run executes b: it registers the parameters, parses args, runs the binding
// and finishes with EndProgram. Failures are logged as fatal and mapped to a
// non-zero exit status.
func Run(b Binding, args []string, env Env) int {
	level := log.LevelWarn
	if env.LogLevel != "" {
		if l, err := log.ParseLevel(env.LogLevel); err == nil {
			level = l
		}
	}
	root := env.logger(level)
	logger := root.With(log.BindingKey, b.Details.Name)

	err := errors.SafeExecute(b.Details.Name, func() error {
		p := params.New(logger)
		p.SetDetails(b.Details)
		if err := AddDefaultOptions(p); err != nil {
			return err
		}
		if b.Register != nil {
			if err := b.Register(p); err != nil {
				return err
			}
		}

		if err := ParseCommandLine(p, args, env.Stdout); err != nil {
			return err
		}
		if verbose, _ := p.WasPassed(VerboseParam); verbose && root.Level() > log.LevelInfo {
			root.SetLevel(log.LevelInfo)
		}

		timers := timer.New()
		if b.Run != nil {
			if err := b.Run(p, timers); err != nil {
				return err
			}
		}
		return EndProgram(p, timers, env.Stdout)
	})
	if errors.Is(err, ErrEarlyExit) {
		return 0
	}
	if err != nil {
		logger.Error(err.Error(), err)
		return errors.ExitCode(err)
	}
	return 0
}
