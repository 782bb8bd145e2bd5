// Package cli turns a parameter registry into a command-line program: it
// registers the built-in options, parses and validates the command line,
// prints help, runs the binding and persists its outputs.
//
// A program is described by a Binding and run with Main:
//
//	func main() {
//		os.Exit(cli.Main(linearregression.PredictBinding(), os.Args[1:]))
//	}
//
// Nothing in this package except Main ends the process; every failure is
// returned as an error whose kind selects the exit status.
package cli

import (
	"github.com/shrit/mlpack/core/params"
)

// Names of the options every program has.
const (
	HelpParam    = "help"
	InfoParam    = "info"
	VerboseParam = "verbose"
	VersionParam = "version"
)

// AddDefaultOptions registers --help, --info, --verbose and --version.
func AddDefaultOptions(p *params.Params) error {
	for _, d := range []params.ParamData{
		params.FlagParam(HelpParam, "Default help info.", 'h'),
		params.StringIn(InfoParam, "Print help on a specific option.", 0, ""),
		params.FlagParam(VerboseParam, "Display informational messages and the full list of "+
			"parameters and timers at the end of execution.", 'v'),
		params.FlagParam(VersionParam, "Display the version of mlpack.", 0),
	} {
		if err := p.Add(d); err != nil {
			return err
		}
	}
	return nil
}
