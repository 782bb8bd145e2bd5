package cli

import (
	"fmt"
	"io"

	"github.com/shrit/mlpack/core/params"
	"github.com/shrit/mlpack/core/timer"
	"github.com/shrit/mlpack/pkg/log"
)

// EndProgram finishes a successful run. It stops the timers, reports every
// parameter and timer when --verbose was given, saves file-backed outputs
// that have a destination and prints the other outputs to out as
// "name: value".
func EndProgram(p *params.Params, timers *timer.Timers, out io.Writer) error {
	logger := p.Logger()
	if timers != nil {
		timers.StopAll()
	}

	verbose, _ := p.WasPassed(VerboseParam)
	if verbose {
		logger.Info("Execution parameters:")
		for _, name := range p.Names() {
			value, err := p.GetPrintable(name)
			if err != nil {
				return err
			}
			logger.Info(fmt.Sprintf("  %s: %s", name, value),
				log.ParamNameKey, name,
			)
		}
		if timers != nil {
			logger.Info("Program timers:")
			for _, name := range timers.Names() {
				logger.Info(fmt.Sprintf("  %s: %.6fs", name, timers.Get(name).Seconds()),
					log.TimerKey, name,
				)
			}
		}
	}

	for _, d := range p.All() {
		if d.Input {
			continue
		}
		if d.Value.FileBacked() {
			if err := d.Value.Persist(d, logger); err != nil {
				return err
			}
			continue
		}
		value, err := d.Value.Printable(d, logger)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: %s\n", d.Name, value)
	}
	return nil
}
