package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/shrit/mlpack/core/params"
	"github.com/shrit/mlpack/pkg/errors"
)

// PrintHelp writes the usage of the program and all of its options to w.
func PrintHelp(p *params.Params, w io.Writer) {
	newUsage(p, w).print()
}

// PrintParamHelp writes everything known about one option to w. name may be
// the canonical name, the alias or the flag.
func PrintParamHelp(p *params.Params, name string, w io.Writer) error {
	d, err := p.Lookup(strings.TrimLeft(name, "-"))
	if err != nil {
		var pe *errors.ParamError
		if errors.As(err, &pe) && pe.Code == errors.CodeHiddenParam {
			d, err = p.Lookup(strings.TrimSuffix(strings.TrimLeft(name, "-"), "_file"))
		}
	}
	if err != nil {
		return errors.NewUserInputError(errors.CodeUnknownParam, name,
			"Unknown parameter '%s'.", name)
	}

	header := "--" + d.Flag()
	if d.Alias != 0 {
		header += fmt.Sprintf(" (-%c)", d.Alias)
	}
	fmt.Fprintf(w, "%s [%s]\n", header, d.GoType)
	fmt.Fprintf(w, "  %s\n", d.Desc)

	var status string
	switch {
	case !d.Input:
		status = "Output parameter."
	case d.Required:
		status = "Required input parameter."
	default:
		status = "Optional input parameter."
	}
	if def := d.Value.DefaultString(); def != "" {
		status += fmt.Sprintf("  Default value %s.", def)
	}
	fmt.Fprintf(w, "  %s\n", status)
	return nil
}
