// Package params is the parameter registry shared by a binding and the
// command-line layer that drives it.
//
// A binding registers its parameters on a *Params before parsing:
//
//	p := params.New(logger)
//	p.Add(params.MatrixIn("test", "Matrix containing X' (test regressors).", 'T'))
//	p.Add(params.RowOut("output_predictions", "Predicted responses.", 'o'))
//
// The command-line parser assigns tokens to the registered values and marks
// the parameters the user passed. The binding then reads and writes values
// through Get and Set, and the end-of-program handler persists outputs.
//
// Every value variant (flag, int, float, string, vectors, matrices, label
// vectors, datasets with categorical info, and models) implements Value, so
// the parser and the end-of-program handler never need to know concrete
// types. File-backed values are loaded lazily on the first Get.
//
// A Params is not safe for concurrent use.
package params

import (
	"sort"
	"strings"

	"github.com/shrit/mlpack/pkg/errors"
	"github.com/shrit/mlpack/pkg/log"
)

// ParamData is the registry entry of one parameter.
type ParamData struct {
	// Name is the canonical name, unique within a Params.
	Name string
	// Desc is the help text.
	Desc string
	// Alias is the optional single-character short flag, 0 if none.
	Alias rune
	// TName is the variant tag of Value, e.g. "matrix" or "model".
	TName string
	// GoType is the display name of the value type, e.g. "*mat.Dense".
	GoType string
	// Required inputs must be passed on the command line.
	Required bool
	// Input is true for inputs and false for outputs.
	Input bool
	// WasPassed is set by the parser when the user supplies the parameter.
	WasPassed bool
	// Value holds the data.
	Value Value
}

// Flag returns the long command-line flag of d without dashes, e.g.
// "test_file" for a file-backed matrix named "test".
func (d *ParamData) Flag() string {
	return d.Value.FlagName(d.Name)
}

// BindingDetails describes a binding for help output.
type BindingDetails struct {
	// Name is the program name, e.g. "linear_regression_predict".
	Name string
	// UserName is the human-readable name, e.g. "Linear Regression Predict".
	UserName string
	// Short is a one-paragraph description.
	Short string
	// Long is the full description.
	Long string
	// Examples are example invocations.
	Examples []string
	// SeeAlso are related programs or documents.
	SeeAlso []string
}

// Params is the registry of one program invocation.
type Params struct {
	details BindingDetails
	params  map[string]*ParamData
	aliases map[rune]string
	order   []string
	parsed  bool
	logger  log.Logger
}

// New returns an empty registry reporting through logger. A nil logger
// discards everything.
func New(logger log.Logger) *Params {
	if logger == nil {
		logger = log.Nop()
	}
	return &Params{
		params:  make(map[string]*ParamData),
		aliases: make(map[rune]string),
		logger:  logger,
	}
}

// SetDetails records the binding description.
func (p *Params) SetDetails(d BindingDetails) {
	p.details = d
}

// Details returns the binding description.
func (p *Params) Details() BindingDetails {
	return p.details
}

// ProgramName returns the binding name.
func (p *Params) ProgramName() string {
	return p.details.Name
}

// Logger returns the logger of the invocation.
func (p *Params) Logger() log.Logger {
	return p.logger
}

// SetLogger replaces the logger.
func (p *Params) SetLogger(logger log.Logger) {
	if logger == nil {
		logger = log.Nop()
	}
	p.logger = logger
}

// Add registers d. Names, command-line flags and aliases must be unique, and
// an alias must be a single letter or digit.
func (p *Params) Add(d ParamData) error {
	if d.Name == "" {
		return errors.NewConfigError(errors.CodeInvalidAlias, "", "Parameter names cannot be empty.")
	}
	if d.Value == nil {
		return errors.NewConfigError(errors.CodeTypeMismatch, d.Name,
			"Parameter '%s' has no value.", d.Name)
	}
	if _, ok := p.params[d.Name]; ok {
		return errors.NewDuplicateParamError(d.Name)
	}
	flag := d.Value.FlagName(d.Name)
	if _, ok := p.params[flag]; ok {
		return errors.NewDuplicateParamError(flag)
	}
	for _, e := range p.params {
		if f := e.Flag(); f == flag || f == d.Name {
			return errors.NewDuplicateParamError(f)
		}
	}
	if d.Alias != 0 {
		if !isAliasRune(d.Alias) {
			return errors.NewConfigError(errors.CodeInvalidAlias, d.Name,
				"Parameter '%s' has invalid alias '%c'; aliases must be a single letter or digit.", d.Name, d.Alias)
		}
		if owner, ok := p.aliases[d.Alias]; ok {
			return errors.NewDuplicateAliasError(d.Name, string(d.Alias), owner)
		}
	}
	if !d.Input {
		d.Required = false
	}
	d.WasPassed = false

	entry := d
	p.params[d.Name] = &entry
	if d.Alias != 0 {
		p.aliases[d.Alias] = d.Name
	}
	p.order = append(p.order, d.Name)
	return nil
}

func isAliasRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// Lookup returns the entry of name. A single-character name is resolved as
// an alias if no parameter has that name. Derived flag names such as
// "test_file" are not parameters and are rejected.
func (p *Params) Lookup(name string) (*ParamData, error) {
	if d, ok := p.params[name]; ok {
		return d, nil
	}
	if r := []rune(name); len(r) == 1 {
		if canonical, ok := p.aliases[r[0]]; ok {
			return p.params[canonical], nil
		}
	}
	for _, d := range p.params {
		if d.Flag() == name {
			return nil, errors.NewHiddenParamError(name, d.Name)
		}
	}
	return nil, errors.NewUnknownParamError(name)
}

// Has reports whether name was passed on the command line. Outputs count as
// passed once parsing is done. Before parsing it reports false.
func (p *Params) Has(name string) (bool, error) {
	d, err := p.Lookup(name)
	if err != nil {
		return false, err
	}
	if !p.parsed {
		return false, nil
	}
	if !d.Input {
		return true, nil
	}
	return d.WasPassed, nil
}

// WasPassed reports whether the user supplied name, including a destination
// for an output.
func (p *Params) WasPassed(name string) (bool, error) {
	d, err := p.Lookup(name)
	if err != nil {
		return false, err
	}
	return d.WasPassed, nil
}

// GetPrintable returns a short human-readable form of the value of name.
// Matrices are described by source and size, models by their path.
func (p *Params) GetPrintable(name string) (string, error) {
	d, err := p.Lookup(name)
	if err != nil {
		return "", err
	}
	return d.Value.Printable(d, p.logger)
}

// Names returns the canonical names of all parameters, sorted.
func (p *Params) Names() []string {
	names := append([]string(nil), p.order...)
	sort.Strings(names)
	return names
}

// All returns all entries in registration order.
func (p *Params) All() []*ParamData {
	all := make([]*ParamData, len(p.order))
	for i, name := range p.order {
		all[i] = p.params[name]
	}
	return all
}

// Len returns the number of registered parameters.
func (p *Params) Len() int {
	return len(p.order)
}

// Parsed reports whether the command line has been parsed.
func (p *Params) Parsed() bool {
	return p.parsed
}

// MarkParsed records that parsing finished successfully.
func (p *Params) MarkParsed() {
	p.parsed = true
}

// Clear removes every parameter and resets the parse state. Callers re-add
// the default options afterwards.
func (p *Params) Clear() {
	p.details = BindingDetails{}
	p.params = make(map[string]*ParamData)
	p.aliases = make(map[rune]string)
	p.order = nil
	p.parsed = false
}

// flagList renders names as "--a", "--a or --b", or "--a, --b, or --c".
func flagList(p *Params, names []string, conj string) string {
	flags := make([]string, len(names))
	for i, name := range names {
		flags[i] = "--" + name
		if d, ok := p.params[name]; ok {
			flags[i] = "--" + d.Flag()
		}
	}
	switch len(flags) {
	case 0:
		return ""
	case 1:
		return flags[0]
	case 2:
		return flags[0] + " " + conj + " " + flags[1]
	default:
		return strings.Join(flags[:len(flags)-1], ", ") + ", " + conj + " " + flags[len(flags)-1]
	}
}
