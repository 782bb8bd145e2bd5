package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shrit/mlpack"
	"github.com/shrit/mlpack/core/params"
	"github.com/shrit/mlpack/pkg/errors"
	"github.com/shrit/mlpack/pkg/log"
)

// ErrEarlyExit is returned by Parse when --help, --info or --version was
// handled and the program should stop successfully.
var ErrEarlyExit = errors.New("early exit requested")

// State is the progress of a Parser.
type State int

const (
	// Unparsed is the state of a new Parser.
	Unparsed State = iota
	// Parsing means tokens are being bound to parameters.
	Parsing
	// Validated means every token was bound and the built-in options were
	// handled.
	Validated
	// Done means the required options are present and the binding may run.
	Done
	// Rejected means the command line was invalid.
	Rejected
)

func (s State) String() string {
	switch s {
	case Unparsed:
		return "unparsed"
	case Parsing:
		return "parsing"
	case Validated:
		return "validated"
	case Done:
		return "done"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Parser binds a command line to a registry.
type Parser struct {
	params *params.Params
	out    io.Writer
	state  State

	table *table
	// order of first appearance, and the tokens of every occurrence
	order []*params.ParamData
	seen  map[*params.ParamData][][]string
}

// NewParser returns a parser for p. Help and version text go to out.
func NewParser(p *params.Params, out io.Writer) *Parser {
	return &Parser{params: p, out: out}
}

// State returns the current state.
func (ps *Parser) State() State {
	return ps.state
}

// ParseCommandLine parses args, without the program name, into p.
func ParseCommandLine(p *params.Params, args []string, out io.Writer) error {
	return NewParser(p, out).Parse(args)
}

// Parse binds args to the registry, handles the built-in options and checks
// for required options.
func (ps *Parser) Parse(args []string) error {
	if ps.state != Unparsed {
		return errors.NewConfigError(errors.CodeUnexpectedToken, "",
			"The command line has already been parsed.")
	}
	ps.state = Parsing
	ps.table = newTable(ps.params)
	ps.seen = make(map[*params.ParamData][][]string)

	if err := ps.tokenize(args); err != nil {
		return ps.reject(err)
	}
	if err := ps.bind(); err != nil {
		return ps.reject(err)
	}
	ps.params.MarkParsed()
	ps.state = Validated

	if err := ps.builtins(); err != nil {
		if errors.Is(err, ErrEarlyExit) {
			ps.state = Done
		} else {
			ps.state = Rejected
		}
		return err
	}

	for _, d := range ps.params.All() {
		if d.Required && d.Input && !d.WasPassed {
			return ps.reject(errors.NewMissingRequiredError(d.Flag()))
		}
	}
	ps.state = Done
	return nil
}

func (ps *Parser) reject(err error) error {
	ps.state = Rejected
	ps.params.Logger().Debug("Command line rejected.",
		log.OperationKey, log.OperationParse,
		log.ErrAttrKey, err,
	)
	return err
}

func (ps *Parser) record(o option, tokens []string) {
	if _, ok := ps.seen[o.d]; !ok {
		ps.order = append(ps.order, o.d)
	}
	ps.seen[o.d] = append(ps.seen[o.d], tokens)
}

func (ps *Parser) tokenize(args []string) error {
	for i := 0; i < len(args); i++ {
		tok := args[i]
		switch {
		case tok == "--":
			if i+1 < len(args) {
				return unexpected(args[i+1])
			}
			return nil

		case strings.HasPrefix(tok, "--"):
			name, value, hasValue := strings.Cut(tok[2:], "=")
			o, ok := ps.table.long[name]
			if !ok {
				return errors.NewUnknownOptionError("--" + name)
			}
			var inline []string
			if hasValue {
				inline = []string{value}
			}
			n, err := ps.take(o, "--"+name, inline, args[i+1:])
			if err != nil {
				return err
			}
			i += n

		case looksLikeFlag(tok):
			n, err := ps.shortGroup(tok, args[i+1:])
			if err != nil {
				return err
			}
			i += n

		default:
			return unexpected(tok)
		}
	}
	return nil
}

// shortGroup handles "-a", "-a value", "-avalue" and bundled toggles such as
// "-vh". It returns how many of the following arguments it consumed.
func (ps *Parser) shortGroup(tok string, rest []string) (int, error) {
	runes := []rune(tok[1:])
	for k, r := range runes {
		o, ok := ps.table.short[r]
		if !ok {
			return 0, errors.NewUnknownOptionError("-" + string(r))
		}
		if o.arity == params.ArityNone {
			ps.record(o, nil)
			continue
		}
		var inline []string
		if k+1 < len(runes) {
			inline = []string{string(runes[k+1:])}
		}
		return ps.take(o, "-"+string(r), inline, rest)
	}
	return 0, nil
}

// take collects the tokens of one occurrence of o and returns how many of
// rest it consumed.
func (ps *Parser) take(o option, flag string, inline, rest []string) (int, error) {
	switch o.arity {
	case params.ArityNone:
		if inline != nil {
			return 0, errors.NewMalformedValueError(o.d.Flag(), inline[0], "the option takes no value")
		}
		ps.record(o, nil)
		return 0, nil

	case params.ArityOne:
		if inline != nil {
			ps.record(o, inline)
			return 0, nil
		}
		if len(rest) == 0 || rest[0] == "--" || (o.d.Name == InfoParam && looksLikeFlag(rest[0])) {
			if o.d.Name == InfoParam {
				ps.record(o, []string{""})
				return 0, nil
			}
			return 0, missingValue(flag)
		}
		ps.record(o, rest[:1])
		return 1, nil

	default:
		tokens := inline
		n := 0
		for n < len(rest) && !looksLikeFlag(rest[n]) && rest[n] != "--" {
			tokens = append(tokens, rest[n])
			n++
		}
		if len(tokens) == 0 {
			return 0, missingValue(flag)
		}
		ps.record(o, tokens)
		return n, nil
	}
}

// bind assigns the collected tokens and marks the parameters as passed.
func (ps *Parser) bind() error {
	for _, d := range ps.order {
		occurrences := ps.seen[d]
		switch d.Value.Arity() {
		case params.ArityNone:
			if err := d.Value.Assign(d, nil); err != nil {
				return err
			}
		case params.ArityOne:
			first := occurrences[0][0]
			for _, occ := range occurrences[1:] {
				if !params.SameValue(d, first, occ[0]) {
					return errors.NewConflictingValueError(d.Flag())
				}
			}
			if err := d.Value.Assign(d, occurrences[0]); err != nil {
				return err
			}
		default:
			for _, occ := range occurrences {
				if err := d.Value.Assign(d, occ); err != nil {
					return err
				}
			}
		}
		d.WasPassed = true
	}
	return nil
}

// builtins handles --version, then --help, then --info.
func (ps *Parser) builtins() error {
	if ps.passed(VersionParam) {
		fmt.Fprintf(ps.out, "%s: part of %s.\n", ps.params.ProgramName(), mlpack.Version)
		return ErrEarlyExit
	}
	if ps.passed(HelpParam) {
		PrintHelp(ps.params, ps.out)
		return ErrEarlyExit
	}
	if ps.passed(InfoParam) {
		name, err := params.Get[string](ps.params, InfoParam)
		if err != nil {
			return err
		}
		if name == "" {
			PrintHelp(ps.params, ps.out)
			return ErrEarlyExit
		}
		if err := PrintParamHelp(ps.params, name, ps.out); err != nil {
			return err
		}
		return ErrEarlyExit
	}
	return nil
}

func (ps *Parser) passed(name string) bool {
	passed, err := ps.params.WasPassed(name)
	return err == nil && passed
}

// looksLikeFlag reports whether tok starts an option. Negative numbers are
// values.
func looksLikeFlag(tok string) bool {
	if len(tok) < 2 || tok[0] != '-' {
		return false
	}
	_, err := strconv.ParseFloat(tok, 64)
	return err != nil
}

func unexpected(tok string) error {
	return errors.NewUserInputError(errors.CodeUnexpectedToken, tok,
		"Unexpected argument '%s'; all options must be given as flags.", tok)
}

func missingValue(flag string) error {
	return errors.NewUserInputError(errors.CodeMalformedValue, flag,
		"Option %s requires a value.", flag)
}
