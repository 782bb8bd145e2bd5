package params

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shrit/mlpack/pkg/errors"
	"github.com/shrit/mlpack/pkg/log"
)

// Flag is a boolean toggle. Passing it sets it to true; it cannot be unset
// from the command line.
type Flag struct {
	v bool
}

// Ptr returns the storage of the flag.
func (f *Flag) Ptr() *bool { return &f.v }

func (f *Flag) Arity() Arity { return ArityNone }

func (f *Flag) FlagName(name string) string { return name }

func (f *Flag) FileBacked() bool { return false }

func (f *Flag) AddTo(g Grammar, d *ParamData) {
	if !d.Input {
		return
	}
	g.Toggle(d.Flag(), d.Alias, d.Desc)
}

func (f *Flag) Assign(_ *ParamData, _ []string) error {
	f.v = true
	return nil
}

func (f *Flag) Materialize(*ParamData, log.Logger) error { return nil }

func (f *Flag) Persist(*ParamData, log.Logger) error { return nil }

func (f *Flag) Printable(*ParamData, log.Logger) (string, error) {
	return strconv.FormatBool(f.v), nil
}

func (f *Flag) DefaultString() string { return "" }

// Element is the set of types a scalar or vector parameter can hold.
type Element interface {
	int | float64 | string
}

// Scalar holds a single int, float64 or string.
type Scalar[E Element] struct {
	v          E
	def        E
	hasDefault bool
}

func newScalar[E Element](def E, hasDefault bool) *Scalar[E] {
	return &Scalar[E]{v: def, def: def, hasDefault: hasDefault}
}

// Ptr returns the storage of the scalar.
func (s *Scalar[E]) Ptr() *E { return &s.v }

func (s *Scalar[E]) Arity() Arity { return ArityOne }

func (s *Scalar[E]) FlagName(name string) string { return name }

func (s *Scalar[E]) FileBacked() bool { return false }

func (s *Scalar[E]) AddTo(g Grammar, d *ParamData) {
	if !d.Input {
		return
	}
	g.Single(d.Flag(), d.Alias, d.Desc, s.DefaultString(), d.Required)
}

func (s *Scalar[E]) Assign(d *ParamData, tokens []string) error {
	if len(tokens) != 1 {
		return malformed(d, strings.Join(tokens, " "), "expected exactly one value")
	}
	v, ok := parseElement[E](tokens[0])
	if !ok {
		return malformed(d, tokens[0], elementKind[E]())
	}
	s.v = v
	return nil
}

// sameValue reports whether a and b parse to the same element, so that
// "1" and "1.0" are one value of a float64 flag.
func (s *Scalar[E]) sameValue(a, b string) bool {
	x, okA := parseElement[E](a)
	y, okB := parseElement[E](b)
	return okA && okB && x == y
}

func (s *Scalar[E]) Materialize(*ParamData, log.Logger) error { return nil }

func (s *Scalar[E]) Persist(*ParamData, log.Logger) error { return nil }

func (s *Scalar[E]) Printable(*ParamData, log.Logger) (string, error) {
	return formatElement(s.v), nil
}

func (s *Scalar[E]) DefaultString() string {
	if !s.hasDefault {
		return ""
	}
	return formatElement(s.def)
}

// Vector holds a sequence of ints, float64s or strings. Every occurrence of
// its flag appends to the sequence.
type Vector[E Element] struct {
	v []E
}

// Ptr returns the storage of the vector.
func (vec *Vector[E]) Ptr() *[]E { return &vec.v }

func (vec *Vector[E]) Arity() Arity { return ArityMany }

func (vec *Vector[E]) FlagName(name string) string { return name }

func (vec *Vector[E]) FileBacked() bool { return false }

func (vec *Vector[E]) AddTo(g Grammar, d *ParamData) {
	if !d.Input {
		return
	}
	g.Multi(d.Flag(), d.Alias, d.Desc, d.Required)
}

func (vec *Vector[E]) Assign(d *ParamData, tokens []string) error {
	parsed := make([]E, 0, len(tokens))
	for _, tok := range tokens {
		v, ok := parseElement[E](tok)
		if !ok {
			return malformed(d, tok, elementKind[E]())
		}
		parsed = append(parsed, v)
	}
	vec.v = append(vec.v, parsed...)
	return nil
}

func (vec *Vector[E]) Materialize(*ParamData, log.Logger) error { return nil }

func (vec *Vector[E]) Persist(*ParamData, log.Logger) error { return nil }

func (vec *Vector[E]) Printable(*ParamData, log.Logger) (string, error) {
	parts := make([]string, len(vec.v))
	for i, e := range vec.v {
		parts[i] = formatElement(e)
	}
	return strings.Join(parts, ", "), nil
}

func (vec *Vector[E]) DefaultString() string { return "" }

func parseElement[E Element](tok string) (E, bool) {
	var out E
	var err error
	switch p := any(&out).(type) {
	case *int:
		*p, err = strconv.Atoi(tok)
	case *float64:
		*p, err = strconv.ParseFloat(tok, 64)
	case *string:
		*p = tok
	}
	return out, err == nil
}

func elementKind[E Element]() string {
	var zero E
	switch any(zero).(type) {
	case int:
		return "not an integer"
	case float64:
		return "not a number"
	default:
		return "not a string"
	}
}

func malformed(d *ParamData, value, reason string) error {
	return errors.NewMalformedValueError(d.Flag(), value, reason)
}

func formatElement[E Element](e E) string {
	switch v := any(e).(type) {
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
