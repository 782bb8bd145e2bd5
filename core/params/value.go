package params

import (
	"reflect"

	"github.com/shrit/mlpack/pkg/errors"
	"github.com/shrit/mlpack/pkg/log"
)

// Arity is how many command-line tokens a value takes.
type Arity int

const (
	// ArityNone is a toggle: the flag alone sets it.
	ArityNone Arity = iota
	// ArityOne takes exactly one token.
	ArityOne
	// ArityMany takes one or more tokens, possibly over several occurrences.
	ArityMany
)

// Grammar receives the command-line form of each parameter. The flag is the
// long name without dashes; alias is 0 when there is none.
type Grammar interface {
	Toggle(flag string, alias rune, help string)
	Single(flag string, alias rune, help, def string, required bool)
	Multi(flag string, alias rune, help string, required bool)
}

// Value is the capability set every parameter value implements.
type Value interface {
	// Arity is the number of tokens the value takes.
	Arity() Arity
	// FlagName maps a canonical name to its long flag. File-backed values
	// append "_file".
	FlagName(name string) string
	// FileBacked reports whether the tokens name a file to load or save.
	FileBacked() bool
	// AddTo registers d on g. Outputs that are not file-backed have no flag.
	AddTo(g Grammar, d *ParamData)
	// Assign sets the value from the tokens of one flag occurrence.
	// Multi-valued values append.
	Assign(d *ParamData, tokens []string) error
	// Materialize loads a file-backed input on first use. Later calls and
	// calls on other values do nothing.
	Materialize(d *ParamData, logger log.Logger) error
	// Persist saves a file-backed output to its destination, if one was
	// given.
	Persist(d *ParamData, logger log.Logger) error
	// Printable renders the value for logs and --verbose output.
	Printable(d *ParamData, logger log.Logger) (string, error)
	// DefaultString is the default for help output, "" if none.
	DefaultString() string
}

// Holder is implemented by values that store a T.
type Holder[T any] interface {
	Value
	Ptr() *T
}

func holder[T any](p *Params, name string) (*ParamData, Holder[T], error) {
	d, err := p.Lookup(name)
	if err != nil {
		return nil, nil, err
	}
	h, ok := d.Value.(Holder[T])
	if !ok {
		return nil, nil, errors.NewTypeMismatchError(d.Name, d.GoType, typeName[T]())
	}
	return d, h, nil
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}

// Get returns the value of name as a T, loading it first if it is a
// file-backed input that has not been loaded yet.
func Get[T any](p *Params, name string) (T, error) {
	var zero T
	d, h, err := holder[T](p, name)
	if err != nil {
		return zero, err
	}
	if err := h.Materialize(d, p.logger); err != nil {
		return zero, err
	}
	return *h.Ptr(), nil
}

// GetRaw returns the storage of name without loading anything. It is used
// to seed a value, such as a DatasetInfo with existing mappings, before the
// first Get.
func GetRaw[T any](p *Params, name string) (*T, error) {
	_, h, err := holder[T](p, name)
	if err != nil {
		return nil, err
	}
	return h.Ptr(), nil
}

// Set stores v as the value of name. A file-backed input that is set is not
// loaded from its file afterwards.
func Set[T any](p *Params, name string, v T) error {
	_, h, err := holder[T](p, name)
	if err != nil {
		return err
	}
	*h.Ptr() = v
	if f, ok := h.(interface{ markLoaded() }); ok {
		f.markLoaded()
	}
	return nil
}

// SameValue reports whether the tokens a and b give d the same value. Values
// that parse their token compare parsed elements; all others compare tokens.
func SameValue(d *ParamData, a, b string) bool {
	if a == b {
		return true
	}
	if v, ok := d.Value.(interface{ sameValue(a, b string) bool }); ok {
		return v.sameValue(a, b)
	}
	return false
}
