// Package errors provides the error handling used across mlpack.
//
// Every error surfaced to the user of a binding belongs to one of three kinds:
// configuration errors made by the binding author, user input errors on the
// command line, and data errors found while reading or checking datasets and
// models. The structured types below carry the kind, and the top-level CLI
// handler turns any of them into a fatal log line and a non-zero exit code.
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// Kind classifies an error for reporting and exit-code purposes.
type Kind int

const (
	// KindUnknown is any error that does not carry a kind.
	KindUnknown Kind = iota
	// KindConfig is a mistake made by the binding author: duplicate
	// parameter names or aliases, a type mismatch on typed access, a
	// parameter that was never registered.
	KindConfig
	// KindUserInput is a problem with the command line itself.
	KindUserInput
	// KindData is a shape mismatch or an unreadable or ill-formed file.
	KindData
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "ConfigError"
	case KindUserInput:
		return "UserInputError"
	case KindData:
		return "DataError"
	default:
		return "Error"
	}
}

// Error codes used when logging structured errors.
const (
	CodeDuplicateParam   = "DUPLICATE_PARAM"
	CodeDuplicateAlias   = "DUPLICATE_ALIAS"
	CodeInvalidAlias     = "INVALID_ALIAS"
	CodeUnknownParam     = "UNKNOWN_PARAM"
	CodeHiddenParam      = "HIDDEN_PARAM"
	CodeTypeMismatch     = "TYPE_MISMATCH"
	CodeUnknownOption    = "UNKNOWN_OPTION"
	CodeConflictingValue = "CONFLICTING_VALUE"
	CodeMissingRequired  = "MISSING_REQUIRED"
	CodeMalformedValue   = "MALFORMED_VALUE"
	CodeUnexpectedToken  = "UNEXPECTED_TOKEN"
	CodeParamCheck       = "PARAM_CHECK"
	CodeDimension        = "DIMENSION_MISMATCH"
	CodeFileFormat       = "FILE_FORMAT"
	CodeIO               = "IO"
)

// ParamError is an error attached to a single parameter or command-line flag.
type ParamError struct {
	Kind    Kind
	Code    string
	Param   string
	Message string
}

func (e *ParamError) Error() string {
	return e.Message
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *ParamError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("type", e.Kind.String()).
		Str("code", e.Code).
		Str("param", e.Param)
}

func newParamError(kind Kind, code, param, format string, args ...interface{}) error {
	err := &ParamError{
		Kind:    kind,
		Code:    code,
		Param:   param,
		Message: fmt.Sprintf(format, args...),
	}
	return errors.WithStack(err)
}

// NewConfigError reports a binding-author mistake about param.
func NewConfigError(code, param, format string, args ...interface{}) error {
	return newParamError(KindConfig, code, param, format, args...)
}

// NewUserInputError reports a command-line problem about param.
func NewUserInputError(code, param, format string, args ...interface{}) error {
	return newParamError(KindUserInput, code, param, format, args...)
}

// NewDuplicateParamError is returned when a parameter name is registered twice.
func NewDuplicateParamError(name string) error {
	return NewConfigError(CodeDuplicateParam, name,
		"Parameter '%s' is defined multiple times.", name)
}

// NewDuplicateAliasError is returned when a short alias is registered twice.
func NewDuplicateAliasError(name, alias, owner string) error {
	return NewConfigError(CodeDuplicateAlias, name,
		"Parameter '%s' cannot use alias '%s': it is already used by '%s'.", name, alias, owner)
}

// NewUnknownParamError is returned when a binding queries an unregistered name.
func NewUnknownParamError(name string) error {
	return NewConfigError(CodeUnknownParam, name,
		"Parameter '%s' does not exist in this program!", name)
}

// NewHiddenParamError is returned when a parser-internal synonym such as
// "matrix_file" is queried instead of its canonical parameter.
func NewHiddenParamError(name, canonical string) error {
	return NewConfigError(CodeHiddenParam, name,
		"Parameter '%s' does not exist in this program; use '%s' instead.", name, canonical)
}

// NewTypeMismatchError is returned when a parameter is read as the wrong type.
func NewTypeMismatchError(name, have, want string) error {
	return NewConfigError(CodeTypeMismatch, name,
		"Parameter '%s' has type %s, but was accessed as %s.", name, have, want)
}

// NewUnknownOptionError is returned for a command-line flag nobody registered.
func NewUnknownOptionError(token string) error {
	return NewUserInputError(CodeUnknownOption, token,
		"Unknown option '%s'.", token)
}

// NewConflictingValueError is returned when a single-valued flag is given
// more than once with different values.
func NewConflictingValueError(token string) error {
	return NewUserInputError(CodeConflictingValue, token,
		"\"%s\" is defined multiple times.", token)
}

// NewMissingRequiredError is returned when a required option is not given.
func NewMissingRequiredError(flag string) error {
	return NewUserInputError(CodeMissingRequired, flag,
		"Required option --%s is undefined.", flag)
}

// NewMalformedValueError is returned when a token cannot be converted to the
// parameter's type.
func NewMalformedValueError(flag, value, reason string) error {
	return NewUserInputError(CodeMalformedValue, flag,
		"Invalid value '%s' for option --%s: %s.", value, flag, reason)
}

// DimensionError is a data error about the number of dimensions of a dataset.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	// Source describes where the offending data came from, usually the
	// printable form of a matrix parameter.
	Source string
}

func (e *DimensionError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("The model was trained on %d-dimensional data, but the test points in %s are %d-dimensional!",
			e.Expected, e.Source, e.Got)
	}
	return fmt.Sprintf("mlpack: %s: dimension mismatch. Expected %d, got %d", e.Op, e.Expected, e.Got)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("type", KindData.String()).
		Str("code", CodeDimension).
		Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Str("source", e.Source)
}

// NewDimensionError creates a DimensionError with a stack trace.
func NewDimensionError(op string, expected, got int) error {
	return errors.WithStack(&DimensionError{Op: op, Expected: expected, Got: got})
}

// NewSourceDimensionError creates a DimensionError naming the data source.
func NewSourceDimensionError(op string, expected, got int, source string) error {
	return errors.WithStack(&DimensionError{Op: op, Expected: expected, Got: got, Source: source})
}

// FileError is a data error about reading or writing a file.
type FileError struct {
	Path string
	Code string
	Err  error
}

func (e *FileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mlpack: '%s': %v", e.Path, e.Err)
	}
	return fmt.Sprintf("mlpack: '%s'", e.Path)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *FileError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("type", KindData.String()).
		Str("code", e.Code).
		Str("path", e.Path)
}

// NewFileError wraps err as an I/O failure on path.
func NewFileError(path string, err error) error {
	return errors.WithStack(&FileError{Path: path, Code: CodeIO, Err: err})
}

// NewFormatError reports ill-formed contents or an unsupported format of path.
func NewFormatError(path, format string, args ...interface{}) error {
	return errors.WithStack(&FileError{Path: path, Code: CodeFileFormat, Err: errors.Newf(format, args...)})
}

// NotFittedError is returned when a model is used before it was trained.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("mlpack: %s: this model is not trained yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// NewNotFittedError creates a NotFittedError with a stack trace.
func NewNotFittedError(modelName, method string) error {
	return errors.WithStack(&NotFittedError{ModelName: modelName, Method: method})
}

// ValueError reports an argument with an unacceptable value.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("mlpack: %s: %s", e.Op, e.Message)
}

// NewValueError creates a ValueError with a stack trace.
func NewValueError(op, message string) error {
	return errors.WithStack(&ValueError{Op: op, Message: message})
}

// ModelError is a general failure inside a model.
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mlpack: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("mlpack: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError creates a ModelError with a stack trace.
func NewModelError(op, kind string, err error) error {
	return errors.WithStack(&ModelError{Op: op, Kind: kind, Err: err})
}

// KindOf returns the kind of err, looking through any wrapping.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var pe *ParamError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	var de *DimensionError
	if errors.As(err, &de) {
		return KindData
	}
	var fe *FileError
	if errors.As(err, &fe) {
		return KindData
	}
	var ve *ValueError
	if errors.As(err, &ve) {
		return KindData
	}
	return KindUnknown
}

// ExitCode maps err to a process exit status. Configuration errors use 2 so
// that a broken binding is distinguishable from bad input.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case KindOf(err) == KindConfig:
		return 2
	default:
		return 1
	}
}

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap annotates err with message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf annotates err with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates an error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates err with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

var (
	// ErrEmptyData is returned for datasets without points or dimensions.
	ErrEmptyData = New("empty data")

	// ErrSingularMatrix is returned when a linear system cannot be solved.
	ErrSingularMatrix = New("singular matrix")
)
