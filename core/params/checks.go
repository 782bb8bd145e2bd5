package params

import (
	"fmt"

	"github.com/shrit/mlpack/pkg/errors"
	"github.com/shrit/mlpack/pkg/log"
)

// CheckOption configures a parameter check.
type CheckOption func(*check)

type check struct {
	fatal     bool
	message   string
	allowNone bool
}

// Warn makes a failed check log a warning instead of returning an error.
func Warn() CheckOption {
	return func(c *check) { c.fatal = false }
}

// WithMessage appends msg to the report of a failed check.
func WithMessage(msg string) CheckOption {
	return func(c *check) { c.message = msg }
}

// AllowNone lets RequireOnlyOnePassed succeed when none of the parameters
// was passed.
func AllowNone() CheckOption {
	return func(c *check) { c.allowNone = true }
}

func newCheck(opts []CheckOption) check {
	c := check{fatal: true}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// report returns the failure as an error, or logs it when the check is not
// fatal.
func (c check) report(p *Params, param, text string) error {
	if c.message != "" {
		text += "; " + c.message
	}
	text += "!"
	if !c.fatal {
		p.logger.Warn(text)
		return nil
	}
	return errors.NewUserInputError(errors.CodeParamCheck, param, "%s", text)
}

func countPassed(p *Params, names []string) (int, error) {
	n := 0
	for _, name := range names {
		passed, err := p.WasPassed(name)
		if err != nil {
			return 0, err
		}
		if passed {
			n++
		}
	}
	return n, nil
}

// RequireOnlyOnePassed checks that exactly one of names was passed, or at
// most one with AllowNone.
func RequireOnlyOnePassed(p *Params, names []string, opts ...CheckOption) error {
	c := newCheck(opts)
	set, err := countPassed(p, names)
	if err != nil {
		return err
	}
	switch {
	case set > 1:
		return c.report(p, names[0], "Can only pass one of "+flagList(p, names, "or"))
	case set == 0 && !c.allowNone:
		if len(names) == 1 {
			return c.report(p, names[0], "Must specify "+flagList(p, names, "or"))
		}
		return c.report(p, names[0], "Must specify one of "+flagList(p, names, "or"))
	}
	return nil
}

// RequireAtLeastOnePassed checks that at least one of names was passed.
func RequireAtLeastOnePassed(p *Params, names []string, opts ...CheckOption) error {
	c := newCheck(opts)
	set, err := countPassed(p, names)
	if err != nil {
		return err
	}
	if set > 0 {
		return nil
	}
	if len(names) == 1 {
		return c.report(p, names[0], "Must specify "+flagList(p, names, "or"))
	}
	return c.report(p, names[0], "Must specify at least one of "+flagList(p, names, "or"))
}

// RequireNoneOrAllPassed checks that either all of names or none of them
// were passed.
func RequireNoneOrAllPassed(p *Params, names []string, opts ...CheckOption) error {
	c := newCheck(opts)
	set, err := countPassed(p, names)
	if err != nil {
		return err
	}
	if set == 0 || set == len(names) {
		return nil
	}
	if len(names) == 2 {
		return c.report(p, names[0], "Must pass both or neither of "+flagList(p, names, "and"))
	}
	return c.report(p, names[0], "Must pass none or all of "+flagList(p, names, "and"))
}

// RequireParamValue checks a passed value against ok. Parameters that were
// not passed are not checked. desc completes the report, e.g. "must be
// non-negative".
func RequireParamValue[T any](p *Params, name string, ok func(T) bool, desc string, opts ...CheckOption) error {
	passed, err := p.WasPassed(name)
	if err != nil || !passed {
		return err
	}
	v, err := Get[T](p, name)
	if err != nil {
		return err
	}
	if ok(v) {
		return nil
	}
	c := newCheck(opts)
	text := fmt.Sprintf("Invalid value of %s specified (%v); %s", flagList(p, []string{name}, ""), v, desc)
	return c.report(p, name, text)
}

// Condition is one clause of ReportIgnoredParam: the parameter Name being
// passed (or, with Passed false, not passed).
type Condition struct {
	Name   string
	Passed bool
}

// ReportIgnoredParam warns that name is ignored when it was passed and every
// condition holds.
func ReportIgnoredParam(p *Params, conditions []Condition, name string) error {
	passed, err := p.WasPassed(name)
	if err != nil || !passed {
		return err
	}
	for _, cond := range conditions {
		got, err := p.WasPassed(cond.Name)
		if err != nil {
			return err
		}
		if got != cond.Passed {
			return nil
		}
	}

	var reason string
	for i, cond := range conditions {
		switch {
		case i == 0:
		case i == len(conditions)-1:
			reason += " and "
		default:
			reason += ", "
		}
		reason += flagList(p, []string{cond.Name}, "")
		if cond.Passed {
			reason += " is specified"
		} else {
			reason += " is not specified"
		}
	}
	p.logger.Warn(fmt.Sprintf("%s ignored because %s!", flagList(p, []string{name}, ""), reason),
		log.ParamNameKey, name)
	return nil
}
