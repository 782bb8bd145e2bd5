package cli

import (
	"io"
	"strings"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/shrit/mlpack/core/params"
)

// option is a flag the parser accepts.
type option struct {
	d     *params.ParamData
	arity params.Arity
}

// table is the grammar the parser tokenizes against.
type table struct {
	long  map[string]option
	short map[rune]option
	cur   *params.ParamData
}

func newTable(p *params.Params) *table {
	t := &table{
		long:  make(map[string]option),
		short: make(map[rune]option),
	}
	for _, d := range p.All() {
		t.cur = d
		d.Value.AddTo(t, d)
	}
	t.cur = nil
	return t
}

func (t *table) add(flag string, alias rune, arity params.Arity) {
	o := option{d: t.cur, arity: arity}
	t.long[flag] = o
	if alias != 0 {
		t.short[alias] = o
	}
}

func (t *table) Toggle(flag string, alias rune, _ string) {
	t.add(flag, alias, params.ArityNone)
}

func (t *table) Single(flag string, alias rune, _, _ string, _ bool) {
	t.add(flag, alias, params.ArityOne)
}

func (t *table) Multi(flag string, alias rune, _ string, _ bool) {
	t.add(flag, alias, params.ArityMany)
}

// usage renders help for a registry through a kingpin application.
type usage struct {
	app *kingpin.Application
}

func newUsage(p *params.Params, w io.Writer) *usage {
	details := p.Details()
	app := kingpin.New(details.Name, helpText(details))
	app.UsageWriter(w)
	app.ErrorWriter(w)
	app.Terminate(func(int) {})
	app.HelpFlag.Short('h')

	u := &usage{app: app}
	for _, d := range p.All() {
		d.Value.AddTo(u, d)
	}
	return u
}

func helpText(d params.BindingDetails) string {
	var b strings.Builder
	if d.UserName != "" {
		b.WriteString(d.UserName)
		b.WriteString("\n\n")
	}
	b.WriteString(d.Short)
	if d.Long != "" {
		b.WriteString("\n\n")
		b.WriteString(d.Long)
	}
	if len(d.Examples) > 0 {
		b.WriteString("\n\nExamples:\n")
		for _, ex := range d.Examples {
			b.WriteString("\n  $ ")
			b.WriteString(ex)
		}
	}
	if len(d.SeeAlso) > 0 {
		b.WriteString("\n\nSee also: ")
		b.WriteString(strings.Join(d.SeeAlso, ", "))
	}
	return b.String()
}

func (u *usage) flag(flag string, alias rune, help string) *kingpin.FlagClause {
	f := u.app.Flag(flag, help)
	if alias != 0 {
		f.Short(alias)
	}
	return f
}

func (u *usage) Toggle(flag string, alias rune, help string) {
	// kingpin owns --help.
	if flag == HelpParam {
		return
	}
	u.flag(flag, alias, help).Bool()
}

func (u *usage) Single(flag string, alias rune, help, def string, required bool) {
	f := u.flag(flag, alias, help)
	switch {
	case required:
		f.Required()
	case def != "":
		f.Default(def)
	}
	f.String()
}

func (u *usage) Multi(flag string, alias rune, help string, required bool) {
	f := u.flag(flag, alias, help)
	if required {
		f.Required()
	}
	f.Strings()
}

func (u *usage) print() {
	u.app.Usage(nil)
}
