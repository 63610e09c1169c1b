// Package binding turns a command description into expander bindings.
//
// Scalars: name, author, version, about, positional-args.
// Block option-lines: short, long, value, help, possible_values, default.
// Block positional-lines: key, help.
//
// Source order is kept. Options without any flag form and positionals
// without a value name are skipped.
package binding

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/clihelp/pkg/expander"
	"github.com/arthur-debert/clihelp/pkg/logging"
	"github.com/arthur-debert/clihelp/pkg/meta"
)

// Block names
const (
	OptionLines     = "option-lines"
	PositionalLines = "positional-lines"
)

var cellEscaper = strings.NewReplacer("|", `\|`, "\n", " ")

// Build returns an expander seeded from cmd, with an empty default value
func Build(cmd meta.Command) *expander.Expander {
	logger := logging.GetLogger("binding")

	exp := expander.New().SetDefault("")
	// name is also expanded inside the usage code span, where escapes
	// would print
	exp.Set("name", cmd.Name)
	if cmd.Author != "" {
		exp.SetPlain("author", cmd.Author)
	}
	if cmd.Version != "" {
		exp.SetPlain("version", cmd.Version)
	}
	if cmd.About != "" {
		exp.Set("about", cmd.About)
	}

	skipped := 0
	for _, opt := range cmd.Options {
		if !opt.Displayable() {
			skipped++
			continue
		}
		AddOption(exp, opt)
	}

	exp.Set("positional-args", addPositionals(exp, cmd.Positionals))

	logger.Debug().
		Str("name", cmd.Name).
		Int("options", len(exp.Rows(OptionLines))).
		Int("positionals", len(exp.Rows(PositionalLines))).
		Int("skippedOptions", skipped).
		Msg("Bindings built")
	return exp
}

// AddOption appends one row to the option-lines block
func AddOption(exp *expander.Expander, opt meta.Option) *expander.Row {
	row := exp.Sub(OptionLines)
	if opt.Short != "" {
		row.Set("short", "-"+opt.Short)
	}
	if opt.Long != "" {
		row.Set("long", "--"+opt.Long)
	}
	if opt.Help != "" {
		row.Set("help", cellEscaper.Replace(opt.Help))
	}
	if opt.TakesValue {
		if name, ok := opt.ValueName(); ok {
			row.Set("value", name)
		}
	}
	if len(opt.PossibleValues) > 0 {
		row.Set("possible_values", PossibleValuesText(opt.PossibleValues))
		// Defaults are only shown next to possible values.
		if len(opt.DefaultValues) > 0 {
			row.Set("default", DefaultText(opt.DefaultValues[0]))
		}
	}
	return row
}

// PossibleValuesText formats choices as ` Possible values: [`a`, `b`]`
func PossibleValuesText(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "`" + v + "`"
	}
	return fmt.Sprintf(" Possible values: [%s]", strings.Join(quoted, ", "))
}

// DefaultText formats a default value as ` Default: `v``
func DefaultText(value string) string {
	return fmt.Sprintf(" Default: `%s`", value)
}

func addPositionals(exp *expander.Expander, positionals []meta.Positional) string {
	var args strings.Builder
	for _, p := range positionals {
		key, ok := p.Key()
		if !ok {
			continue
		}
		args.WriteString(UsageFragment(p))

		row := exp.Sub(PositionalLines)
		row.Set("key", key)
		if p.Help != "" {
			row.SetPlain("help", p.Help)
		}
	}
	return args.String()
}

// UsageFragment returns the usage line part of a positional, with its
// leading space: ` ROOT`, ` [ROOT]`, ` [-- ARGS]`
func UsageFragment(p meta.Positional) string {
	key, ok := p.Key()
	if !ok {
		return ""
	}
	var b strings.Builder
	b.WriteByte(' ')
	if !p.Required {
		b.WriteByte('[')
	}
	if p.Last {
		b.WriteString("-- ")
	}
	b.WriteString(key)
	if !p.Required {
		b.WriteByte(']')
	}
	return b.String()
}
