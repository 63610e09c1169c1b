package cobrax

import (
	"strings"

	"github.com/arthur-debert/clihelp/pkg/errors"
	"github.com/arthur-debert/clihelp/pkg/meta"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Annotation keys read by Describe
const (
	AnnotationAuthor         = "clihelp_author"
	AnnotationPossibleValues = "clihelp_possible_values"
	annotationPositionalHelp = "clihelp_positional:"
)

// words of a Use line that are not positionals
var useKeywords = map[string]bool{
	"flags":   true,
	"options": true,
	"command": true,
}

// Describe reads the help-relevant facts of a cobra command.
//
// Options are the command's local flags followed by the inherited ones,
// hidden flags excluded. Positionals come from the Use line: `[NAME]` is
// optional, `NAME` required, and a name after `--` only accepted last.
func Describe(cmd *cobra.Command) meta.Command {
	desc := meta.Command{
		Name:    cmd.CommandPath(),
		Author:  annotation(cmd, AnnotationAuthor),
		Version: cmd.Version,
		About:   cmd.Long,
	}
	if desc.Version == "" && cmd.HasParent() {
		desc.Version = cmd.Root().Version
	}
	if desc.About == "" {
		desc.About = cmd.Short
	}

	seen := make(map[string]bool)
	collect := func(f *pflag.Flag) {
		if f.Hidden || seen[f.Name] {
			return
		}
		seen[f.Name] = true
		desc.Options = append(desc.Options, optionFromFlag(f))
	}
	cmd.LocalFlags().VisitAll(collect)
	cmd.InheritedFlags().VisitAll(collect)

	desc.Positionals = positionalsFromUse(cmd.Use)
	for i := range desc.Positionals {
		key, _ := desc.Positionals[i].Key()
		desc.Positionals[i].Help = annotation(cmd, annotationPositionalHelp+key)
	}
	return desc
}

func annotation(cmd *cobra.Command, key string) string {
	if cmd.Annotations == nil {
		return ""
	}
	return cmd.Annotations[key]
}

func optionFromFlag(f *pflag.Flag) meta.Option {
	varname, usage := pflag.UnquoteUsage(f)
	opt := meta.Option{
		Short:          f.Shorthand,
		Long:           f.Name,
		Help:           usage,
		TakesValue:     f.NoOptDefVal == "",
		PossibleValues: f.Annotations[AnnotationPossibleValues],
	}
	if !opt.TakesValue {
		return opt
	}

	// pflag falls back to the type name when the usage has no back-quoted name
	if !strings.Contains(f.Usage, "`") || varname == "" {
		varname = strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
	}
	opt.ValueNames = []string{varname}
	if f.DefValue != "" && f.DefValue != "[]" {
		opt.DefaultValues = []string{f.DefValue}
	}
	return opt
}

func positionalsFromUse(use string) []meta.Positional {
	fields := strings.Fields(use)
	if len(fields) < 2 {
		return nil
	}

	var out []meta.Positional
	last, inBracket := false, false
	for _, tok := range fields[1:] {
		optional := inBracket
		if strings.HasPrefix(tok, "[") {
			optional = true
			tok = tok[1:]
		}
		closes := strings.HasSuffix(tok, "]")
		tok = strings.TrimSuffix(tok, "]")

		if tok == "--" {
			last = true
			inBracket = optional && !closes
			continue
		}
		inBracket = false

		name := strings.TrimSuffix(tok, "...")
		if name == "" || strings.HasPrefix(name, "-") || useKeywords[strings.ToLower(name)] {
			last = false
			continue
		}
		out = append(out, meta.Positional{
			ValueNames: []string{name},
			Required:   !optional,
			Last:       last,
		})
		last = false
	}
	return out
}

// SetAuthor records the author shown by the author section
func SetAuthor(cmd *cobra.Command, author string) {
	setAnnotation(cmd, AnnotationAuthor, author)
}

// SetPositionalHelp records the help of a positional named in the Use line
func SetPositionalHelp(cmd *cobra.Command, name, help string) {
	setAnnotation(cmd, annotationPositionalHelp+name, help)
}

func setAnnotation(cmd *cobra.Command, key, value string) {
	if cmd.Annotations == nil {
		cmd.Annotations = make(map[string]string)
	}
	cmd.Annotations[key] = value
}

// SetPossibleValues declares the accepted values of a flag. They are listed
// in the options table together with the flag default.
func SetPossibleValues(cmd *cobra.Command, flag string, values ...string) error {
	f := cmd.Flags().Lookup(flag)
	if f == nil {
		f = cmd.PersistentFlags().Lookup(flag)
	}
	if f == nil {
		return errors.Newf(errors.ErrInvalidInput, "no flag named %q", flag).
			WithDetail("command", cmd.Name())
	}
	if f.Annotations == nil {
		f.Annotations = make(map[string][]string)
	}
	f.Annotations[AnnotationPossibleValues] = values
	return nil
}
