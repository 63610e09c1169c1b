// Package meta describes a command the way the help printer needs it:
// name, author, version and the ordered options and positionals.
//
// Values are plain data. They come from an adapter (see pkg/cobrax) or from
// a description file loaded with Load.
package meta

// Command is the help-relevant description of a program
type Command struct {
	Name        string       `yaml:"name" toml:"name"`
	Author      string       `yaml:"author,omitempty" toml:"author,omitempty"`
	Version     string       `yaml:"version,omitempty" toml:"version,omitempty"`
	About       string       `yaml:"about,omitempty" toml:"about,omitempty"`
	Options     []Option     `yaml:"options,omitempty" toml:"options,omitempty"`
	Positionals []Positional `yaml:"positionals,omitempty" toml:"positionals,omitempty"`
}

// Option describes a flag argument
type Option struct {
	// Short is the single character form, without the dash
	Short string `yaml:"short,omitempty" toml:"short,omitempty"`
	// Long is the long form, without the dashes
	Long           string   `yaml:"long,omitempty" toml:"long,omitempty"`
	Help           string   `yaml:"help,omitempty" toml:"help,omitempty"`
	ValueNames     []string `yaml:"value_names,omitempty" toml:"value_names,omitempty"`
	PossibleValues []string `yaml:"possible_values,omitempty" toml:"possible_values,omitempty"`
	DefaultValues  []string `yaml:"default_values,omitempty" toml:"default_values,omitempty"`
	TakesValue     bool     `yaml:"takes_value,omitempty" toml:"takes_value,omitempty"`
}

// Positional describes a positional argument
type Positional struct {
	ValueNames []string `yaml:"value_names,omitempty" toml:"value_names,omitempty"`
	Required   bool     `yaml:"required,omitempty" toml:"required,omitempty"`
	// Last marks an argument only accepted after `--`
	Last bool   `yaml:"last,omitempty" toml:"last,omitempty"`
	Help string `yaml:"help,omitempty" toml:"help,omitempty"`
}

// Displayable reports whether the option has a flag form to show
func (o Option) Displayable() bool {
	return o.Short != "" || o.Long != ""
}

// ValueName returns the first declared value name
func (o Option) ValueName() (string, bool) {
	if len(o.ValueNames) == 0 {
		return "", false
	}
	return o.ValueNames[0], true
}

// Key returns the first declared value name
func (p Positional) Key() (string, bool) {
	if len(p.ValueNames) == 0 {
		return "", false
	}
	return p.ValueNames[0], true
}
