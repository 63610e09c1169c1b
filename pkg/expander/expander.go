// Package expander fills help templates with variable bindings.
//
// An Expander holds scalar bindings and named repeated blocks. Each block is
// an ordered list of rows, every row being an independent set of bindings.
// Expanding a template substitutes `${name}` placeholders and emits the inner
// lines of a block once per bound row, in the order the rows were added.
//
//	exp := expander.New()
//	exp.Set("name", "area")
//	exp.Sub("option-lines").Set("short", "-h").Set("long", "--height")
//	out, err := exp.ExpandString("# ${name}\n${option-lines\n|${short}|${long}|\n}")
//
// Unbound variables resolve to the default value (empty unless SetDefault is
// called), so optional metadata never makes expansion fail. Only malformed
// templates do.
package expander

import (
	"strings"
)

// Expander binds variables for template expansion
type Expander struct {
	values     map[string]string
	def        string
	blocks     map[string][]*Row
	blockOrder []string
}

// Row is one sub-binding of a repeated block
type Row struct {
	values map[string]string
}

// New returns an empty Expander whose default value is the empty string
func New() *Expander {
	return &Expander{
		values: make(map[string]string),
		blocks: make(map[string][]*Row),
	}
}

// Set binds name to value. The value is used verbatim, so it may contain
// markdown. The last write wins.
func (e *Expander) Set(name, value string) *Expander {
	e.values[name] = value
	return e
}

// SetPlain binds name to value escaped so it displays literally
func (e *Expander) SetPlain(name, value string) *Expander {
	return e.Set(name, EscapeMarkdown(value))
}

// SetDefault sets the value used for variables that were never bound
func (e *Expander) SetDefault(value string) *Expander {
	e.def = value
	return e
}

// Default returns the value used for unbound variables
func (e *Expander) Default() string {
	return e.def
}

// Get returns the top level binding for name
func (e *Expander) Get(name string) (string, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Sub appends a new row to the block name and returns it
func (e *Expander) Sub(name string) *Row {
	if _, ok := e.blocks[name]; !ok {
		e.blockOrder = append(e.blockOrder, name)
	}
	r := &Row{values: make(map[string]string)}
	e.blocks[name] = append(e.blocks[name], r)
	return r
}

// Rows returns the rows bound to the block name, in insertion order
func (e *Expander) Rows(name string) []*Row {
	rows := e.blocks[name]
	out := make([]*Row, len(rows))
	copy(out, rows)
	return out
}

// BlockNames lists the blocks that have at least one row, in the order
// they were first opened
func (e *Expander) BlockNames() []string {
	out := make([]string, len(e.blockOrder))
	copy(out, e.blockOrder)
	return out
}

// Set binds name to value for this row only
func (r *Row) Set(name, value string) *Row {
	r.values[name] = value
	return r
}

// SetPlain binds name to value escaped so it displays literally
func (r *Row) SetPlain(name, value string) *Row {
	return r.Set(name, EscapeMarkdown(value))
}

// Get returns the row local binding for name
func (r *Row) Get(name string) (string, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Values returns a copy of the row bindings
func (r *Row) Values() map[string]string {
	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// Expand fills t with the current bindings. It never modifies the Expander.
func (e *Expander) Expand(t *Template) string {
	var out []string
	for _, n := range t.nodes {
		if n.block == nil {
			out = append(out, e.renderLine(n.line, nil))
			continue
		}
		for _, row := range e.blocks[n.block.name] {
			for _, l := range n.block.lines {
				out = append(out, e.renderLine(l, row))
			}
		}
	}
	return strings.Join(out, "\n")
}

// ExpandString parses text and expands it
func (e *Expander) ExpandString(text string) (string, error) {
	t, err := Parse(text)
	if err != nil {
		return "", err
	}
	return e.Expand(t), nil
}

func (e *Expander) renderLine(l line, row *Row) string {
	var b strings.Builder
	for _, s := range l {
		if s.isVar {
			b.WriteString(e.lookup(s.text, row))
		} else {
			b.WriteString(s.text)
		}
	}
	return b.String()
}

// lookup resolves name: row binding first, then top level, then default
func (e *Expander) lookup(name string, row *Row) string {
	if row != nil {
		if v, ok := row.values[name]; ok {
			return v
		}
	}
	if v, ok := e.values[name]; ok {
		return v
	}
	return e.def
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
	`|`, `\|`,
)

// EscapeMarkdown escapes the characters that would otherwise be read as
// markdown inline syntax or table separators
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
