package expander

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/clihelp/pkg/errors"
)

var (
	identPattern  = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	openerPattern = regexp.MustCompile(`^\$\{([A-Za-z0-9_-]+)$`)
)

// segment is either literal text or a variable reference
type segment struct {
	text  string
	isVar bool
}

type line []segment

// node is one template line or one repeated block
type node struct {
	line  line
	block *block
}

type block struct {
	name  string
	lines []line
}

// Template is a parsed help template. It holds no bindings and can be
// expanded any number of times by any Expander.
type Template struct {
	text  string
	nodes []node
}

// Parse validates text and returns its parsed form.
//
// A line whose trimmed content is `${name` opens the repeated block `name`,
// the next line whose trimmed content is `}` closes it. Blocks don't nest.
// Any other `${` must be a complete `${name}` placeholder.
func Parse(text string) (*Template, error) {
	t := &Template{text: text}
	var current *block
	openedAt := 0

	for i, raw := range strings.Split(text, "\n") {
		lineNo := i + 1
		trimmed := strings.TrimSpace(raw)

		if m := openerPattern.FindStringSubmatch(trimmed); m != nil {
			if current != nil {
				return nil, errors.Newf(errors.ErrTemplateNestedBlock,
					"line %d: block %q opened inside block %q", lineNo, m[1], current.name).
					WithDetail("line", lineNo).
					WithDetail("block", current.name)
			}
			current = &block{name: m[1]}
			openedAt = lineNo
			continue
		}

		if current != nil && trimmed == "}" {
			t.nodes = append(t.nodes, node{block: current})
			current = nil
			continue
		}

		l, err := parseLine(raw, lineNo)
		if err != nil {
			return nil, err
		}
		if current != nil {
			current.lines = append(current.lines, l)
		} else {
			t.nodes = append(t.nodes, node{line: l})
		}
	}

	if current != nil {
		return nil, errors.Newf(errors.ErrTemplateUnterminatedBlock,
			"line %d: block %q is never closed", openedAt, current.name).
			WithDetail("line", openedAt).
			WithDetail("block", current.name)
	}
	return t, nil
}

// MustParse is like Parse but panics on malformed templates.
// It is meant for package level template constants.
func MustParse(text string) *Template {
	t, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return t
}

func parseLine(raw string, lineNo int) (line, error) {
	var l line
	rest := raw
	for {
		start := strings.Index(rest, "${")
		if start < 0 {
			break
		}
		end := strings.IndexByte(rest[start:], '}')
		if end < 0 {
			return nil, badPlaceholder(lineNo, rest[start:])
		}
		name := rest[start+2 : start+end]
		if !identPattern.MatchString(name) {
			return nil, badPlaceholder(lineNo, rest[start:start+end+1])
		}
		if start > 0 {
			l = append(l, segment{text: rest[:start]})
		}
		l = append(l, segment{text: name, isVar: true})
		rest = rest[start+end+1:]
	}
	if rest != "" || len(l) == 0 {
		l = append(l, segment{text: rest})
	}
	return l, nil
}

func badPlaceholder(lineNo int, fragment string) error {
	return errors.Newf(errors.ErrTemplateBadPlaceholder,
		"line %d: malformed placeholder %q", lineNo, fragment).
		WithDetail("line", lineNo)
}

// String returns the source text of the template
func (t *Template) String() string {
	return t.text
}

// Blocks lists the names of the repeated blocks, in template order
func (t *Template) Blocks() []string {
	var names []string
	for _, n := range t.nodes {
		if n.block != nil {
			names = append(names, n.block.name)
		}
	}
	return names
}
