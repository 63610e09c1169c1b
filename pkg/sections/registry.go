// Package sections keeps the help templates and the order they print in.
//
// The order list is authoritative: a key without a template is skipped, a
// template whose key is not in the order is never printed.
package sections

import (
	"github.com/arthur-debert/clihelp/pkg/expander"
)

// Registry maps section keys to parsed templates and holds the print order
type Registry struct {
	keys      []string
	templates map[string]*expander.Template
}

// New returns an empty registry
func New() *Registry {
	return &Registry{templates: make(map[string]*expander.Template)}
}

// Default returns a registry holding the default keys and templates
func Default() *Registry {
	r := New()
	r.keys = append(r.keys, DefaultKeys...)
	r.templates[KeyTitle] = expander.MustParse(TemplateTitle)
	r.templates[KeyAuthor] = expander.MustParse(TemplateAuthor)
	r.templates[KeyUsage] = expander.MustParse(TemplateUsage)
	r.templates[KeyPositionals] = expander.MustParse(TemplatePositionals)
	r.templates[KeyOptions] = expander.MustParse(TemplateOptions)
	return r
}

// Set parses text and stores it under key, replacing any previous template.
// The print order is not changed.
func (r *Registry) Set(key, text string) error {
	t, err := expander.Parse(text)
	if err != nil {
		return err
	}
	r.templates[key] = t
	return nil
}

// SetTemplate stores an already parsed template under key
func (r *Registry) SetTemplate(key string, t *expander.Template) {
	r.templates[key] = t
}

// Unset removes the template of key. The key stays in the print order.
func (r *Registry) Unset(key string) {
	delete(r.templates, key)
}

// Get returns the template registered under key
func (r *Registry) Get(key string) (*expander.Template, bool) {
	t, ok := r.templates[key]
	return t, ok
}

// Keys returns a copy of the print order
func (r *Registry) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// SetKeys replaces the print order
func (r *Registry) SetKeys(keys []string) {
	r.keys = append([]string(nil), keys...)
}

// AppendKey adds key at the end of the print order
func (r *Registry) AppendKey(key string) {
	r.keys = append(r.keys, key)
}

// InsertKeyBefore inserts key just before the first occurrence of before,
// or at the end if before is not in the order
func (r *Registry) InsertKeyBefore(before, key string) {
	for i, k := range r.keys {
		if k == before {
			r.keys = append(r.keys[:i], append([]string{key}, r.keys[i:]...)...)
			return
		}
	}
	r.keys = append(r.keys, key)
}

// RemoveKey removes every occurrence of key from the print order.
// The template, if any, is kept.
func (r *Registry) RemoveKey(key string) {
	kept := r.keys[:0]
	for _, k := range r.keys {
		if k != key {
			kept = append(kept, k)
		}
	}
	r.keys = kept
}

// Section is a key paired with its template
type Section struct {
	Key      string
	Template *expander.Template
}

// Sections returns the printable sections: keys of the order that have a
// template, in order
func (r *Registry) Sections() []Section {
	var out []Section
	for _, k := range r.keys {
		if t, ok := r.templates[k]; ok {
			out = append(out, Section{Key: k, Template: t})
		}
	}
	return out
}
