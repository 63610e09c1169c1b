// Package printer renders the help of a command from its description and a
// set of section templates.
//
// Minimal usage:
//
//	printer.New(cmd).PrintHelp()
//
// Sections are printed in the registry order. By default every section is
// laid out at the terminal width, then all of them are re-rendered at the
// widest content width found, so titles, paragraphs and tables line up.
// Setting FullWidth prints each section at the terminal width instead.
package printer

import (
	"io"
	"os"
	"slices"
	"strings"

	"github.com/arthur-debert/clihelp/pkg/binding"
	"github.com/arthur-debert/clihelp/pkg/errors"
	"github.com/arthur-debert/clihelp/pkg/expander"
	"github.com/arthur-debert/clihelp/pkg/logging"
	"github.com/arthur-debert/clihelp/pkg/markup"
	"github.com/arthur-debert/clihelp/pkg/meta"
	"github.com/arthur-debert/clihelp/pkg/sections"
	gansi "github.com/charmbracelet/glamour/ansi"
	"github.com/muesli/termenv"
)

// Printer prints the help of one command
type Printer struct {
	// FullWidth disables width equalization across sections
	FullWidth bool
	// MaxWidth caps the layout width when positive
	MaxWidth int

	registry *sections.Registry
	expander *expander.Expander
	engine   markup.Engine
	out      io.Writer
	width    int
	pending  []templateError
}

// templateError is a malformed template given to With, kept until the
// section is set again or removed
type templateError struct {
	key string
	err error
}

// New returns a printer seeded from cmd with the default sections, writing
// to stdout
func New(cmd meta.Command) *Printer {
	return &Printer{
		registry: sections.Default(),
		expander: binding.Build(cmd),
		out:      os.Stdout,
	}
}

// With sets the template of a section. A malformed template is reported by
// the next print call.
func (p *Printer) With(key, template string) *Printer {
	p.dropPending(key)
	if err := p.SetTemplate(key, template); err != nil {
		p.pending = append(p.pending, templateError{key: key, err: err})
	}
	return p
}

// Without removes the template of a section
func (p *Printer) Without(key string) *Printer {
	p.dropPending(key)
	p.registry.Unset(key)
	return p
}

func (p *Printer) dropPending(key string) {
	p.pending = slices.DeleteFunc(p.pending, func(e templateError) bool {
		return e.key == key
	})
}

// WithIntroduction sets the introduction section
func (p *Printer) WithIntroduction(template string) *Printer {
	return p.With(sections.KeyIntroduction, template)
}

// WithMaxWidth caps the width so that very wide terminals aren't fully used.
// Values around 100 or 150 keep long sentences readable.
func (p *Printer) WithMaxWidth(width int) *Printer {
	p.MaxWidth = width
	return p
}

// WithFullWidth selects immediate full width printing
func (p *Printer) WithFullWidth(full bool) *Printer {
	p.FullWidth = full
	return p
}

// WithEngine replaces the markup engine
func (p *Printer) WithEngine(engine markup.Engine) *Printer {
	p.engine = engine
	return p
}

// WithStyle renders with the given glamour style
func (p *Printer) WithStyle(style gansi.StyleConfig) *Printer {
	if g, ok := p.engine.(*markup.Glamour); ok {
		g.SetStyle(style)
		return p
	}
	profile := termenv.Ascii
	if f, ok := p.out.(*os.File); ok && markup.IsTerminal(f) {
		profile = termenv.NewOutput(f).EnvColorProfile()
	}
	p.engine = markup.NewGlamour(style, profile)
	return p
}

// WithOutput sets where help is written
func (p *Printer) WithOutput(w io.Writer) *Printer {
	p.out = w
	return p
}

// WithWidth sets the width used instead of the detected terminal width
func (p *Printer) WithWidth(width int) *Printer {
	p.width = width
	return p
}

// SetTemplate sets the template of a section
func (p *Printer) SetTemplate(key, template string) error {
	return p.registry.Set(key, template)
}

// Registry gives access to the templates and their order
func (p *Printer) Registry() *sections.Registry {
	return p.registry
}

// Expander gives access to the bindings, to override variables or add new
// ones for custom templates
func (p *Printer) Expander() *expander.Expander {
	return p.expander
}

// Engine returns the markup engine, detecting one for the output if none
// was set
func (p *Printer) Engine() markup.Engine {
	if p.engine == nil {
		f, ok := p.out.(*os.File)
		if !ok {
			f = os.Stdout
		}
		p.engine = markup.Auto(f)
	}
	return p.engine
}

// Style returns the glamour style when the engine is glamour based, so it
// can be modified before printing
func (p *Printer) Style() *gansi.StyleConfig {
	if g, ok := p.Engine().(*markup.Glamour); ok {
		return g.Style()
	}
	return nil
}

// LayoutWidth is the detected width capped by MaxWidth
func (p *Printer) LayoutWidth() int {
	width := p.width
	if width <= 0 {
		width = markup.DefaultWidth
		if f, ok := p.out.(*os.File); ok {
			width = markup.TerminalWidth(f)
		}
	}
	if p.MaxWidth > 0 && p.MaxWidth < width {
		width = p.MaxWidth
	}
	return width
}

// PrintTemplate expands and prints one template with the printer's bindings
func (p *Printer) PrintTemplate(template string) error {
	tmpl, err := expander.Parse(template)
	if err != nil {
		return err
	}
	text, err := p.Engine().Layout(p.expander.Expand(tmpl), p.LayoutWidth())
	if err != nil {
		return errors.Wrap(err, errors.ErrRender, "failed to lay out template")
	}
	return p.write(text.String() + "\n")
}

// PrintHelp prints all sections in order with a single write
func (p *Printer) PrintHelp() error {
	defer logging.LogOperationStart(logging.GetLogger("printer"), "print help")()
	out, err := p.Render()
	if err != nil {
		return err
	}
	return p.write(out)
}

// Render returns what PrintHelp would write
func (p *Printer) Render() (string, error) {
	if len(p.pending) > 0 {
		return "", p.pending[0].err
	}
	if p.FullWidth {
		return p.renderFullWidth()
	}
	return p.renderContentWidth()
}

func (p *Printer) write(s string) error {
	if _, err := io.WriteString(p.out, s); err != nil {
		return errors.Wrap(err, errors.ErrWrite, "failed to write help")
	}
	return nil
}

// layout expands every printable section and lays it out at width
func (p *Printer) layout(width int) ([]markup.Text, error) {
	engine := p.Engine()
	var texts []markup.Text
	for _, s := range p.registry.Sections() {
		text, err := engine.Layout(p.expander.Expand(s.Template), width)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrRender, "failed to lay out section %q", s.Key).
				WithDetail("section", s.Key)
		}
		texts = append(texts, text)
	}
	return texts, nil
}

func (p *Printer) renderFullWidth() (string, error) {
	width := p.LayoutWidth()
	texts, err := p.layout(width)
	if err != nil {
		return "", err
	}
	logger := logging.GetLogger("printer")
	logger.Debug().
		Int("width", width).
		Int("sections", len(texts)).
		Msg("Rendering at full width")
	return join(texts), nil
}

func (p *Printer) renderContentWidth() (string, error) {
	width := p.LayoutWidth()
	texts, err := p.layout(width)
	if err != nil {
		return "", err
	}

	contentWidth := 0
	for _, t := range texts {
		contentWidth = max(contentWidth, t.ContentWidth())
	}
	contentWidth = min(contentWidth, width)

	logger := logging.GetLogger("printer")
	logger.Debug().
		Int("width", width).
		Int("contentWidth", contentWidth).
		Int("sections", len(texts)).
		Msg("Rendering at content width")

	for _, t := range texts {
		if err := t.SetRenderingWidth(contentWidth); err != nil {
			return "", errors.Wrap(err, errors.ErrRender, "failed to re-render section")
		}
	}
	return join(texts), nil
}

// join separates non-empty sections with a blank line
func join(texts []markup.Text) string {
	var blocks []string
	for _, t := range texts {
		if s := t.String(); strings.TrimSpace(s) != "" {
			blocks = append(blocks, s)
		}
	}
	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n") + "\n"
}
