package markup

import (
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	gansi "github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

// Glamour lays markdown out with the glamour engine
type Glamour struct {
	style   gansi.StyleConfig
	profile termenv.Profile
}

// NewGlamour returns an engine rendering with style and the given color
// profile
func NewGlamour(style gansi.StyleConfig, profile termenv.Profile) *Glamour {
	return &Glamour{style: style, profile: profile}
}

// Style gives access to the style so it can be adjusted before printing
func (g *Glamour) Style() *gansi.StyleConfig {
	return &g.style
}

// SetStyle replaces the style
func (g *Glamour) SetStyle(style gansi.StyleConfig) {
	g.style = style
}

// Profile returns the color profile output is rendered for
func (g *Glamour) Profile() termenv.Profile {
	return g.profile
}

// Layout renders markdown wrapped at width
func (g *Glamour) Layout(markdown string, width int) (Text, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	t := &glamourText{engine: g, markdown: markdown}
	if err := t.renderAt(width); err != nil {
		return nil, err
	}
	natural, err := t.naturalWidth()
	if err != nil {
		return nil, err
	}
	t.contentWidth = natural
	return t, nil
}

func (g *Glamour) render(markdown string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(g.style),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(g.profile),
	)
	if err != nil {
		return "", err
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", err
	}
	return TrimBlankLines(out), nil
}

type glamourText struct {
	engine       *Glamour
	markdown     string
	width        int
	rendered     string
	contentWidth int
}

func (t *glamourText) renderAt(width int) error {
	out, err := t.engine.render(t.markdown, width)
	if err != nil {
		return err
	}
	t.rendered = out
	t.width = width
	return nil
}

// naturalWidth is the narrowest width rendering the same words on the same
// lines as the current rendering. Tables stretch to the wrap width, so the
// widest rendered line is only an upper bound.
func (t *glamourText) naturalWidth() (int, error) {
	hi := min(ContentWidth(t.rendered), t.width)
	if hi <= 1 {
		return hi, nil
	}
	want := layoutSignature(t.rendered)
	same := func(width int) (bool, error) {
		out, err := t.engine.render(t.markdown, width)
		if err != nil {
			return false, err
		}
		return slices.Equal(layoutSignature(out), want), nil
	}

	ok, err := same(hi - 1)
	if err != nil || !ok {
		return hi, err
	}
	hi--
	lo := min(longestWord(t.rendered), hi)
	for lo < hi {
		mid := (lo + hi) / 2
		ok, err := same(mid)
		if err != nil {
			return 0, err
		}
		if ok {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return hi, nil
}

// layoutSignature reduces a rendering to the words on each line, dropping
// table rules and padding
func layoutSignature(rendered string) []string {
	var sig []string
	for _, l := range strings.Split(rendered, "\n") {
		words := strings.Fields(strings.Map(dropRule, ansi.Strip(l)))
		if len(words) > 0 {
			sig = append(sig, strings.Join(words, " "))
		}
	}
	return sig
}

func dropRule(r rune) rune {
	if strings.ContainsRune("-+|─━═┼│┃┌┐└┘├┤┬┴╭╮╰╯", r) {
		return ' '
	}
	return r
}

func longestWord(rendered string) int {
	longest := 1
	for _, w := range strings.Fields(ansi.Strip(rendered)) {
		longest = max(longest, lipgloss.Width(w))
	}
	return longest
}

func (t *glamourText) ContentWidth() int {
	return t.contentWidth
}

func (t *glamourText) SetRenderingWidth(width int) error {
	if width <= 0 || width == t.width {
		return nil
	}
	return t.renderAt(width)
}

func (t *glamourText) String() string {
	return t.rendered
}
