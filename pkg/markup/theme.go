package markup

import (
	"os"
	"strconv"

	gansi "github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Theme is the detected kind of terminal background
type Theme int

const (
	ThemeUnknown Theme = iota
	ThemeDark
	ThemeLight
	// ThemeNoTTY is used when output is not a terminal
	ThemeNoTTY
)

func (t Theme) String() string {
	switch t {
	case ThemeDark:
		return "dark"
	case ThemeLight:
		return "light"
	case ThemeNoTTY:
		return "notty"
	default:
		return "unknown"
	}
}

// ThemeForLuma classifies a background luma in [0, 1]
func ThemeForLuma(luma float64) Theme {
	switch {
	case luma > 0.85:
		return ThemeLight
	case luma < 0.2:
		return ThemeDark
	default:
		return ThemeUnknown
	}
}

// IsTerminal reports whether f is an interactive terminal
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// DetectTheme guesses the background of the terminal f writes to
func DetectTheme(f *os.File) Theme {
	if !IsTerminal(f) {
		return ThemeNoTTY
	}
	bg := termenv.NewOutput(f).BackgroundColor()
	if _, ok := bg.(termenv.NoColor); ok || bg == nil {
		return ThemeUnknown
	}
	c := termenv.ConvertToRGB(bg)
	return ThemeForLuma(0.2126*c.R + 0.7152*c.G + 0.0722*c.B)
}

// StyleFor returns the glamour style used for a theme
func StyleFor(theme Theme) gansi.StyleConfig {
	switch theme {
	case ThemeLight:
		s, _ := NamedStyle(styles.LightStyle)
		return s
	case ThemeNoTTY:
		s, _ := NamedStyle(styles.NoTTYStyle)
		return s
	default:
		s, _ := NamedStyle(styles.DarkStyle)
		return s
	}
}

// NamedStyle returns one of glamour's standard styles ("dark", "light",
// "notty", "ascii", "dracula", ...) with the document margin removed, so
// help text starts at the first column
func NamedStyle(name string) (gansi.StyleConfig, bool) {
	base, ok := styles.DefaultStyles[name]
	if !ok {
		return gansi.StyleConfig{}, false
	}
	style := *base
	var zero uint
	style.Document.Margin = &zero
	return style, true
}

// Auto returns a glamour engine styled for the terminal f writes to
func Auto(f *os.File) *Glamour {
	theme := DetectTheme(f)
	profile := termenv.Ascii
	if theme != ThemeNoTTY {
		profile = termenv.NewOutput(f).EnvColorProfile()
	}
	return NewGlamour(StyleFor(theme), profile)
}

// TerminalWidth returns the width of the terminal f writes to. It falls
// back to $COLUMNS, then DefaultWidth.
func TerminalWidth(f *os.File) int {
	if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
		return w
	}
	if cols, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && cols > 0 {
		return cols
	}
	return DefaultWidth
}
