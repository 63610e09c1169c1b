// Package markup is the boundary with the markdown-to-terminal engine.
//
// The printer only needs two things from an engine: lay a markdown text out
// at a width, then report the narrowest width holding that layout and accept
// a new rendering width. Engine and Text capture exactly that, so the printer
// never depends on glamour directly.
package markup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// DefaultWidth is used when the terminal width cannot be determined
const DefaultWidth = 80

// Engine lays markdown text out for the terminal
type Engine interface {
	Layout(markdown string, width int) (Text, error)
}

// Text is a laid out markdown text
type Text interface {
	// ContentWidth is the narrowest width that shows the text without
	// wrapping it more than it already is
	ContentWidth() int
	// SetRenderingWidth changes the width String renders at
	SetRenderingWidth(width int) error
	String() string
}

// ContentWidth measures the widest visible line of rendered, ignoring ANSI
// sequences and the trailing padding engines add to fill a width
func ContentWidth(rendered string) int {
	lines := strings.Split(rendered, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(ansi.Strip(l), " ")
	}
	return lipgloss.Width(strings.Join(lines, "\n"))
}

// TrimBlankLines removes the whitespace-only lines at both ends of rendered
func TrimBlankLines(rendered string) string {
	lines := strings.Split(rendered, "\n")
	start, end := 0, len(lines)
	for start < end && isBlank(lines[start]) {
		start++
	}
	for end > start && isBlank(lines[end-1]) {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}

func isBlank(line string) bool {
	return strings.TrimSpace(ansi.Strip(line)) == ""
}
