package printer_test

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/arthur-debert/clihelp/pkg/errors"
	"github.com/arthur-debert/clihelp/pkg/markup"
	"github.com/arthur-debert/clihelp/pkg/meta"
	"github.com/arthur-debert/clihelp/pkg/printer"
	"github.com/arthur-debert/clihelp/pkg/sections"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	lipgloss.SetDefaultRenderer(lipgloss.NewRenderer(io.Discard))
	os.Exit(m.Run())
}

// fakeEngine measures content width as the longest markdown line and
// renders as "[width]markdown"
type fakeEngine struct {
	layouts []int
	texts   []*fakeText
	fail    bool
}

type fakeText struct {
	markdown     string
	contentWidth int
	width        int
}

func (e *fakeEngine) Layout(md string, width int) (markup.Text, error) {
	if e.fail {
		return nil, stderrors.New("engine down")
	}
	e.layouts = append(e.layouts, width)
	cw := 0
	for _, l := range strings.Split(md, "\n") {
		cw = max(cw, utf8.RuneCountInString(l))
	}
	text := &fakeText{markdown: md, contentWidth: min(cw, width), width: width}
	e.texts = append(e.texts, text)
	return text, nil
}

// renderedWidths lists the width each laid out text was finally rendered at
func (e *fakeEngine) renderedWidths() []int {
	widths := make([]int, len(e.texts))
	for i, t := range e.texts {
		widths[i] = t.width
	}
	return widths
}

func (t *fakeText) ContentWidth() int { return t.contentWidth }

func (t *fakeText) SetRenderingWidth(width int) error {
	t.width = width
	return nil
}

func (t *fakeText) String() string {
	return fmt.Sprintf("[%d]%s", t.width, strings.TrimSpace(t.markdown))
}

var area = meta.Command{
	Name: "area",
	Options: []meta.Option{
		{Short: "h", Long: "height", Help: "Height", DefaultValues: []string{"9"}},
		{Short: "w", Long: "width", Help: "Width", DefaultValues: []string{"3"}},
	},
}

func newFakePrinter(cmd meta.Command, width int) (*printer.Printer, *fakeEngine) {
	engine := &fakeEngine{}
	p := printer.New(cmd).
		WithEngine(engine).
		WithWidth(width).
		WithOutput(io.Discard)
	return p, engine
}

func TestRender_ContentWidth(t *testing.T) {
	t.Run("all sections share the widest content width", func(t *testing.T) {
		p, engine := newFakePrinter(area, 80)
		p.Registry().SetKeys([]string{sections.KeyTitle, sections.KeyOptions})
		require.NoError(t, p.SetTemplate(sections.KeyTitle, "# ${name}"))
		require.NoError(t, p.SetTemplate(sections.KeyOptions, "${option-lines\n|${short}|${long}|${help}| and some padding\n}"))

		out, err := p.Render()
		require.NoError(t, err)

		want := utf8.RuneCountInString("|-h|--height|Height| and some padding")
		assert.Equal(t, []int{80, 80}, engine.layouts, "laid out at the detected width")
		assert.Equal(t, []int{want, want}, engine.renderedWidths())
		assert.True(t, strings.HasPrefix(out, fmt.Sprintf("[%d]# area", want)))
	})

	t.Run("max width caps the layout", func(t *testing.T) {
		p, engine := newFakePrinter(area, 200)
		p.WithMaxWidth(20)
		require.NoError(t, p.SetTemplate(sections.KeyTitle, strings.Repeat("x", 50)))

		_, err := p.Render()
		require.NoError(t, err)
		require.NotEmpty(t, engine.texts)
		for _, w := range engine.layouts {
			assert.Equal(t, 20, w)
		}
		for _, w := range engine.renderedWidths() {
			assert.Equal(t, 20, w)
		}
	})

	t.Run("max width above the terminal width is ignored", func(t *testing.T) {
		p, _ := newFakePrinter(area, 60)
		p.WithMaxWidth(150)
		assert.Equal(t, 60, p.LayoutWidth())
	})
}

func TestRender_FullWidth(t *testing.T) {
	p, engine := newFakePrinter(area, 70)
	p.WithFullWidth(true)

	_, err := p.Render()
	require.NoError(t, err)
	require.NotEmpty(t, engine.texts)
	for _, w := range engine.renderedWidths() {
		assert.Equal(t, 70, w)
	}
}

func TestRender_Sections(t *testing.T) {
	t.Run("without removes a section", func(t *testing.T) {
		p, engine := newFakePrinter(area, 80)
		p.Without(sections.KeyAuthor).Without(sections.KeyPositionals)

		out, err := p.Render()
		require.NoError(t, err)
		assert.Len(t, engine.layouts, 3, "title, usage and options")
		assert.Contains(t, out, "# **area**")
		assert.Contains(t, out, "**Usage:** `area [options]`")
		assert.NotContains(t, out, "*by*")
	})

	t.Run("introduction is printed once set", func(t *testing.T) {
		p, _ := newFakePrinter(area, 80)
		p.WithIntroduction("Compute `height x width`")

		out, err := p.Render()
		require.NoError(t, err)
		assert.Less(t, strings.Index(out, "Compute"), strings.Index(out, "Usage"))
	})

	t.Run("malformed template surfaces at print time", func(t *testing.T) {
		p, _ := newFakePrinter(area, 80)
		p.With(sections.KeyOptions, "${option-lines\n|${short}|")

		err := p.PrintHelp()
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateUnterminatedBlock))
	})

	t.Run("removing a section drops its template error", func(t *testing.T) {
		p, _ := newFakePrinter(area, 80)
		p.With(sections.KeyOptions, "${option-lines\n|${short}|").
			Without(sections.KeyOptions)

		require.NoError(t, p.PrintHelp())
	})

	t.Run("replacing a malformed template clears its error", func(t *testing.T) {
		p, _ := newFakePrinter(area, 80)
		p.With(sections.KeyOptions, "${option-lines\n|${short}|").
			With(sections.KeyOptions, "options")

		out, err := p.Render()
		require.NoError(t, err)
		assert.Contains(t, out, "options")
	})

	t.Run("error of another section survives a removal", func(t *testing.T) {
		p, _ := newFakePrinter(area, 80)
		p.With(sections.KeyOptions, "${option-lines\n|${short}|").
			Without(sections.KeyAuthor)

		err := p.PrintHelp()
		assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateUnterminatedBlock))
	})

	t.Run("engine failure names the section", func(t *testing.T) {
		p, engine := newFakePrinter(area, 80)
		engine.fail = true

		_, err := p.Render()
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrRender))
		assert.Equal(t, "title", errors.GetErrorDetails(err)["section"])
	})

	t.Run("extra option row added after construction", func(t *testing.T) {
		p, _ := newFakePrinter(area, 80)
		p.Expander().Sub("option-lines").
			Set("short", "-z").
			Set("long", "--zeta").
			Set("value", "ZETA")

		out, err := p.Render()
		require.NoError(t, err)
		assert.Contains(t, out, "|-z|--zeta|ZETA||")
	})
}

type countingWriter struct {
	buf    bytes.Buffer
	writes int
}

func (w *countingWriter) Write(b []byte) (int, error) {
	w.writes++
	return w.buf.Write(b)
}

func TestPrintHelp_SingleWrite(t *testing.T) {
	var w countingWriter
	p := printer.New(area).WithEngine(&fakeEngine{}).WithWidth(80).WithOutput(&w)

	require.NoError(t, p.PrintHelp())
	assert.Equal(t, 1, w.writes)

	first := w.buf.String()
	w.buf.Reset()
	require.NoError(t, p.PrintHelp())
	assert.Equal(t, first, w.buf.String(), "printing does not change state")
}

func TestPrintTemplate(t *testing.T) {
	var buf bytes.Buffer
	p := printer.New(area).WithEngine(&fakeEngine{}).WithWidth(50).WithOutput(&buf)

	require.NoError(t, p.PrintTemplate("Hello ${name}"))
	assert.Equal(t, "[50]Hello area\n", buf.String())

	err := p.PrintTemplate("${broken")
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateUnterminatedBlock))
}

func asciiPrinter(t *testing.T, cmd meta.Command, width int) *printer.Printer {
	t.Helper()
	style, ok := markup.NamedStyle("ascii")
	require.True(t, ok)
	return printer.New(cmd).
		WithOutput(io.Discard).
		WithWidth(width).
		WithStyle(style)
}

func TestGlamour_AreaScenario(t *testing.T) {
	p := asciiPrinter(t, area, 80)

	out, err := p.Render()
	require.NoError(t, err)

	assert.Contains(t, out, "area")
	assert.Contains(t, out, "area [options]")
	assert.Contains(t, out, "--height")
	assert.Contains(t, out, "--width")
	assert.NotContains(t, out, "Default")
	for _, l := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, markup.ContentWidth(l), 80)
	}
}

func TestGlamour_PossibleValuesScenario(t *testing.T) {
	cmd := meta.Command{
		Name: "area",
		Options: []meta.Option{
			{
				Short: "s", Long: "strategy", Help: "Computation strategy",
				ValueNames: []string{"STRATEGY"}, TakesValue: true,
				PossibleValues: []string{"fast", "precise"}, DefaultValues: []string{"fast"},
			},
		},
	}
	p := asciiPrinter(t, cmd, 100)

	out, err := p.Render()
	require.NoError(t, err)
	assert.Contains(t, out, "--strategy")
	assert.Contains(t, out, "precise")
	assert.Contains(t, out, "Default")
}

// recordingEngine lays out with a real engine and remembers the widths
// texts were measured at and rendered at
type recordingEngine struct {
	engine markup.Engine
	texts  []*recordingText
}

type recordingText struct {
	markup.Text
	renderedAt []int
}

func (e *recordingEngine) Layout(md string, width int) (markup.Text, error) {
	text, err := e.engine.Layout(md, width)
	if err != nil {
		return nil, err
	}
	rt := &recordingText{Text: text}
	e.texts = append(e.texts, rt)
	return rt, nil
}

func (t *recordingText) SetRenderingWidth(width int) error {
	t.renderedAt = append(t.renderedAt, width)
	return t.Text.SetRenderingWidth(width)
}

func TestGlamour_WideTerminal(t *testing.T) {
	style, ok := markup.NamedStyle("ascii")
	require.True(t, ok)
	engine := &recordingEngine{engine: markup.NewGlamour(style, termenv.Ascii)}
	p := printer.New(area).
		WithOutput(io.Discard).
		WithWidth(200).
		WithEngine(engine)

	out, err := p.Render()
	require.NoError(t, err)
	require.NotEmpty(t, engine.texts)

	widest := 0
	for _, text := range engine.texts {
		widest = max(widest, text.ContentWidth())
	}
	assert.Less(t, widest, 200, "options table is as wide as its content")
	for _, text := range engine.texts {
		assert.Equal(t, []int{widest}, text.renderedAt)
	}
	for _, l := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, markup.ContentWidth(l), widest)
	}
	assert.Contains(t, out, "--height")
	assert.Contains(t, out, "--width")
}

func TestGlamour_StyleAccess(t *testing.T) {
	p := asciiPrinter(t, area, 80)
	require.NotNil(t, p.Style())

	p.WithEngine(&fakeEngine{})
	assert.Nil(t, p.Style())
}
