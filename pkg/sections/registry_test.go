package sections_test

import (
	"testing"

	"github.com/arthur-debert/clihelp/pkg/errors"
	"github.com/arthur-debert/clihelp/pkg/sections"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keysOf(ss []sections.Section) []string {
	var keys []string
	for _, s := range ss {
		keys = append(keys, s.Key)
	}
	return keys
}

func TestDefault(t *testing.T) {
	r := sections.Default()

	assert.Equal(t, sections.DefaultKeys, r.Keys())
	assert.Equal(t,
		[]string{"title", "author", "usage", "positionals", "options"},
		keysOf(r.Sections()),
		"introduction and bugs have no default template")

	opts, ok := r.Get(sections.KeyOptions)
	require.True(t, ok)
	assert.Equal(t, []string{"option-lines"}, opts.Blocks())
}

func TestRegistry_SetAndUnset(t *testing.T) {
	t.Run("set adds a template for a listed key", func(t *testing.T) {
		r := sections.Default()
		require.NoError(t, r.Set(sections.KeyIntroduction, "Compute `height x width`"))
		assert.Contains(t, keysOf(r.Sections()), "introduction")
	})

	t.Run("set replaces", func(t *testing.T) {
		r := sections.Default()
		require.NoError(t, r.Set(sections.KeyTitle, "# ${name}"))
		tmpl, _ := r.Get(sections.KeyTitle)
		assert.Equal(t, "# ${name}", tmpl.String())
		assert.Len(t, r.Sections(), 5)
	})

	t.Run("unset keeps the key order", func(t *testing.T) {
		r := sections.Default()
		r.Unset(sections.KeyAuthor)
		assert.Equal(t, sections.DefaultKeys, r.Keys())
		assert.NotContains(t, keysOf(r.Sections()), "author")
	})

	t.Run("template for an unlisted key is never printed", func(t *testing.T) {
		r := sections.Default()
		require.NoError(t, r.Set("examples", "## Examples"))
		assert.NotContains(t, keysOf(r.Sections()), "examples")

		r.InsertKeyBefore(sections.KeyOptions, "examples")
		assert.Equal(t,
			[]string{"title", "author", "usage", "positionals", "examples", "options"},
			keysOf(r.Sections()))
	})

	t.Run("malformed template is rejected at registration", func(t *testing.T) {
		r := sections.Default()
		err := r.Set(sections.KeyOptions, "${option-lines\n|${short}|")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateUnterminatedBlock))

		tmpl, _ := r.Get(sections.KeyOptions)
		assert.Equal(t, sections.TemplateOptions, tmpl.String(), "previous template kept")
	})
}

func TestRegistry_Order(t *testing.T) {
	r := sections.New()
	require.NoError(t, r.Set("a", "A"))
	require.NoError(t, r.Set("b", "B"))
	require.NoError(t, r.Set("c", "C"))
	assert.Empty(t, r.Sections())

	r.SetKeys([]string{"c", "a", "missing"})
	assert.Equal(t, []string{"c", "a"}, keysOf(r.Sections()))

	r.AppendKey("b")
	r.InsertKeyBefore("a", "b")
	assert.Equal(t, []string{"c", "b", "a", "missing", "b"}, r.Keys())

	r.RemoveKey("b")
	assert.Equal(t, []string{"c", "a", "missing"}, r.Keys())

	r.InsertKeyBefore("nowhere", "b")
	assert.Equal(t, []string{"c", "a", "missing", "b"}, r.Keys())

	keys := r.Keys()
	keys[0] = "mutated"
	assert.Equal(t, "c", r.Keys()[0], "Keys returns a copy")
}
