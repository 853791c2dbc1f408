package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStyled_Width(t *testing.T) {
	assert.Equal(t, 4, Plain("main").Width())
	assert.Equal(t, 7, Style("├─ main", Bold).Width())
	assert.Equal(t, 0, Plain("").Width())
}

func TestPlainStyler_DropsTags(t *testing.T) {
	st := PlainStyler()

	assert.Equal(t, "main", st.Render(Style("main", Bold, Highlight)))
	assert.Equal(t, "-3", st.Render(Style("-3", Attention)))
}

func TestStyler_AlwaysEmitsEscapes(t *testing.T) {
	st := NewStyler(&bytes.Buffer{}, "always")

	rendered := st.Render(Style("main", Bold, Highlight))

	assert.Contains(t, rendered, "main")
	assert.Contains(t, rendered, "\x1b[")
	assert.NotEqual(t, "main", rendered)
}

func TestStyler_AutoOnNonTerminalIsPlain(t *testing.T) {
	st := NewStyler(&bytes.Buffer{}, "auto")

	assert.Equal(t, "+2", st.Render(Style("+2", Positive)))
}

func TestStyler_UntaggedPassesThrough(t *testing.T) {
	st := NewStyler(&bytes.Buffer{}, "always")

	assert.Equal(t, "title\twith tab", st.Render(Plain("title\twith tab")))
}
