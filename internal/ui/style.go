// Package ui holds terminal presentation helpers: tag-based text styling and
// interactive prompts.
package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/muesli/termenv"
)

// Tag names one emphasis applied to a piece of text.
type Tag int

const (
	Bold Tag = iota
	// Highlight marks the active branch.
	Highlight
	// Attention marks values that need a look, like commits behind upstream.
	Attention
	// Positive marks values that are good news, like commits ahead of upstream.
	Positive
)

// Styled is text plus the tags to render it with. The text never contains
// escape sequences, so its width is the width on screen.
type Styled struct {
	Text string
	Tags []Tag
}

// Plain returns untagged text.
func Plain(text string) Styled {
	return Styled{Text: text}
}

// Style returns text carrying tags.
func Style(text string, tags ...Tag) Styled {
	return Styled{Text: text, Tags: tags}
}

// Width is the number of terminal cells the text occupies.
func (s Styled) Width() int {
	return lipgloss.Width(s.Text)
}

// Styler turns Styled values into strings for one output stream.
type Styler struct {
	renderer *lipgloss.Renderer
}

// NewStyler returns a styler for w. mode is "always", "never" or "auto";
// auto colors only when w is a terminal.
func NewStyler(w io.Writer, mode string) *Styler {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case "always":
		r.SetColorProfile(termenv.ANSI)
	case "never":
		r.SetColorProfile(termenv.Ascii)
	default:
		if f, ok := w.(*os.File); !ok || !term.IsTerminal(f.Fd()) {
			r.SetColorProfile(termenv.Ascii)
		}
	}
	return &Styler{renderer: r}
}

// PlainStyler renders every Styled as its bare text.
func PlainStyler() *Styler {
	return NewStyler(io.Discard, "never")
}

// Render applies s.Tags to s.Text.
func (st *Styler) Render(s Styled) string {
	if len(s.Tags) == 0 {
		return s.Text
	}

	style := st.renderer.NewStyle()
	for _, tag := range s.Tags {
		switch tag {
		case Bold:
			style = style.Bold(true)
		case Highlight, Positive:
			style = style.Foreground(lipgloss.Color("10"))
		case Attention:
			style = style.Foreground(lipgloss.Color("9"))
		}
	}
	return style.Render(s.Text)
}
