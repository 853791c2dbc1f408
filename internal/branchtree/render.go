package branchtree

import (
	"fmt"
	"strings"

	"github.com/naoray/gitkit/internal/ui"
)

const (
	pipeBranch = "├─ "
	pipeLast   = "└─ "
	pipeDown   = "│   "
	pipeBlank  = "    "

	// columnPadding is the gap added after the widest cell of each column.
	columnPadding = 2
)

// RenderOptions tunes the text rendering.
type RenderOptions struct {
	// TitleWidth is the maximum number of characters of the commit title shown.
	TitleWidth int
}

// DefaultRenderOptions matches the classic 50 character subject line.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{TitleWidth: 50}
}

// cell is one table cell made of styled segments.
type cell []ui.Styled

func (c cell) width() int {
	w := 0
	for _, segment := range c {
		w += segment.Width()
	}
	return w
}

func (c cell) render(st *ui.Styler) string {
	var b strings.Builder
	for _, segment := range c {
		b.WriteString(st.Render(segment))
	}
	return b.String()
}

// row columns: prefix and name, behind, ahead, title, hash.
type row []cell

// Render draws the forest as one aligned line per branch.
func Render(forest Forest, st *ui.Styler, opts RenderOptions) string {
	if st == nil {
		st = ui.PlainStyler()
	}
	rows := layoutRows(forest, opts)
	if len(rows) == 0 {
		return ""
	}

	widths := make([]int, len(rows[0]))
	for _, r := range rows {
		for i, c := range r {
			widths[i] = max(widths[i], c.width()+columnPadding)
		}
	}

	var b strings.Builder
	for _, r := range rows {
		for i, c := range r {
			b.WriteString(c.render(st))
			b.WriteString(strings.Repeat(" ", max(0, widths[i]-c.width())))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// layoutRows lays the forest out in display order without rendering it.
// Only the very first row is unprefixed and every root is drawn as a last
// sibling.
func layoutRows(forest Forest, opts RenderOptions) []row {
	var rows []row
	for i, root := range forest.Roots() {
		rows = appendRows(rows, root, "", i == 0, true, opts)
	}
	return rows
}

func appendRows(rows []row, node *Node, prefix string, first, last bool, opts RenderOptions) []row {
	pipe := ""
	if !first {
		pipe = pipeBranch
		if last {
			pipe = pipeLast
		}
	}
	rows = append(rows, newRow(prefix+pipe, node, opts))

	childPrefix := prefix + pipeDown
	if last {
		childPrefix = prefix + pipeBlank
	}
	for i, child := range node.Children {
		rows = appendRows(rows, child, childPrefix, false, i == len(node.Children)-1, opts)
	}
	return rows
}

func newRow(prefix string, node *Node, opts RenderOptions) row {
	name := ui.Plain(node.Name)
	if node.IsActive {
		name = ui.Style(node.Name, ui.Bold, ui.Highlight)
	}

	return row{
		{ui.Plain(prefix), name},
		{formatBehind(node.Behind)},
		{formatAhead(node.Ahead)},
		{ui.Plain(truncate(node.Title, opts.TitleWidth))},
		{ui.Plain(node.Hash)},
	}
}

func formatBehind(count *int) ui.Styled {
	if count == nil || *count == 0 {
		return ui.Plain(" 0")
	}
	return ui.Style(fmt.Sprintf("-%d", *count), ui.Attention)
}

func formatAhead(count *int) ui.Styled {
	if count == nil || *count == 0 {
		return ui.Plain(" 0")
	}
	return ui.Style(fmt.Sprintf("+%d", *count), ui.Positive)
}

func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
