package components

import (
	"strings"

	"filepick/internal/tui/common"
	"filepick/internal/tui/styles"

	"github.com/charmbracelet/x/ansi"
)

// cellPrefixWidth is the width of "> [x]!" before the label.
const cellPrefixWidth = 6

// Grid renders the visible window of every column, row by row.
type Grid struct {
	src   common.FrameSource
	theme styles.Theme
}

func NewGrid(src common.FrameSource, theme styles.Theme) *Grid {
	return &Grid{src: src, theme: theme}
}

// View returns one line per visible row.
func (g *Grid) View() string {
	l := g.src.Layout()
	if l.ItemCount == 0 {
		return g.theme.Unselected.Render("No items")
	}

	first, last := l.VisibleRange()
	rows := make([]string, 0, last-first)
	for row := first; row < last; row++ {
		var sb strings.Builder
		for col := 0; col < l.ColumnCount; col++ {
			width := l.ColumnWidths[col]
			i, ok := l.IndexAt(col, row)
			if !ok {
				sb.WriteString(strings.Repeat(" ", width))
				continue
			}
			sb.WriteString(g.cell(i, width))
		}
		rows = append(rows, strings.TrimRight(sb.String(), " "))
	}
	return strings.Join(rows, "\n")
}

func (g *Grid) cell(i, width int) string {
	it, _ := g.src.Item(i)
	cursor := i == g.src.Cursor().SelectedIndex
	ignored := g.src.Ignored(i)

	pointer := "  "
	if cursor {
		pointer = "> "
	}
	box := "[ ]"
	if it.Enabled {
		box = "[x]"
	}
	marker := " "
	if ignored {
		marker = "!"
	}

	if width < cellPrefixWidth+1 {
		return ansi.Truncate(pointer+box+marker, width, "")
	}

	// Leave one column of space before the next column.
	avail := width - cellPrefixWidth - 1
	label := ansi.Truncate(it.Label, avail, "…")
	pad := width - cellPrefixWidth - ansi.StringWidth(label)

	t := g.theme
	boxStyle := t.Unselected
	if it.Enabled {
		boxStyle = t.Selected
		if _, sized := it.CachedSize(); !sized {
			boxStyle = t.Unreadable
		}
	}
	labelStyle := t.Category(it.Category)
	if cursor {
		labelStyle = labelStyle.Bold(true)
	}

	var sb strings.Builder
	sb.WriteString(t.Cursor.Render(pointer))
	sb.WriteString(boxStyle.Render(box))
	if ignored {
		sb.WriteString(t.Ignored.Render(marker))
	} else {
		sb.WriteString(marker)
	}
	sb.WriteString(labelStyle.Render(label))
	sb.WriteString(strings.Repeat(" ", max(pad, 0)))
	return sb.String()
}
