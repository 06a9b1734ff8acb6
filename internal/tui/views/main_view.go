package views

import (
	"fmt"
	"strings"

	"filepick/internal/layout"
	"filepick/internal/tui/common"
	"filepick/internal/tui/components"
	"filepick/internal/tui/styles"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/x/ansi"
)

// RenderFrame builds the complete frame: title, stats, warning, grid and
// help line inside a rounded border. The result is written in one piece.
func RenderFrame(src common.FrameSource, theme styles.Theme) string {
	l := src.Layout()
	inner := max(l.TerminalWidth-layout.FrameWidth, 1)

	lines := []string{
		fit(renderTitle(src, theme), inner),
		fit(theme.Stats.Render(src.Stats().Summary()), inner),
		fit(renderWarning(src, theme), inner),
		components.NewGrid(src, theme).View(),
		RenderHelp(src, theme, inner),
	}

	return theme.Frame.
		Width(max(l.TerminalWidth-2, 1)).
		Render(strings.Join(lines, "\n"))
}

func renderTitle(src common.FrameSource, theme styles.Theme) string {
	title := theme.Title.Render("filepick")
	items := fmt.Sprintf(" %d items", src.Layout().ItemCount)

	rules := "no ignore rules"
	switch n := src.RuleCount(); {
	case n < 0:
		rules = "loading rules"
	case n == 1:
		rules = "1 ignore rule"
	case n > 1:
		rules = fmt.Sprintf("%d ignore rules", n)
	}

	line := title + theme.Stats.Render(items+" · "+rules)
	if status := src.Status(); status != "" {
		line += "  " + status
	}
	return line
}

func renderWarning(src common.FrameSource, theme styles.Theme) string {
	w := src.Stats().Warning()
	if w == "" {
		return ""
	}
	return theme.Warning.Render(w)
}

// RenderHelp renders the key help, short or full depending on the source.
func RenderHelp(src common.FrameSource, theme styles.Theme, width int) string {
	h := help.New()
	h.Width = width
	h.ShowAll = src.ShowHelp()
	h.Styles.ShortKey = theme.Help.Bold(true)
	h.Styles.ShortDesc = theme.Help
	h.Styles.FullKey = theme.Help.Bold(true)
	h.Styles.FullDesc = theme.Help
	return h.View(src.Keys())
}

func fit(s string, width int) string {
	return ansi.Truncate(s, width, "…")
}
