package styles

import (
	"filepick/internal/config"
	"filepick/internal/registry"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds every style the picker renders with.
type Theme struct {
	Frame      lipgloss.Style
	Title      lipgloss.Style
	Stats      lipgloss.Style
	Warning    lipgloss.Style
	Help       lipgloss.Style
	Cursor     lipgloss.Style
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Ignored    lipgloss.Style
	Unreadable lipgloss.Style

	categories map[registry.Category]lipgloss.Style
	fallback   lipgloss.Style
}

// Palette is the set of colours a theme is built from.
type Palette struct {
	Primary  string
	Success  string
	Warning  string
	Error    string
	Info     string
	Emphasis string
	Border   string
}

// PaletteFromConfig reads the colours of the configured theme.
func PaletteFromConfig(cfg *config.Config) Palette {
	return Palette{
		Primary:  cfg.Theme.Primary,
		Success:  cfg.Theme.Success,
		Warning:  cfg.Theme.Warning,
		Error:    cfg.Theme.Error,
		Info:     cfg.Theme.Info,
		Emphasis: cfg.Theme.Emphasis,
		Border:   cfg.Theme.Border,
	}
}

// PaletteFromTheme reads a named theme, falling back to the default one.
func PaletteFromTheme(name string) Palette {
	t := config.GetTheme(name)
	return Palette{
		Primary:  t["primary"],
		Success:  t["success"],
		Warning:  t["warning"],
		Error:    t["error"],
		Info:     t["info"],
		Emphasis: t["emphasis"],
		Border:   t["border"],
	}
}

// New builds a Theme from p.
func New(p Palette) Theme {
	c := func(s string) lipgloss.Color { return lipgloss.Color(s) }

	return Theme{
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(p.Border)).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(c(p.Primary)),
		Stats: lipgloss.NewStyle().
			Foreground(c(p.Info)),
		Warning: lipgloss.NewStyle().
			Foreground(c(p.Warning)).
			Bold(true),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Cursor: lipgloss.NewStyle().
			Foreground(c(p.Primary)).
			Bold(true),
		Selected: lipgloss.NewStyle().
			Foreground(c(p.Success)).
			Bold(true),
		Unselected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
		Ignored: lipgloss.NewStyle().
			Foreground(c(p.Warning)),
		Unreadable: lipgloss.NewStyle().
			Foreground(c(p.Error)),

		categories: map[registry.Category]lipgloss.Style{
			registry.Root:   lipgloss.NewStyle().Foreground(c(p.Emphasis)),
			registry.Source: lipgloss.NewStyle().Foreground(c(p.Info)),
			registry.Test:   lipgloss.NewStyle().Foreground(c(p.Success)),
			registry.Docs:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
			registry.Config: lipgloss.NewStyle().Foreground(c(p.Primary)),
			registry.Assets: lipgloss.NewStyle().Foreground(lipgloss.Color("180")),
			registry.Build:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		},
		fallback: lipgloss.NewStyle(),
	}
}

// Default is the theme used when no configuration is loaded.
func Default() Theme {
	return New(PaletteFromTheme("default"))
}

// Category returns the label style for c, or the fallback style for
// categories without an entry.
func (t Theme) Category(c registry.Category) lipgloss.Style {
	if s, ok := t.categories[c]; ok {
		return s
	}
	return t.fallback
}
