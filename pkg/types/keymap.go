package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings of the picker. It lives in pkg/types so the
// model, the views and the CLI share one definition.
type KeyMap struct {
	// Navigation
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Selection
	Toggle    key.Binding // Toggle the item under the cursor
	SelectAll key.Binding // Enable everything, or disable everything when all are enabled

	// Session
	Submit key.Binding
	Quit   key.Binding
	Help   key.Binding
}

// DefaultKeyMap returns the default bindings with selectAll bound to the
// select-all action. An empty selectAll falls back to "a".
func DefaultKeyMap(selectAll string) KeyMap {
	if selectAll == "" {
		selectAll = "a"
	}
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys(selectAll),
			key.WithHelp(selectAll, "all/none"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c", "q"),
			key.WithHelp("esc/q", "cancel"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.SelectAll, k.Submit, k.Quit, k.Help}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Toggle, k.SelectAll},
		{k.Submit, k.Quit, k.Help},
	}
}
