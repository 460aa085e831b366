package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the browser key bindings.
type KeyMap struct {
	Quit         key.Binding
	Up           key.Binding
	Down         key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	Rerun        key.Binding
	ToggleAction key.Binding
	Grow         key.Binding
	Shrink       key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next")),
		PageUp:       key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:     key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Rerun:        key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rerun")),
		ToggleAction: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "action")),
		Grow:         key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "more slots")),
		Shrink:       key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "fewer slots")),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.ToggleAction, k.Grow, k.Shrink, k.Rerun, k.Quit}
}
