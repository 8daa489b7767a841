package interactive

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds all the key bindings of the shell
type KeyMap struct {
	Quit key.Binding
	Help key.Binding

	Up       key.Binding
	Down     key.Binding
	Next     key.Binding
	Previous key.Binding
	Check    key.Binding

	Apply   key.Binding
	Dismiss key.Binding
	Copy    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "l", "right"),
			key.WithHelp("tab", "next panel"),
		),
		Previous: key.NewBinding(
			key.WithKeys("shift+tab", "h", "left"),
			key.WithHelp("shift+tab", "previous panel"),
		),
		Check: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "check"),
		),

		Apply: key.NewBinding(
			key.WithKeys("a", "enter"),
			key.WithHelp("a/enter", "apply"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc", "enter"),
			key.WithHelp("esc", "dismiss"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy message"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (it KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{it.Next, it.Check, it.Apply, it.Help, it.Quit}
}

// FullHelp implements help.KeyMap
func (it KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{it.Up, it.Down, it.Next, it.Previous},
		{it.Check, it.Apply},
		{it.Dismiss, it.Copy, it.Help, it.Quit},
	}
}

var keys = DefaultKeyMap()
