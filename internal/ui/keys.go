package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the host-level bindings. Popup keys live in popup.KeyMap and
// are only listed here for the help footer.
type keyMap struct {
	Next      key.Binding
	Prev      key.Binding
	Open      key.Binding
	Move      key.Binding
	Close     key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:      key.NewBinding(key.WithKeys("tab", "right"), key.WithHelp("tab/→", "next trigger")),
		Prev:      key.NewBinding(key.WithKeys("shift+tab", "left"), key.WithHelp("shift+tab/←", "prev trigger")),
		Open:      key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "open/select")),
		Move:      key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "move")),
		Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:      key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Open, k.Move, k.Close, k.Quit, k.Help}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev},
		{k.Open, k.Move, k.Close},
		{k.Quit, k.Help},
	}
}
