package popup

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap lists the keys the state machine consumes.
type KeyMap struct {
	Close    key.Binding
	Activate key.Binding
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Next     key.Binding
	Prev     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Close:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Activate: key.NewBinding(key.WithKeys("enter", " ", "space"), key.WithHelp("enter", "open/select")),
		Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous")),
		Down:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next")),
		Left:     key.NewBinding(key.WithKeys("left")),
		Right:    key.NewBinding(key.WithKeys("right")),
		Next:     key.NewBinding(key.WithKeys("tab")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab")),
	}
}

// arrow reports whether msg is one of the four arrow keys.
func (k KeyMap) arrow(msg tea.KeyMsg) bool {
	return key.Matches(msg, k.Up, k.Down, k.Left, k.Right)
}

// ArrowDirection is the default arrow mapping: up/left go back, down/right
// go forward.
func (k KeyMap) ArrowDirection(msg tea.KeyMsg) int {
	switch {
	case key.Matches(msg, k.Up, k.Left):
		return -1
	case key.Matches(msg, k.Down, k.Right):
		return 1
	default:
		return 0
	}
}
