package popup

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/overflow-menu/internal/logging/events"
)

// Focus tracks which element holds keyboard focus. Components delegate to a
// shared Focus instead of each carrying their own focus handling.
type Focus struct {
	doc     *Document
	current string
}

func NewFocus(doc *Document) *Focus {
	return &Focus{doc: doc}
}

// Focus moves focus to path and dispatches a focus-in event. Focusing the
// element that already has focus is a no-op, as in a browser.
func (f *Focus) Focus(path string) tea.Cmd {
	if path == "" || path == f.current {
		return nil
	}
	f.current = path
	events.Focus.In(path)
	return f.doc.Dispatch(Event{Kind: EventFocusIn, Target: path})
}

// Blur drops focus without notifying listeners.
func (f *Focus) Blur() {
	if f.current == "" {
		return
	}
	events.Focus.Blur(f.current)
	f.current = ""
}

func (f *Focus) Current() string {
	return f.current
}

func (f *Focus) IsFocused(path string) bool {
	return path != "" && f.current == path
}

// Within reports whether focus sits on root or one of its descendants.
func (f *Focus) Within(root string) bool {
	return (Element{Path: root}).Contains(f.current)
}
