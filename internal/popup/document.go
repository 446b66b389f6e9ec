package popup

import tea "github.com/charmbracelet/bubbletea"

// EventKind distinguishes the document level events a popup listens for.
type EventKind int

const (
	EventPointer EventKind = iota
	EventFocusIn
)

func (k EventKind) String() string {
	switch k {
	case EventPointer:
		return "pointer"
	case EventFocusIn:
		return "focusin"
	default:
		return "unknown"
	}
}

// Event is a pointer press or focus change. Target is the path of whatever
// sits under the pointer or received focus; it may name a non-element such as
// a label span, or be empty when nothing was hit.
type Event struct {
	Kind   EventKind
	Target string
}

// Listener reacts to a document event and may return follow-up work.
type Listener func(Event) tea.Cmd

type listener struct {
	id   int
	kind EventKind
	fn   Listener
}

// Document is the listener registry shared by every popup on screen.
type Document struct {
	nextID    int
	listeners []listener
}

func NewDocument() *Document {
	return &Document{}
}

// Release is the capability returned by On. Releasing twice, or releasing a
// nil handle, does nothing.
type Release struct {
	doc *Document
	id  int
}

// Release unbinds the listener.
func (r *Release) Release() {
	if r == nil || r.doc == nil {
		return
	}
	r.doc.remove(r.id)
	r.doc = nil
}

// Active reports whether the listener is still bound.
func (r *Release) Active() bool {
	return r != nil && r.doc != nil
}

// On binds fn to events of the given kind until the handle is released.
func (d *Document) On(kind EventKind, fn Listener) *Release {
	d.nextID++
	d.listeners = append(d.listeners, listener{id: d.nextID, kind: kind, fn: fn})
	return &Release{doc: d, id: d.nextID}
}

func (d *Document) remove(id int) {
	for i, l := range d.listeners {
		if l.id == id {
			d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
			return
		}
	}
}

func (d *Document) bound(id int) bool {
	for _, l := range d.listeners {
		if l.id == id {
			return true
		}
	}
	return false
}

// Dispatch delivers ev to every listener bound for its kind. Listeners
// released by an earlier listener in the same dispatch are skipped.
func (d *Document) Dispatch(ev Event) tea.Cmd {
	if d == nil {
		return nil
	}
	snapshot := append([]listener(nil), d.listeners...)
	cmds := make([]tea.Cmd, 0, len(snapshot))
	for _, l := range snapshot {
		if l.kind != ev.Kind || !d.bound(l.id) {
			continue
		}
		if cmd := l.fn(ev); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// Len reports how many listeners of kind are bound.
func (d *Document) Len(kind EventKind) int {
	n := 0
	for _, l := range d.listeners {
		if l.kind == kind {
			n++
		}
	}
	return n
}
