package popup

import (
	"fmt"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/overflow-menu/internal/logging/events"
)

// State is the open/closed state of a Machine.
type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// InteractionState is the state owned by a Machine. Click records whether
// the current open cycle was started by a pointer click; HasMountedTrigger
// never reverts once set.
type InteractionState struct {
	Open              bool
	Click             bool
	HasMountedTrigger bool
}

// FocusReturnMsg asks the host to route a deferred trigger refocus back to
// the Machine identified by ID.
type FocusReturnMsg struct {
	ID  string
	gen uint64
}

var instanceCounter atomic.Int64

// Machine is the interaction state machine of one trigger/popup pair.
type Machine struct {
	id    string
	opts  Options
	doc   *Document
	focus *Focus
	tree  *Elements

	state   InteractionState
	gate    Gate
	trigger string
	body    *Element
	items   []Item
	handles Handles

	hasPrevOpen bool
	prevOpen    bool

	pointer *Release
	focusIn *Release

	focusGen   uint64
	returnFrom string
	mounted    bool
}

// NewMachine creates a closed machine. doc, focus and tree are shared with
// the host; tree must be the element tree the host rebuilds every render.
func NewMachine(doc *Document, focus *Focus, tree *Elements, opts Options) *Machine {
	n := instanceCounter.Add(1)
	return &Machine{
		id:    fmt.Sprintf("overflow-menu-%d__menu-body", n),
		opts:  opts.withDefaults(),
		doc:   doc,
		focus: focus,
		tree:  tree,
	}
}

// ID is the popup body id, referenced by aria-controls while open.
func (m *Machine) ID() string { return m.id }

func (m *Machine) Options() Options { return m.opts }

func (m *Machine) State() InteractionState { return m.state }

func (m *Machine) IsOpen() bool { return m.state.Open }

func (m *Machine) Trigger() string { return m.trigger }

// Body returns the mounted popup root, nil while nothing is placed.
func (m *Machine) Body() *Element { return m.body }

// ShouldRender reports whether the host should draw the popup subtree.
func (m *Machine) ShouldRender() bool {
	return m.state.Open && m.gate.Ready()
}

// MountTrigger records the trigger element and opens the mount gate. A
// machine configured InitiallyOpen opens on its first mount.
func (m *Machine) MountTrigger(path string) tea.Cmd {
	if path == "" {
		return nil
	}
	first := !m.state.HasMountedTrigger
	m.trigger = path
	m.mounted = true
	m.state.HasMountedTrigger = m.gate.Confirm(true)
	if first {
		events.Popup.Mount(m.id, path)
		if m.opts.InitiallyOpen {
			return m.SyncOpen(true)
		}
	}
	return nil
}

// Unmount releases every listener and cancels pending focus returns.
func (m *Machine) Unmount() {
	m.releaseListeners()
	m.body = nil
	m.focusGen++
	m.mounted = false
	events.Popup.Unmount(m.id)
}

// SyncOpen reconciles an externally supplied open flag with internal state.
// Only a change relative to the previously supplied value has an effect, so
// internal toggles survive repeated updates carrying the same input.
func (m *Machine) SyncOpen(external bool) tea.Cmd {
	if m.hasPrevOpen && m.prevOpen == external {
		return nil
	}
	m.hasPrevOpen = true
	m.prevOpen = external
	if external {
		return m.Open()
	}
	return m.Close()
}

// Open opens the popup as a non-pointer open cycle.
func (m *Machine) Open() tea.Cmd {
	if m.state.Open {
		return nil
	}
	m.state.Click = false
	m.transition(true)
	return nil
}

// Close closes the popup without moving focus.
func (m *Machine) Close() tea.Cmd {
	m.transition(false)
	return nil
}

func (m *Machine) Toggle() tea.Cmd {
	if m.state.Open {
		return m.Close()
	}
	return m.Open()
}

// ActivateTrigger handles a click (byClick) or activation key on the
// trigger. An activation whose target lies inside the mounted popup is
// ignored so a click being handled by the popup cannot re-toggle it.
func (m *Machine) ActivateTrigger(target string, byClick bool) tea.Cmd {
	if byClick {
		m.state.Click = true
	} else if !m.state.Open {
		m.state.Click = false
	}
	if m.body != nil && m.body.Contains(target) {
		return nil
	}
	m.transition(!m.state.Open)
	m.opts.OnClick()
	return nil
}

// HandleKey processes a key press. handled means the key must not propagate
// to the host or an enclosing popup.
func (m *Machine) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	keys := m.opts.Keys
	if !m.state.Open {
		if key.Matches(msg, keys.Activate) && m.focus.IsFocused(m.trigger) {
			return true, m.ActivateTrigger(m.trigger, false)
		}
		return false, nil
	}
	switch {
	case key.Matches(msg, keys.Close):
		return true, m.closeOnEscape()
	case key.Matches(msg, keys.Activate) && m.focus.IsFocused(m.trigger):
		return true, m.ActivateTrigger(m.trigger, false)
	case keys.arrow(msg):
		dir := m.opts.ArrowDirection(msg)
		if dir == 0 {
			return true, nil
		}
		return true, m.moveFocus(dir)
	case m.opts.FocusTrap && key.Matches(msg, keys.Next):
		return true, m.moveFocus(1)
	case m.opts.FocusTrap && key.Matches(msg, keys.Prev):
		return true, m.moveFocus(-1)
	}
	return false, nil
}

// ActivateItem closes the popup after the item at index was chosen. Where
// focus goes next is up to the item's own handler; see ReturnFocus.
func (m *Machine) ActivateItem(index int) tea.Cmd {
	if !m.state.Open {
		return nil
	}
	if index < 0 || index >= len(m.items) || m.items[index].Disabled {
		return nil
	}
	m.transition(false)
	return nil
}

// ReturnFocus schedules the trigger to be refocused on the next tick.
func (m *Machine) ReturnFocus() tea.Cmd {
	return m.deferFocusReturn()
}

// HandleFocusReturn runs a deferred refocus unless it was cancelled by an
// unmount, a newer open cycle or focus moving since it was scheduled.
func (m *Machine) HandleFocusReturn(msg FocusReturnMsg) tea.Cmd {
	if msg.ID != m.id {
		return nil
	}
	if msg.gen != m.focusGen || !m.mounted || m.trigger == "" || m.focus.Current() != m.returnFrom {
		events.Popup.FocusReturnCancelled(m.id)
		return nil
	}
	events.Popup.FocusReturn(m.id, m.trigger)
	return m.focus.Focus(m.trigger)
}

// SetItems installs the item descriptors of the current render pass.
func (m *Machine) SetItems(items []Item) {
	m.items = append(m.items[:0], items...)
	m.handles.Rebuild(m.items)
}

func (m *Machine) Items() []Item { return m.items }

// FocusedIndex returns the item index holding focus, or -1.
func (m *Machine) FocusedIndex() int {
	return m.handles.IndexOf(m.focus.Current())
}

// FocusIndex moves focus onto the item at index if it is enabled.
func (m *Machine) FocusIndex(index int) tea.Cmd {
	if index < 0 || index >= len(m.items) || m.items[index].Disabled {
		return nil
	}
	handle, ok := m.handles.Lookup(index)
	if !ok {
		return nil
	}
	return m.focus.Focus(handle)
}

// Place is called by the placement primitive once the popup body is on
// screen. It binds the outside-click and outside-focus listeners.
func (m *Machine) Place(body Element) tea.Cmd {
	if !m.state.Open {
		return nil
	}
	m.body = &body
	if !m.pointer.Active() {
		m.pointer = m.doc.On(EventPointer, m.handlePointer)
	}
	if !m.focusIn.Active() {
		m.focusIn = m.doc.On(EventFocusIn, m.handleFocusIn)
	}
	return nil
}

// Unplace clears the body reference when the popup leaves the screen.
func (m *Machine) Unplace() {
	m.body = nil
	m.releaseListeners()
}

// Target resolves the container the popup mounts into; "" is the screen.
func (m *Machine) Target() string {
	if m.opts.Target != "" {
		return m.opts.Target
	}
	if el, ok := m.tree.Closest(m.trigger, "["+AttrContainer+"]"); ok {
		return el.Path
	}
	return ""
}

// TriggerAttrs returns the accessibility attributes of the trigger.
func (m *Machine) TriggerAttrs() map[string]string {
	attrs := map[string]string{
		"aria-haspopup": "true",
		"aria-expanded": fmt.Sprintf("%t", m.state.Open),
		AttrTrigger:     "",
	}
	if m.state.Open {
		attrs["aria-controls"] = m.id
	}
	return attrs
}

// BodyAttrs returns the attributes of the popup root.
func (m *Machine) BodyAttrs() map[string]string {
	return map[string]string{
		"id":          m.id,
		"role":        "menu",
		AttrDirection: string(m.opts.Direction),
	}
}

func (m *Machine) transition(open bool) {
	if m.state.Open == open {
		return
	}
	m.state.Open = open
	if open {
		m.focusGen++
		events.Popup.Open(m.id, m.state.Click)
		m.opts.OnOpen()
		return
	}
	m.body = nil
	m.releaseListeners()
	events.Popup.Close(m.id, m.state.Click)
	m.opts.OnClose()
}

func (m *Machine) releaseListeners() {
	m.pointer.Release()
	m.pointer = nil
	m.focusIn.Release()
	m.focusIn = nil
}

func (m *Machine) handlePointer(ev Event) tea.Cmd {
	if !m.state.Open {
		return nil
	}
	if m.ownsTarget(ev.Target) {
		return nil
	}
	if !IsOutside(ev.Target, m.body, nil, m.tree) {
		return nil
	}
	events.Popup.Outside(m.id, ev.Kind.String(), ev.Target)
	m.transition(false)
	return nil
}

func (m *Machine) handleFocusIn(ev Event) tea.Cmd {
	if !m.state.Open || m.trigger == "" {
		return nil
	}
	if m.ownsTarget(ev.Target) {
		return nil
	}
	if !IsOutside(ev.Target, m.body, m.opts.AlsoAllow, m.tree) {
		return nil
	}
	events.Popup.Outside(m.id, ev.Kind.String(), ev.Target)
	return m.closeAndFocus()
}

// ownsTarget reports whether target lies on this machine's trigger wrapper.
func (m *Machine) ownsTarget(target string) bool {
	return (Element{Path: m.trigger}).Contains(target)
}

func (m *Machine) closeAndFocus() tea.Cmd {
	wasClicked := m.state.Click
	wasOpen := m.state.Open
	m.transition(false)
	if wasOpen && !wasClicked {
		return m.deferFocusReturn()
	}
	return nil
}

func (m *Machine) closeOnEscape() tea.Cmd {
	wasOpen := m.state.Open
	m.transition(false)
	if wasOpen {
		return m.deferFocusReturn()
	}
	return nil
}

func (m *Machine) deferFocusReturn() tea.Cmd {
	m.focusGen++
	m.returnFrom = m.focus.Current()
	msg := FocusReturnMsg{ID: m.id, gen: m.focusGen}
	return func() tea.Msg { return msg }
}

func (m *Machine) moveFocus(dir int) tea.Cmd {
	enabled := EnabledIndices(m.items)
	if len(enabled) == 0 {
		return nil
	}
	current := m.FocusedIndex()
	var next int
	if indexOf(enabled, current) < 0 {
		next = enabled[0]
		if dir < 0 {
			next = enabled[len(enabled)-1]
		}
	} else {
		next = NextIndex(enabled, current, dir)
	}
	handle, ok := m.handles.Lookup(next)
	if !ok {
		return nil
	}
	events.Popup.Rove(m.id, current, next)
	return m.focus.Focus(handle)
}
