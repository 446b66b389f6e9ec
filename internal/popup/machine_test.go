package popup

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
)

const (
	testTrigger = "screen/top/actions/trigger"
	testBody    = "screen/top/actions/menu"
)

type machineFixture struct {
	doc     *Document
	focus   *Focus
	tree    *Elements
	m       *Machine
	calls   []string
	clicked int
}

func newFixture(t *testing.T, mutate func(*Options)) *machineFixture {
	t.Helper()
	f := &machineFixture{doc: NewDocument(), tree: sampleTree()}
	f.focus = NewFocus(f.doc)
	opts := DefaultOptions()
	opts.OnOpen = func() { f.calls = append(f.calls, "open") }
	opts.OnClose = func() { f.calls = append(f.calls, "close") }
	opts.OnClick = func() { f.clicked++ }
	if mutate != nil {
		mutate(&opts)
	}
	f.m = NewMachine(f.doc, f.focus, f.tree, opts)
	f.m.MountTrigger(testTrigger)
	return f
}

// place simulates the placement primitive for the current render pass.
func (f *machineFixture) place(items ...bool) {
	f.tree.Add(Element{Path: testBody, Attrs: f.m.BodyAttrs()})
	descs := make([]Item, len(items))
	for i, disabled := range items {
		handle := JoinPath(testBody, "item-"+string(rune('0'+i)))
		f.tree.Add(Element{Path: handle})
		descs[i] = Item{Index: i, Disabled: disabled, Handle: handle}
	}
	f.m.SetItems(descs)
	body, _ := f.tree.Get(testBody)
	f.m.Place(body)
}

func itemPath(i int) string {
	return JoinPath(testBody, "item-"+string(rune('0'+i)))
}

// drain runs cmd and any batched follow-ups, returning the produced messages.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// deliver feeds focus-return messages back into the machine, as the host does.
func (f *machineFixture) deliver(cmd tea.Cmd) {
	for _, msg := range drain(cmd) {
		if fr, ok := msg.(FocusReturnMsg); ok {
			f.deliver(f.m.HandleFocusReturn(fr))
		}
	}
}

func keyMsg(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func assertPaired(t *testing.T, calls []string, open bool) {
	t.Helper()
	for i := 1; i < len(calls); i++ {
		if calls[i] == calls[i-1] {
			t.Fatalf("expected alternating callbacks, got %v", calls)
		}
	}
	if len(calls) > 0 && calls[0] != "open" {
		t.Fatalf("expected first callback to be open, got %v", calls)
	}
	wantLast := "close"
	if open {
		wantLast = "open"
	}
	if len(calls) > 0 && calls[len(calls)-1] != wantLast {
		t.Fatalf("expected last callback %q, got %v", wantLast, calls)
	}
}

func TestMachineCallbacksArePaired(t *testing.T) {
	f := newFixture(t, nil)
	m := f.m

	m.Toggle()
	m.Open()
	m.SyncOpen(true)
	m.Close()
	m.Close()
	m.SyncOpen(false)
	m.ActivateTrigger(testTrigger, true)
	f.place(false)
	f.doc.Dispatch(Event{Kind: EventPointer, Target: "screen/top/other/trigger"})
	m.ActivateTrigger(testTrigger, false)
	f.focus.Focus(testTrigger)
	m.HandleKey(keyMsg(tea.KeyEsc))
	m.HandleKey(keyMsg(tea.KeyEsc))
	m.ActivateTrigger(testTrigger, true)

	assertPaired(t, f.calls, m.IsOpen())
	if len(f.calls) != 7 {
		t.Fatalf("expected 7 callbacks, got %v", f.calls)
	}
}

func TestMachineClickOpenOutsideClickCloses(t *testing.T) {
	f := newFixture(t, nil)
	m := f.m
	f.focus.Focus("screen/footer")

	m.ActivateTrigger(testTrigger, true)
	if !m.IsOpen() || !m.State().Click {
		t.Fatalf("expected click-opened popup, got %+v", m.State())
	}
	if f.clicked != 1 {
		t.Fatalf("expected onClick once, got %d", f.clicked)
	}
	f.place(false, false)
	if f.doc.Len(EventPointer) != 1 || f.doc.Len(EventFocusIn) != 1 {
		t.Fatalf("expected listeners bound after place")
	}

	cmd := f.doc.Dispatch(Event{Kind: EventPointer, Target: "screen/body/text"})
	f.deliver(cmd)
	if m.IsOpen() {
		t.Fatalf("expected outside click to close")
	}
	if f.focus.Current() != "screen/footer" {
		t.Fatalf("expected focus untouched, got %q", f.focus.Current())
	}
	if f.doc.Len(EventPointer) != 0 || f.doc.Len(EventFocusIn) != 0 {
		t.Fatalf("expected listeners released on close")
	}
	if m.Body() != nil {
		t.Fatalf("expected body cleared on close")
	}
}

func TestMachineInsideClickKeepsOpen(t *testing.T) {
	f := newFixture(t, nil)
	m := f.m
	m.ActivateTrigger(testTrigger, true)
	f.place(false)

	f.doc.Dispatch(Event{Kind: EventPointer, Target: itemPath(0) + "/label"})
	if !m.IsOpen() {
		t.Fatalf("expected click inside the popup to keep it open")
	}
	m.ActivateTrigger(itemPath(0)+"/label", true)
	if !m.IsOpen() {
		t.Fatalf("expected activation bubbling from the popup to be ignored")
	}
}

func TestMachineTriggerClickWhileOpenCloses(t *testing.T) {
	f := newFixture(t, nil)
	m := f.m
	m.ActivateTrigger(testTrigger, true)
	f.place(false)

	f.doc.Dispatch(Event{Kind: EventPointer, Target: testTrigger})
	if !m.IsOpen() {
		t.Fatalf("expected own trigger to be ignored by the outside detector")
	}
	m.ActivateTrigger(testTrigger, true)
	if m.IsOpen() {
		t.Fatalf("expected second trigger click to close")
	}
	assertPaired(t, f.calls, false)
}

func TestMachineKeyboardOpenAndRoving(t *testing.T) {
	f := newFixture(t, nil)
	m := f.m
	f.focus.Focus(testTrigger)

	handled, _ := m.HandleKey(keyMsg(tea.KeyEnter))
	if !handled || !m.IsOpen() || m.State().Click {
		t.Fatalf("expected keyboard open, got handled=%v state=%+v", handled, m.State())
	}
	f.place(false, true, false)
	m.FocusIndex(0)

	steps := []struct {
		key  tea.KeyType
		want int
	}{
		{tea.KeyDown, 2},
		{tea.KeyDown, 0},
		{tea.KeyUp, 2},
		{tea.KeyRight, 0},
		{tea.KeyLeft, 2},
	}
	for _, step := range steps {
		handled, cmd := m.HandleKey(keyMsg(step.key))
		f.deliver(cmd)
		if !handled {
			t.Fatalf("expected %v to be consumed", step.key)
		}
		if got := m.FocusedIndex(); got != step.want {
			t.Fatalf("after %v expected item %d, got %d", step.key, step.want, got)
		}
	}
	if !m.IsOpen() {
		t.Fatalf("expected roving inside the popup to keep it open")
	}
}

func TestMachineArrowFromTriggerFocusesEnds(t *testing.T) {
	f := newFixture(t, nil)
	m := f.m
	f.focus.Focus(testTrigger)
	m.HandleKey(keyMsg(tea.KeyEnter))
	f.place(true, false, false)

	f.deliver(mustHandle(t, m, tea.KeyDown))
	if got := m.FocusedIndex(); got != 1 {
		t.Fatalf("expected first enabled item, got %d", got)
	}

	f.focus.Focus(testTrigger)
	f.deliver(mustHandle(t, m, tea.KeyUp))
	if got := m.FocusedIndex(); got != 2 {
		t.Fatalf("expected last enabled item, got %d", got)
	}
}

func mustHandle(t *testing.T, m *Machine, kt tea.KeyType) tea.Cmd {
	t.Helper()
	handled, cmd := m.HandleKey(keyMsg(kt))
	if !handled {
		t.Fatalf("expected %v to be handled", kt)
	}
	return cmd
}

func TestMachineEscapeReturnsFocus(t *testing.T) {
	f := newFixture(t, nil)
	m := f.m
	m.ActivateTrigger(testTrigger, true)
	f.place(false, false)
	m.FocusIndex(1)

	cmd := mustHandle(t, m, tea.KeyEsc)
	if m.IsOpen() {
		t.Fatalf("expected escape to close")
	}
	if f.focus.Current() != itemPath(1) {
		t.Fatalf("expected focus to move only on the next tick, got %q", f.focus.Current())
	}
	f.deliver(cmd)
	if !f.focus.IsFocused(testTrigger) {
		t.Fatalf("expected trigger focused after escape, got %q", f.focus.Current())
	}
}

func TestMachineFocusReturnDroppedWhenFocusMoved(t *testing.T) {
	f := newFixture(t, nil)
	m := f.m
	m.ActivateTrigger(testTrigger, true)
	f.place(false, false)
	m.FocusIndex(0)

	cmd := mustHandle(t, m, tea.KeyEsc)
	f.focus.Focus("screen/top/other/trigger")
	f.deliver(cmd)
	if got := f.focus.Current(); got != "screen/top/other/trigger" {
		t.Fatalf("expected focus to stay where it moved, got %q", got)
	}
}

func TestMachineEscapeWhileClosedPropagates(t *testing.T) {
	f := newFixture(t, nil)
	handled, cmd := f.m.HandleKey(keyMsg(tea.KeyEsc))
	if handled || cmd != nil {
		t.Fatalf("expected escape on a closed popup to propagate")
	}
}

func TestMachineUnmountCancelsFocusReturn(t *testing.T) {
	f := newFixture(t, nil)
	m := f.m
	m.ActivateTrigger(testTrigger, true)
	f.place(false)
	m.FocusIndex(0)

	cmd := mustHandle(t, m, tea.KeyEsc)
	m.Unmount()
	f.deliver(cmd)
	if f.focus.IsFocused(testTrigger) {
		t.Fatalf("expected cancelled focus return after unmount")
	}
	if f.doc.Len(EventPointer) != 0 || f.doc.Len(EventFocusIn) != 0 {
		t.Fatalf("expected no listeners after unmount")
	}
}

func TestMachineStaleFocusReturnIgnoredAfterReopen(t *testing.T) {
	f := newFixture(t, nil)
	m := f.m
	m.ActivateTrigger(testTrigger, true)
	f.place(false)
	m.FocusIndex(0)

	cmd := mustHandle(t, m, tea.KeyEsc)
	m.ActivateTrigger(testTrigger, true)
	f.place(false)
	m.FocusIndex(0)
	f.deliver(cmd)
	if !m.IsOpen() || f.focus.Current() != itemPath(0) {
		t.Fatalf("expected stale focus return to be dropped, focus=%q", f.focus.Current())
	}
}

func TestMachineFocusLeavingKeyboardPopupRefocusesTrigger(t *testing.T) {
	f := newFixture(t, nil)
	m := f.m
	f.focus.Focus(testTrigger)
	m.HandleKey(keyMsg(tea.KeyEnter))
	f.place(false)
	m.FocusIndex(0)

	f.deliver(f.focus.Focus("screen/footer"))
	if m.IsOpen() {
		t.Fatalf("expected focus leaving the popup to close it")
	}
	if !f.focus.IsFocused(testTrigger) {
		t.Fatalf("expected keyboard-opened popup to hand focus back, got %q", f.focus.Current())
	}
}

func TestMachineFocusLeavingClickPopupKeepsFocus(t *testing.T) {
	f := newFixture(t, nil)
	m := f.m
	m.ActivateTrigger(testTrigger, true)
	f.place(false)

	f.deliver(f.focus.Focus("screen/footer"))
	if m.IsOpen() {
		t.Fatalf("expected focus leaving the popup to close it")
	}
	if f.focus.Current() != "screen/footer" {
		t.Fatalf("expected focus to stay where it went, got %q", f.focus.Current())
	}
}

func TestMachineAlsoAllowKeepsOpen(t *testing.T) {
	f := newFixture(t, func(o *Options) {
		o.AlsoAllow = []string{"[" + AttrTrigger + "]"}
	})
	m := f.m
	m.ActivateTrigger(testTrigger, true)
	f.place(false)

	f.focus.Focus("screen/top/other/trigger")
	if !m.IsOpen() {
		t.Fatalf("expected allowed focus target to keep the popup open")
	}
	f.focus.Focus(testTrigger)
	if !m.IsOpen() {
		t.Fatalf("expected own trigger focus to keep the popup open")
	}
}

func TestMachineFocusTrap(t *testing.T) {
	f := newFixture(t, nil)
	m := f.m
	m.ActivateTrigger(testTrigger, true)
	f.place(false, false)
	m.FocusIndex(1)

	mustHandle(t, m, tea.KeyTab)
	if got := m.FocusedIndex(); got != 0 {
		t.Fatalf("expected tab to wrap to 0, got %d", got)
	}
	mustHandle(t, m, tea.KeyShiftTab)
	if got := m.FocusedIndex(); got != 1 {
		t.Fatalf("expected shift+tab to wrap to 1, got %d", got)
	}

	open := newFixture(t, func(o *Options) { o.FocusTrap = false })
	open.m.ActivateTrigger(testTrigger, true)
	open.place(false)
	if handled, _ := open.m.HandleKey(keyMsg(tea.KeyTab)); handled {
		t.Fatalf("expected tab to propagate without a focus trap")
	}
}

func TestMachineCustomArrowDirection(t *testing.T) {
	f := newFixture(t, func(o *Options) {
		o.ArrowDirection = func(msg tea.KeyMsg) int {
			if msg.Type == tea.KeyLeft || msg.Type == tea.KeyRight {
				return 0
			}
			return DefaultKeyMap().ArrowDirection(msg)
		}
	})
	m := f.m
	m.ActivateTrigger(testTrigger, true)
	f.place(false, false)
	m.FocusIndex(0)

	mustHandle(t, m, tea.KeyRight)
	if got := m.FocusedIndex(); got != 0 {
		t.Fatalf("expected zero direction to leave focus, got %d", got)
	}
	mustHandle(t, m, tea.KeyDown)
	if got := m.FocusedIndex(); got != 1 {
		t.Fatalf("expected down to move, got %d", got)
	}
}

func TestMachineSyncOpenReactsToChangesOnly(t *testing.T) {
	f := newFixture(t, nil)
	m := f.m

	m.SyncOpen(false)
	if m.IsOpen() || len(f.calls) != 0 {
		t.Fatalf("expected closed input to be a no-op, calls=%v", f.calls)
	}
	m.SyncOpen(true)
	if !m.IsOpen() {
		t.Fatalf("expected external open")
	}
	m.Toggle()
	m.SyncOpen(true)
	if m.IsOpen() {
		t.Fatalf("expected unchanged external flag to keep the internal close")
	}
	m.SyncOpen(false)
	m.SyncOpen(true)
	if !m.IsOpen() {
		t.Fatalf("expected flag change to reopen")
	}
	assertPaired(t, f.calls, true)
}

func TestMachineInitiallyOpenAndMountGate(t *testing.T) {
	doc := NewDocument()
	focus := NewFocus(doc)
	opens := 0
	opts := DefaultOptions()
	opts.InitiallyOpen = true
	opts.OnOpen = func() { opens++ }
	m := NewMachine(doc, focus, sampleTree(), opts)

	if m.ShouldRender() || m.State().HasMountedTrigger {
		t.Fatalf("expected nothing to render before the trigger mounts")
	}
	m.MountTrigger(testTrigger)
	if !m.IsOpen() || !m.ShouldRender() || opens != 1 {
		t.Fatalf("expected initially open popup after mount, state=%+v opens=%d", m.State(), opens)
	}
	m.MountTrigger(testTrigger)
	if opens != 1 {
		t.Fatalf("expected remount not to reopen, opens=%d", opens)
	}

	late := NewMachine(doc, focus, sampleTree(), DefaultOptions())
	late.Open()
	if !late.IsOpen() || late.ShouldRender() {
		t.Fatalf("expected open but gated popup before mount")
	}
	late.MountTrigger(testTrigger)
	if !late.ShouldRender() {
		t.Fatalf("expected gate to open on mount")
	}
}

func TestMachineAccessibilityAttributes(t *testing.T) {
	f := newFixture(t, func(o *Options) { o.Direction = DirectionTop })
	m := f.m

	closed := map[string]string{
		"aria-haspopup": "true",
		"aria-expanded": "false",
		AttrTrigger:     "",
	}
	if diff := cmp.Diff(closed, m.TriggerAttrs()); diff != "" {
		t.Fatalf("closed trigger attrs mismatch (-want +got):\n%s", diff)
	}

	m.Open()
	open := map[string]string{
		"aria-haspopup": "true",
		"aria-expanded": "true",
		"aria-controls": m.ID(),
		AttrTrigger:     "",
	}
	if diff := cmp.Diff(open, m.TriggerAttrs()); diff != "" {
		t.Fatalf("open trigger attrs mismatch (-want +got):\n%s", diff)
	}
	body := map[string]string{"id": m.ID(), "role": "menu", AttrDirection: "top"}
	if diff := cmp.Diff(body, m.BodyAttrs()); diff != "" {
		t.Fatalf("body attrs mismatch (-want +got):\n%s", diff)
	}
}

func TestMachineIDsAreUnique(t *testing.T) {
	doc := NewDocument()
	a := NewMachine(doc, NewFocus(doc), NewElements(), DefaultOptions())
	b := NewMachine(doc, NewFocus(doc), NewElements(), DefaultOptions())
	if a.ID() == b.ID() {
		t.Fatalf("expected distinct ids, got %q twice", a.ID())
	}
}

func TestMachineTargetResolution(t *testing.T) {
	f := newFixture(t, nil)
	if got := f.m.Target(); got != "screen/top/actions" {
		t.Fatalf("expected closest container, got %q", got)
	}

	explicit := newFixture(t, func(o *Options) { o.Target = "screen" })
	if got := explicit.m.Target(); got != "screen" {
		t.Fatalf("expected explicit target, got %q", got)
	}

	bare := NewMachine(f.doc, f.focus, f.tree, DefaultOptions())
	bare.MountTrigger("screen/top/other/trigger")
	if got := bare.Target(); got != "" {
		t.Fatalf("expected screen fallback, got %q", got)
	}
}

func TestMachineActivateItem(t *testing.T) {
	f := newFixture(t, nil)
	m := f.m
	m.ActivateTrigger(testTrigger, true)
	f.place(false, true)

	m.ActivateItem(1)
	if !m.IsOpen() {
		t.Fatalf("expected disabled item not to close the popup")
	}
	m.ActivateItem(0)
	if m.IsOpen() {
		t.Fatalf("expected item activation to close")
	}
	f.deliver(m.ReturnFocus())
	if !f.focus.IsFocused(testTrigger) {
		t.Fatalf("expected explicit focus return, got %q", f.focus.Current())
	}
}

func TestMachinePlaceIgnoredWhileClosed(t *testing.T) {
	f := newFixture(t, nil)
	f.m.Place(Element{Path: testBody})
	if f.m.Body() != nil || f.doc.Len(EventPointer) != 0 {
		t.Fatalf("expected place on a closed popup to be ignored")
	}
}
