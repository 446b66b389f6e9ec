package popup

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestDocumentReleaseIsIdempotent(t *testing.T) {
	doc := NewDocument()
	calls := 0
	h := doc.On(EventPointer, func(Event) tea.Cmd { calls++; return nil })
	doc.Dispatch(Event{Kind: EventPointer})
	doc.Dispatch(Event{Kind: EventFocusIn})
	if calls != 1 {
		t.Fatalf("expected 1 pointer call, got %d", calls)
	}
	h.Release()
	h.Release()
	var never *Release
	never.Release()
	doc.Dispatch(Event{Kind: EventPointer})
	if calls != 1 {
		t.Fatalf("expected no calls after release, got %d", calls)
	}
	if doc.Len(EventPointer) != 0 {
		t.Fatalf("expected no listeners, got %d", doc.Len(EventPointer))
	}
}

func TestDocumentSkipsListenersReleasedMidDispatch(t *testing.T) {
	doc := NewDocument()
	var second *Release
	secondCalls := 0
	doc.On(EventFocusIn, func(Event) tea.Cmd {
		second.Release()
		return nil
	})
	second = doc.On(EventFocusIn, func(Event) tea.Cmd { secondCalls++; return nil })
	doc.Dispatch(Event{Kind: EventFocusIn, Target: "x"})
	if secondCalls != 0 {
		t.Fatalf("expected released listener to be skipped, got %d calls", secondCalls)
	}
}

func TestFocusDispatchesFocusIn(t *testing.T) {
	doc := NewDocument()
	focus := NewFocus(doc)
	var targets []string
	doc.On(EventFocusIn, func(ev Event) tea.Cmd { targets = append(targets, ev.Target); return nil })

	focus.Focus("a")
	focus.Focus("a")
	focus.Focus("")
	focus.Focus("b/c")
	if len(targets) != 2 || targets[0] != "a" || targets[1] != "b/c" {
		t.Fatalf("unexpected focus-in targets %v", targets)
	}
	if !focus.Within("b") || focus.Within("a") {
		t.Fatalf("unexpected Within result for %q", focus.Current())
	}
	focus.Blur()
	if focus.Current() != "" || focus.IsFocused("b/c") {
		t.Fatalf("expected focus cleared, got %q", focus.Current())
	}
}

func TestGateIsMonotonic(t *testing.T) {
	var g Gate
	if g.Confirm(false) || g.Ready() {
		t.Fatalf("expected gate closed before trigger mount")
	}
	if !g.Confirm(true) {
		t.Fatalf("expected gate to open once trigger is present")
	}
	if !g.Confirm(false) {
		t.Fatalf("expected gate to stay open")
	}
}
