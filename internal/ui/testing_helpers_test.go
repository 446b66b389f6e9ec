package ui

import (
	"testing"

	"github.com/atomicstack/overflow-menu/internal/menu"
)

func newTestHarness(t *testing.T, mutate func(*Config)) *Harness {
	t.Helper()
	cfg := Config{Width: 80, Height: 24, Menus: menu.DefaultFile().Menus}
	if mutate != nil {
		mutate(&cfg)
	}
	return NewHarness(NewModel(cfg))
}

func mustMenu(t *testing.T, h *Harness, id string) *overflow {
	t.Helper()
	o := h.Model().menuByID(id)
	if o == nil {
		t.Fatalf("expected menu %q", id)
	}
	return o
}

func clickTrigger(h *Harness, o *overflow) {
	h.Click(o.triggerRect.X+1, o.triggerRect.Y)
}

func clickItem(h *Harness, o *overflow, idx int) {
	for row, i := range o.rows {
		if i == idx {
			h.Click(o.bodyRect.X+1+o.def.Size.Padding(), o.bodyRect.Y+1+row)
			return
		}
	}
}
