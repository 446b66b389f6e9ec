package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atomicstack/overflow-menu/internal/logging/events"
	"github.com/atomicstack/overflow-menu/internal/popup"
)

// placeMenu is the placement primitive: it measures the popup, positions it
// relative to the trigger, registers its elements and, on the first pass of
// an open cycle, hands the body to the machine and moves focus into it.
func (m *Model) placeMenu(o *overflow) tea.Cmd {
	if !o.machine.ShouldRender() {
		if o.placed {
			o.machine.Unplace()
			o.placed = false
		}
		o.body = ""
		o.rows = nil
		o.itemPaths = nil
		return nil
	}

	opts := o.machine.Options()
	rows := o.menuRows()
	inner := o.innerWidth()
	w, h := inner+2, len(rows)+2

	off := opts.ActiveOffset()(w, h, opts.Direction, opts.Flipped, o.triggerRect.W)
	x := o.triggerRect.X + o.triggerRect.W/2 - w/2 + off.Left
	var y int
	switch opts.Direction {
	case popup.DirectionTop:
		y = o.triggerRect.Y - h - off.Top
	default:
		y = o.triggerRect.Y + o.triggerRect.H + off.Top
	}

	mount := o.machine.Target()
	container, ok := m.rects[mount]
	if !ok {
		mount = screenPath
		container = m.rects[screenPath]
	}
	rect := clampInto(Rect{X: x, Y: y, W: w, H: h}, container)

	o.body = popup.JoinPath(mount, o.machine.ID())
	o.bodyRect = rect
	o.rows = rows
	m.addElement(popup.Element{Path: o.body, Attrs: o.machine.BodyAttrs()}, rect)

	pad := o.def.Size.Padding()
	items := make([]popup.Item, len(o.def.Items))
	o.itemPaths = make([]string, len(o.def.Items))
	for row, idx := range rows {
		ry := rect.Y + 1 + row
		if idx < 0 {
			m.addElement(popup.Element{Path: popup.JoinPath(o.body, fmt.Sprintf("divider-%d", row)), Attrs: map[string]string{"role": "separator"}}, Rect{X: rect.X + 1, Y: ry, W: inner, H: 1})
			continue
		}
		item := o.def.Items[idx]
		path := popup.JoinPath(o.body, fmt.Sprintf("item-%d", idx))
		attrs := map[string]string{"role": "menuitem", "data-item-id": item.ID}
		if item.Disabled {
			attrs[popup.AttrDisabled] = "true"
		}
		if item.Primary {
			attrs[popup.AttrPrimaryFocus] = ""
		}
		if item.Danger {
			attrs["data-danger"] = ""
		}
		m.addElement(popup.Element{Path: path, Attrs: attrs}, Rect{X: rect.X + 1, Y: ry, W: inner, H: 1})
		labelW := lipgloss.Width(item.Label)
		if labelW > inner-2*pad {
			labelW = inner - 2*pad
		}
		m.hits.AddRect(popup.JoinPath(path, "label"), rect.X+1+pad, ry, labelW, 1)

		items[idx] = popup.Item{Index: idx, Disabled: item.Disabled, Handle: path}
		o.itemPaths[idx] = path
	}
	o.machine.SetItems(items)

	body, _ := m.tree.Get(o.body)
	first := !o.placed
	cmd := o.machine.Place(body)
	o.placed = true
	if !first {
		return cmd
	}
	events.Popup.Place(o.machine.ID(), rect.X, rect.Y, rect.W, rect.H)
	return tea.Batch(cmd, m.focusPrimary(o))
}

// focusPrimary focuses the first enabled element matching the primary focus
// selector, falling back to the first enabled item.
func (m *Model) focusPrimary(o *overflow) tea.Cmd {
	sel := o.machine.Options().SelectorPrimaryFocus
	for _, el := range m.tree.Within(o.body) {
		if _, disabled := el.Attr(popup.AttrDisabled); disabled {
			continue
		}
		if el.Matches(sel) {
			return m.focus.Focus(el.Path)
		}
	}
	for _, it := range o.machine.Items() {
		if !it.Disabled {
			return o.machine.FocusIndex(it.Index)
		}
	}
	return nil
}

// clampInto shifts r so it lies within c where possible; a popup larger than
// its container is pinned to the container's top-left corner.
func clampInto(r, c Rect) Rect {
	if r.X+r.W > c.X+c.W {
		r.X = c.X + c.W - r.W
	}
	if r.X < c.X {
		r.X = c.X
	}
	if r.Y+r.H > c.Y+c.H {
		r.Y = c.Y + c.H - r.H
	}
	if r.Y < c.Y {
		r.Y = c.Y
	}
	return r
}
