package ui

import (
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atomicstack/overflow-menu/internal/menu"
	"github.com/atomicstack/overflow-menu/internal/popup"
)

const (
	screenPath    = "screen"
	topBarPath    = "screen/top"
	mainPath      = "screen/main"
	bottomBarPath = "screen/bottom"

	headerRow = 0
	topBarRow = 1
	barGap    = 1
)

// rows returns the bottom bar and status line rows for a screen of height h.
func (m *Model) rows(h int) (bottomBar, status int) {
	status = h - 1
	if m.showFooter {
		status--
	}
	bottomBar = status - 1
	if bottomBar <= topBarRow {
		bottomBar = topBarRow + 1
	}
	if status <= bottomBar {
		status = bottomBar + 1
	}
	return bottomBar, status
}

// layout rebuilds the element tree and hit map for the current state. Bars
// and triggers come first so a popup mounted in this pass can measure them.
func (m *Model) layout() tea.Cmd {
	w, h := m.screenSize()
	m.tree.Reset()
	m.hits.Clear()
	for k := range m.rects {
		delete(m.rects, k)
	}

	bottom, _ := m.rows(h)
	m.addElement(popup.Element{Path: screenPath, Attrs: map[string]string{popup.AttrContainer: ""}}, Rect{X: 0, Y: 0, W: w, H: h})
	m.addElement(popup.Element{Path: topBarPath, Attrs: map[string]string{"role": "toolbar"}}, Rect{X: 0, Y: topBarRow, W: w, H: 1})
	m.addElement(popup.Element{Path: mainPath, Attrs: map[string]string{popup.AttrContainer: ""}}, Rect{X: 0, Y: topBarRow + 1, W: w, H: bottom - topBarRow - 1})
	m.addElement(popup.Element{Path: bottomBarPath, Attrs: map[string]string{"role": "toolbar"}}, Rect{X: 0, Y: bottom, W: w, H: 1})

	cmds := make([]tea.Cmd, 0, len(m.menus))
	cmds = append(cmds, m.layoutBar(menu.BarTop, topBarPath, topBarRow, w)...)
	cmds = append(cmds, m.layoutBar(menu.BarBottom, bottomBarPath, bottom, w)...)
	m.sortTriggers()

	for _, o := range m.menus {
		if cmd := m.placeMenu(o); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// layoutBar positions the triggers of one bar. Flipped menus are aligned to
// the right edge so their popups open towards the screen.
func (m *Model) layoutBar(bar menu.Bar, barPath string, row, width int) []tea.Cmd {
	var cmds []tea.Cmd
	left := barGap
	right := width - barGap
	for _, o := range m.menus {
		if o.def.BarOrDefault() != bar {
			continue
		}
		tw := o.triggerWidth()
		x := left
		if o.def.Flipped {
			right -= tw
			x = right
			right -= barGap
		} else {
			left += tw + barGap
		}
		o.wrapper = popup.JoinPath(barPath, o.def.ID)
		o.trigger = popup.JoinPath(o.wrapper, "trigger")
		o.triggerRect = Rect{X: x, Y: row, W: tw, H: 1}

		attrs := o.machine.TriggerAttrs()
		if o.def.Description != "" {
			attrs["aria-label"] = o.def.Description
		}
		m.addElement(popup.Element{Path: o.wrapper}, o.triggerRect)
		m.addElement(popup.Element{Path: o.trigger, Attrs: attrs}, o.triggerRect)
		labelX := x + lipgloss.Width(" "+glyphClosed+" ")
		m.hits.AddRect(popup.JoinPath(o.trigger, "label"), labelX, row, lipgloss.Width(o.def.Label), 1)

		if cmd := o.machine.MountTrigger(o.trigger); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

func (m *Model) sortTriggers() {
	m.triggerOrder = append(m.triggerOrder[:0], m.menus...)
	sort.SliceStable(m.triggerOrder, func(i, j int) bool {
		a, b := m.triggerOrder[i].triggerRect, m.triggerOrder[j].triggerRect
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
}

func (m *Model) addElement(el popup.Element, r Rect) {
	m.tree.Add(el)
	m.rects[el.Path] = r
	m.hits.Add(el.Path, r)
}
