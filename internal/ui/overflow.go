package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/atomicstack/overflow-menu/internal/format/table"
	"github.com/atomicstack/overflow-menu/internal/menu"
	"github.com/atomicstack/overflow-menu/internal/popup"
)

const (
	glyphClosed = "⋮"
	glyphDown   = "▾"
	glyphUp     = "▴"
)

// overflow binds one menu definition to its interaction machine and keeps
// the geometry of the last layout pass.
type overflow struct {
	def      menu.Definition
	machine  *popup.Machine
	external bool

	wrapper     string
	trigger     string
	triggerRect Rect

	body      string
	bodyRect  Rect
	rows      []int
	itemPaths []string
	placed    bool
}

func (m *Model) newOverflow(def menu.Definition, external bool) *overflow {
	o := &overflow{def: def, external: external}
	opts := def.Options()
	opts.InitiallyOpen = external
	opts.OnOpen = func() { o.external = true }
	opts.OnClose = func() {
		o.external = false
		o.placed = false
	}
	opts.OnClick = func() { m.errMsg = "" }
	o.machine = popup.NewMachine(m.doc, m.focus, m.tree, opts)
	return o
}

// triggerText is the rendered trigger label; the glyph follows the open
// state and direction.
func (o *overflow) triggerText() string {
	glyph := glyphClosed
	if o.machine.IsOpen() {
		glyph = glyphDown
		if o.machine.Options().Direction == popup.DirectionTop {
			glyph = glyphUp
		}
	}
	return " " + glyph + " " + o.def.Label + " "
}

func (o *overflow) triggerWidth() int {
	return lipgloss.Width(o.triggerText())
}

// menuRows lists item indices in display order; -1 marks a divider row.
func (o *overflow) menuRows() []int {
	rows := make([]int, 0, len(o.def.Items)+2)
	for i, item := range o.def.Items {
		if item.Divider && i > 0 {
			rows = append(rows, -1)
		}
		rows = append(rows, i)
	}
	return rows
}

// itemLines lays out each item's label and shortcut as aligned columns,
// indexed like def.Items.
func (o *overflow) itemLines() []string {
	rows := make([][]string, len(o.def.Items))
	for i, item := range o.def.Items {
		rows[i] = []string{item.Label, item.Shortcut}
	}
	return table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignRight}, 2)
}

func (o *overflow) innerWidth() int {
	return table.Width(o.itemLines()) + 2*o.def.Size.Padding()
}

// shortcutItem returns the enabled item bound to keyName, or -1.
func (o *overflow) shortcutItem(keyName string) int {
	for i, item := range o.def.Items {
		if item.Shortcut != "" && !item.Disabled && item.Shortcut == keyName {
			return i
		}
	}
	return -1
}

// itemAt returns the index of the item whose element contains target, or -1.
func (o *overflow) itemAt(target string) int {
	for i, p := range o.itemPaths {
		if p != "" && (popup.Element{Path: p}).Contains(target) {
			return i
		}
	}
	return -1
}

// owns reports whether path lies on the trigger wrapper or inside the body.
func (o *overflow) owns(path string) bool {
	if (popup.Element{Path: o.wrapper}).Contains(path) {
		return true
	}
	return o.body != "" && (popup.Element{Path: o.body}).Contains(path)
}
