package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/overflow-menu/internal/menu"
)

const (
	appTitle = "overflow-menu"
	hintText = "tab/←/→ focus a trigger, enter opens, click anywhere outside to close"
)

type styledLine struct {
	text  string
	style *lipgloss.Style
	raw   bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model.
func (m *Model) View() string {
	w, h := m.screenSize()
	bottom, status := m.rows(h)

	lines := make([]styledLine, h)
	lines[headerRow] = styledLine{text: appTitle, style: styles.Header}
	lines[topBarRow] = styledLine{text: m.barLine(menu.BarTop, w), raw: true}
	if topBarRow+1 < bottom {
		lines[topBarRow+1] = styledLine{text: hintText, style: styles.Hint}
	}
	if bottom < h {
		lines[bottom] = styledLine{text: m.barLine(menu.BarBottom, w), raw: true}
	}
	if status < h {
		switch {
		case m.errMsg != "":
			lines[status] = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
		case m.currentInfo() != "":
			lines[status] = styledLine{text: m.infoMsg, style: styles.Info}
		}
	}
	if m.showFooter && h-1 > status {
		lines[h-1] = styledLine{text: m.help.View(m.keys), raw: true}
	}

	out := renderLines(applyWidth(lines, w))
	for _, o := range m.menus {
		if !o.placed || !o.machine.ShouldRender() {
			continue
		}
		out = overlay(out, m.renderMenu(o), o.bodyRect.X, o.bodyRect.Y, w)
	}
	return out
}

// barLine renders the triggers of one bar at their laid out columns.
func (m *Model) barLine(bar menu.Bar, width int) string {
	onBar := make([]*overflow, 0, len(m.menus))
	for _, o := range m.menus {
		if o.def.BarOrDefault() == bar {
			onBar = append(onBar, o)
		}
	}
	sort.SliceStable(onBar, func(i, j int) bool { return onBar[i].triggerRect.X < onBar[j].triggerRect.X })

	var b strings.Builder
	col := 0
	for _, o := range onBar {
		if o.triggerRect.X > col {
			b.WriteString(strings.Repeat(" ", o.triggerRect.X-col))
			col = o.triggerRect.X
		}
		style := styles.Trigger
		switch {
		case m.focus.IsFocused(o.trigger):
			style = styles.TriggerFocused
		case o.machine.IsOpen():
			style = styles.TriggerOpen
		}
		text := o.triggerText()
		if style != nil {
			text = style.Render(text)
		}
		b.WriteString(text)
		col += o.triggerRect.W
	}
	if col < width {
		b.WriteString(strings.Repeat(" ", width-col))
	}
	return b.String()
}

// renderMenu draws the popup body as bordered rows.
func (m *Model) renderMenu(o *overflow) string {
	inner := o.bodyRect.W - 2
	pad := o.def.Size.Padding()
	border := func(s string) string {
		if styles.MenuBorder == nil {
			return s
		}
		return styles.MenuBorder.Render(s)
	}

	lines := o.itemLines()
	rows := make([]string, 0, len(o.rows)+2)
	rows = append(rows, border("╭"+strings.Repeat("─", inner)+"╮"))
	for _, idx := range o.rows {
		if idx < 0 {
			rule := strings.Repeat("─", inner)
			if styles.Divider != nil {
				rule = styles.Divider.Render(rule)
			}
			rows = append(rows, border("│")+rule+border("│"))
			continue
		}
		item := o.def.Items[idx]
		label := truncate.StringWithTail(lines[idx], uint(inner-2*pad), "…")
		text := strings.Repeat(" ", pad) + label
		if n := lipgloss.Width(text); n < inner {
			text += strings.Repeat(" ", inner-n)
		}
		style := styles.Item
		switch {
		case item.Disabled:
			style = styles.ItemDisabled
		case idx < len(o.itemPaths) && m.focus.IsFocused(o.itemPaths[idx]):
			style = styles.ItemFocused
		case item.Danger:
			style = styles.ItemDanger
		}
		if style != nil {
			text = style.Render(text)
		}
		rows = append(rows, border("│")+text+border("│"))
	}
	rows = append(rows, border("╰"+strings.Repeat("─", inner)+"╯"))
	return strings.Join(rows, "\n")
}

// overlay draws fg on top of bg with its top-left corner at (x, y).
func overlay(bg, fg string, x, y, width int) string {
	bgLines := strings.Split(bg, "\n")
	fgLines := strings.Split(fg, "\n")
	for i, fgLine := range fgLines {
		row := y + i
		if row < 0 || row >= len(bgLines) || x < 0 || x >= width {
			continue
		}
		bgLine := bgLines[row]
		if n := ansi.StringWidth(bgLine); n < width {
			bgLine += strings.Repeat(" ", width-n)
		}
		fgW := ansi.StringWidth(fgLine)
		if x+fgW > width {
			fgLine = ansi.Cut(fgLine, 0, width-x)
			fgW = width - x
		}
		left := ansi.Cut(bgLine, 0, x)
		right := ansi.Cut(bgLine, x+fgW, width)
		bgLines[row] = left + fgLine + right
	}
	return strings.Join(bgLines, "\n")
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if lipgloss.Width(text) > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{text: text, style: line.style, raw: line.raw}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if !line.raw && line.style != nil && text != "" {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
