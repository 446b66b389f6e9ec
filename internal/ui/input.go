package ui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/atomicstack/overflow-menu/internal/logging/events"
	"github.com/atomicstack/overflow-menu/internal/popup"
	"github.com/atomicstack/overflow-menu/internal/ui/command"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if key.Matches(keyMsg, m.keys.ForceQuit) {
		return m.quit()
	}
	if o := m.keyOwner(); o != nil {
		if handled, cmd := o.machine.HandleKey(keyMsg); handled {
			m.typeAhead = ""
			return cmd
		}
		if o.machine.IsOpen() {
			if key.Matches(keyMsg, o.machine.Options().Keys.Activate) {
				if idx := o.machine.FocusedIndex(); idx >= 0 {
					return m.activateItem(o, idx)
				}
			}
			if idx := o.shortcutItem(keyMsg.String()); idx >= 0 {
				return m.activateItem(o, idx)
			}
			if handled, cmd := m.handleTypeAhead(o, keyMsg); handled {
				return cmd
			}
		}
	}
	switch {
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(keyMsg, m.keys.Next):
		return m.cycleTrigger(1)
	case key.Matches(keyMsg, m.keys.Prev):
		return m.cycleTrigger(-1)
	case key.Matches(keyMsg, m.keys.Quit):
		if !m.anyOpen() {
			return m.quit()
		}
	}
	return nil
}

// keyOwner picks the menu a key press is delivered to: the one whose trigger
// or popup holds focus, else the most recently laid out open menu.
func (m *Model) keyOwner() *overflow {
	current := m.focus.Current()
	if current != "" {
		for _, o := range m.menus {
			if o.owns(current) {
				return o
			}
		}
	}
	for i := len(m.menus) - 1; i >= 0; i-- {
		if m.menus[i].machine.IsOpen() {
			return m.menus[i]
		}
	}
	return nil
}

// cycleTrigger moves focus along the triggers in screen order.
func (m *Model) cycleTrigger(dir int) tea.Cmd {
	if len(m.triggerOrder) == 0 {
		return nil
	}
	pos := -1
	for i, o := range m.triggerOrder {
		if o.owns(m.focus.Current()) {
			pos = i
			break
		}
	}
	switch {
	case pos < 0 && dir < 0:
		pos = len(m.triggerOrder) - 1
	case pos < 0:
		pos = 0
	default:
		pos = (pos + dir + len(m.triggerOrder)) % len(m.triggerOrder)
	}
	return m.focus.Focus(m.triggerOrder[pos].trigger)
}

// handleTypeAhead focuses the next enabled item whose label matches the
// letters typed so far. A query that stops matching restarts from the last
// letter.
func (m *Model) handleTypeAhead(o *overflow, msg tea.KeyMsg) (bool, tea.Cmd) {
	if msg.Type != tea.KeyRunes || msg.Alt || len(msg.Runes) == 0 {
		return false, nil
	}
	for _, r := range msg.Runes {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return false, nil
		}
	}
	typed := string(msg.Runes)
	query := m.typeAhead + typed
	idx := o.matchItem(query, o.machine.FocusedIndex())
	if idx < 0 && query != typed {
		query = typed
		idx = o.matchItem(query, o.machine.FocusedIndex())
	}
	m.typeAhead = query
	events.UI.TypeAhead(o.def.ID, query, idx)
	if idx < 0 {
		return true, nil
	}
	return true, o.machine.FocusIndex(idx)
}

// matchItem searches the enabled items after current, wrapping around.
// Prefix matches win over fuzzy ones.
func (o *overflow) matchItem(query string, current int) int {
	n := len(o.def.Items)
	if n == 0 || query == "" {
		return -1
	}
	lower := strings.ToLower(query)
	order := make([]int, 0, n)
	for step := 1; step <= n; step++ {
		order = append(order, ((current+step)%n+n)%n)
	}
	for _, i := range order {
		item := o.def.Items[i]
		if !item.Disabled && strings.HasPrefix(strings.ToLower(item.Label), lower) {
			return i
		}
	}
	for _, i := range order {
		item := o.def.Items[i]
		if !item.Disabled && fuzzy.MatchFold(query, item.Label) {
			return i
		}
	}
	return -1
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	if ev.Action != tea.MouseActionPress || ev.Button != tea.MouseButtonLeft {
		return nil
	}
	target := m.hits.Target(ev.X, ev.Y)
	events.UI.Pointer(ev.X, ev.Y, target)
	m.typeAhead = ""

	// Outside-click listeners run before any trigger or item handling.
	cmds := []tea.Cmd{m.doc.Dispatch(popup.Event{Kind: popup.EventPointer, Target: target})}

	for _, o := range m.menus {
		body := o.machine.Body()
		if body == nil || !body.Contains(target) {
			continue
		}
		if idx := o.itemAt(target); idx >= 0 && !o.def.Items[idx].Disabled {
			cmds = append(cmds, o.machine.FocusIndex(idx), m.activateItem(o, idx))
		}
		return tea.Batch(cmds...)
	}
	for _, o := range m.menus {
		if (popup.Element{Path: o.trigger}).Contains(target) {
			cmds = append(cmds, m.focus.Focus(o.trigger), o.machine.ActivateTrigger(target, true))
			return tea.Batch(cmds...)
		}
	}
	m.focus.Blur()
	return tea.Batch(cmds...)
}

// activateItem closes the popup, hands focus back to the trigger and then
// runs the item's action.
func (m *Model) activateItem(o *overflow, idx int) tea.Cmd {
	if idx < 0 || idx >= len(o.def.Items) {
		return nil
	}
	item := o.def.Items[idx]
	if item.Disabled {
		return nil
	}
	m.typeAhead = ""
	events.UI.ItemActivate(o.def.ID, item.ID, item.Label)
	o.machine.ActivateItem(idx)
	run := m.bus.Execute(command.Request{
		Menu:    o.def.ID,
		Index:   idx,
		Item:    item,
		Handler: m.registry.Run,
	})
	return tea.Sequence(o.machine.ReturnFocus(), run)
}

func (m *Model) handleFocusReturnMsg(msg tea.Msg) tea.Cmd {
	ret, ok := msg.(popup.FocusReturnMsg)
	if !ok {
		return nil
	}
	for _, o := range m.menus {
		if o.machine.ID() == ret.ID {
			return o.machine.HandleFocusReturn(ret)
		}
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	w, _ := m.screenSize()
	m.help.Width = w
	events.UI.Resize(resize.Width, resize.Height)
	return nil
}
