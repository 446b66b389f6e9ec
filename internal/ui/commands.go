package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/overflow-menu/internal/logging/events"
	"github.com/atomicstack/overflow-menu/internal/menu"
)

func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(menu.ActionResult)
	if !ok {
		return nil
	}
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		m.forceClearInfo()
		events.Action.Error(result.Err)
		return nil
	}
	m.errMsg = ""
	if result.Toggle != "" {
		if o := m.menuByID(result.Toggle); o != nil {
			o.external = !o.machine.IsOpen()
		}
	}
	if result.Info != "" {
		m.setInfo(result.Info)
	} else {
		m.clearInfo()
	}
	events.Action.Success(result.Info)
	if result.Quit {
		return m.quit()
	}
	return nil
}
