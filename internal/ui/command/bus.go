package command

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/overflow-menu/internal/logging/events"
	"github.com/atomicstack/overflow-menu/internal/menu"
)

// Request encapsulates an item activation.
type Request struct {
	Menu    string
	Index   int
	Item    menu.Item
	Handler menu.Action
}

// ID identifies the request in trace output.
func (r Request) ID() string {
	return r.Menu + ":" + r.Item.ID
}

// Bus coordinates the execution of menu actions.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute wraps a menu action into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID(), req.Item.Label)
	ctx := menu.Context{Menu: req.Menu, Index: req.Index}
	return func() tea.Msg {
		if req.Handler == nil {
			events.Command.Skip(req.ID(), req.Item.Label)
			return nil
		}
		cmd := req.Handler(ctx, req.Item)
		if cmd == nil {
			events.Command.NoOp(req.ID(), req.Item.Label)
			return nil
		}
		msg := cmd()
		events.Command.Result(req.ID(), req.Item.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}
