package menu

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Built-in action names.
const (
	ActionInfo   = "info"
	ActionQuit   = "quit"
	ActionNoop   = "noop"
	ActionToggle = "toggle"
)

// Registry maps action names to their execution logic.
type Registry struct {
	actions map[string]Action
}

// NewRegistry returns a registry holding the built-in actions.
func NewRegistry() *Registry {
	r := &Registry{actions: make(map[string]Action)}
	r.Register(ActionInfo, InfoAction)
	r.Register(ActionQuit, QuitAction)
	r.Register(ActionNoop, NoopAction)
	r.Register(ActionToggle, ToggleAction)
	return r
}

// Register adds or replaces an action.
func (r *Registry) Register(name string, action Action) {
	r.actions[name] = action
}

// Find locates an action by name.
func (r *Registry) Find(name string) (Action, bool) {
	action, ok := r.actions[name]
	return action, ok
}

// Names lists the registered actions in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.actions))
	for name := range r.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Check reports items referring to actions that are not registered.
func (r *Registry) Check(defs []Definition) error {
	var problems []string
	for _, d := range defs {
		for _, item := range d.Items {
			if _, ok := r.actions[item.ActionName()]; !ok {
				problems = append(problems, fmt.Sprintf("%s/%s: unknown action %q", d.ID, item.ID, item.ActionName()))
			}
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("menu actions: %s (known: %s)", strings.Join(problems, "; "), strings.Join(r.Names(), ","))
	}
	return nil
}

// Run resolves the item's action and returns the command executing it.
func (r *Registry) Run(ctx Context, item Item) tea.Cmd {
	action, ok := r.Find(item.ActionName())
	if !ok {
		err := fmt.Errorf("unknown action %q for %s", item.ActionName(), item.ID)
		return func() tea.Msg { return ActionResult{Menu: ctx.Menu, Err: err} }
	}
	return action(ctx, item)
}

// InfoAction reports the item's message on the status line.
func InfoAction(ctx Context, item Item) tea.Cmd {
	msg := item.Message
	if msg == "" {
		msg = fmt.Sprintf("%s: %s", ctx.Menu, item.Label)
	}
	return func() tea.Msg { return ActionResult{Menu: ctx.Menu, Info: msg} }
}

// QuitAction ends the program.
func QuitAction(ctx Context, _ Item) tea.Cmd {
	return func() tea.Msg { return ActionResult{Menu: ctx.Menu, Quit: true} }
}

// NoopAction does nothing.
func NoopAction(Context, Item) tea.Cmd {
	return nil
}

// ToggleAction flips the external open flag of the item's target menu.
func ToggleAction(ctx Context, item Item) tea.Cmd {
	if item.Target == "" {
		err := fmt.Errorf("toggle %s: no target menu", item.ID)
		return func() tea.Msg { return ActionResult{Menu: ctx.Menu, Err: err} }
	}
	target := item.Target
	return func() tea.Msg {
		return ActionResult{Menu: ctx.Menu, Toggle: target, Info: "toggled " + target}
	}
}
