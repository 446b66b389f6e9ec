package events

import "github.com/atomicstack/overflow-menu/internal/logging"

type UITracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (UITracer) ItemActivate(menuID, itemID, label string) {
	logging.Trace("menu.activate", map[string]interface{}{
		"menu":  menuID,
		"item":  itemID,
		"label": label,
	})
}

func (UITracer) Pointer(x, y int, target string) {
	logging.Trace("ui.pointer", map[string]interface{}{"x": x, "y": y, "target": target})
}

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}

func (UITracer) TypeAhead(menuID, query string, index int) {
	logging.Trace("menu.type-ahead", map[string]interface{}{"menu": menuID, "query": query, "index": index})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) NoOp(id, label string) {
	logging.Trace("command.noop", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
