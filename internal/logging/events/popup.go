package events

import "github.com/atomicstack/overflow-menu/internal/logging"

type PopupTracer struct{}

type FocusTracer struct{}

var (
	Popup = PopupTracer{}
	Focus = FocusTracer{}
)

func (PopupTracer) Open(id string, byClick bool) {
	logging.Trace("popup.open", map[string]interface{}{"menu": id, "click": byClick})
}

func (PopupTracer) Close(id string, byClick bool) {
	logging.Trace("popup.close", map[string]interface{}{"menu": id, "click": byClick})
}

func (PopupTracer) Mount(id, trigger string) {
	logging.Trace("popup.mount", map[string]interface{}{"menu": id, "trigger": trigger})
}

func (PopupTracer) Unmount(id string) {
	logging.Trace("popup.unmount", map[string]interface{}{"menu": id})
}

func (PopupTracer) Place(id string, x, y, width, height int) {
	logging.Trace("popup.place", map[string]interface{}{
		"menu":   id,
		"x":      x,
		"y":      y,
		"width":  width,
		"height": height,
	})
}

func (PopupTracer) Outside(id, kind, target string) {
	logging.Trace("popup.outside", map[string]interface{}{"menu": id, "kind": kind, "target": target})
}

func (PopupTracer) Rove(id string, from, to int) {
	logging.Trace("popup.rove", map[string]interface{}{"menu": id, "from": from, "to": to})
}

func (PopupTracer) FocusReturn(id, trigger string) {
	logging.Trace("popup.focus-return", map[string]interface{}{"menu": id, "trigger": trigger})
}

func (PopupTracer) FocusReturnCancelled(id string) {
	logging.Trace("popup.focus-return-cancelled", map[string]interface{}{"menu": id})
}

// Warn records development diagnostics both in the log and the trace stream.
func (PopupTracer) Warn(message string) {
	logging.Warn(message)
	logging.Trace("popup.warn", map[string]interface{}{"message": message})
}

func (FocusTracer) In(path string) {
	logging.Trace("focus.in", map[string]interface{}{"target": path})
}

func (FocusTracer) Blur(path string) {
	logging.Trace("focus.blur", map[string]interface{}{"target": path})
}
