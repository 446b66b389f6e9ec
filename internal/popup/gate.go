package popup

// Gate keeps the popup from rendering until its trigger exists. Once open it
// stays open for the lifetime of the owner.
type Gate struct {
	ready bool
}

// Confirm records whether the trigger is present and reports readiness.
func (g *Gate) Confirm(triggerPresent bool) bool {
	if triggerPresent {
		g.ready = true
	}
	return g.ready
}

func (g *Gate) Ready() bool {
	return g.ready
}
