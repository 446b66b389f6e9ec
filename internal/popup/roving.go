package popup

// Item describes one menu entry for a single render pass. Index is
// positional, not an identity: it is only meaningful until the next render.
type Item struct {
	Index    int
	Disabled bool
	Handle   string
}

// EnabledIndices returns the indices of the non-disabled items in order.
func EnabledIndices(items []Item) []int {
	out := make([]int, 0, len(items))
	for _, it := range items {
		if !it.Disabled {
			out = append(out, it.Index)
		}
	}
	return out
}

// NextIndex moves from current by direction (+1 or -1) through enabled,
// wrapping at both ends, and returns the original item index.
//
// enabled must be non-empty and contain current; callers guard both.
func NextIndex(enabled []int, current, direction int) int {
	pos := indexOf(enabled, current) + direction
	switch pos {
	case -1:
		pos = len(enabled) - 1
	case len(enabled):
		pos = 0
	}
	return enabled[pos]
}

func indexOf(values []int, v int) int {
	for i, x := range values {
		if x == v {
			return i
		}
	}
	return -1
}

// Handles maps item indices to their focus handles. It is rebuilt from the
// item descriptors on every render so a stale handle is never read.
type Handles struct {
	byIndex []string
}

// Rebuild replaces the mapping with the handles of items.
func (h *Handles) Rebuild(items []Item) {
	size := 0
	for _, it := range items {
		if it.Index+1 > size {
			size = it.Index + 1
		}
	}
	h.byIndex = make([]string, size)
	for _, it := range items {
		if it.Index >= 0 {
			h.byIndex[it.Index] = it.Handle
		}
	}
}

// Lookup returns the handle registered for index.
func (h *Handles) Lookup(index int) (string, bool) {
	if index < 0 || index >= len(h.byIndex) || h.byIndex[index] == "" {
		return "", false
	}
	return h.byIndex[index], true
}

// IndexOf returns the index whose handle is, or contains, path; -1 otherwise.
func (h *Handles) IndexOf(path string) int {
	if path == "" {
		return -1
	}
	for i, handle := range h.byIndex {
		if handle != "" && (Element{Path: handle}).Contains(path) {
			return i
		}
	}
	return -1
}

func (h *Handles) Len() int {
	return len(h.byIndex)
}
