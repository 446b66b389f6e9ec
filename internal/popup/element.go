package popup

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	// AttrPrimaryFocus marks the element a freshly placed popup focuses first.
	AttrPrimaryFocus = "data-floating-menu-primary-focus"
	// AttrContainer marks an ancestor the popup is mounted into and clamped to.
	AttrContainer = "data-floating-menu-container"
	// AttrDirection is set on a placed popup body.
	AttrDirection = "data-floating-menu-direction"
	// AttrTrigger marks overflow triggers so a focus move onto one does not
	// count as leaving a popup.
	AttrTrigger = "data-overflow-menu-trigger"
	// AttrDisabled marks items that roving focus skips.
	AttrDisabled = "aria-disabled"

	pathSep = "/"
)

// Element is one addressable node of the rendered screen.
type Element struct {
	Path  string
	Attrs map[string]string
}

// Attr returns the attribute value and whether it is present.
func (e Element) Attr(name string) (string, bool) {
	v, ok := e.Attrs[name]
	return v, ok
}

// Contains reports whether path names e itself or one of its descendants.
func (e Element) Contains(path string) bool {
	if e.Path == "" || path == "" {
		return false
	}
	return path == e.Path || strings.HasPrefix(path, e.Path+pathSep)
}

// Matches reports whether e matches a selector list. Selectors are comma
// separated; "[name]" and "[name=value]" test attributes, anything else is a
// doublestar glob over the element path.
func (e Element) Matches(selectors string) bool {
	for _, sel := range strings.Split(selectors, ",") {
		if e.matchOne(strings.TrimSpace(sel)) {
			return true
		}
	}
	return false
}

func (e Element) matchOne(sel string) bool {
	if sel == "" {
		return false
	}
	if strings.HasPrefix(sel, "[") && strings.HasSuffix(sel, "]") {
		name, value, hasValue := strings.Cut(sel[1:len(sel)-1], "=")
		got, ok := e.Attrs[strings.TrimSpace(name)]
		if !ok {
			return false
		}
		if !hasValue {
			return true
		}
		return got == strings.Trim(strings.TrimSpace(value), `"'`)
	}
	ok, err := doublestar.Match(sel, e.Path)
	return err == nil && ok
}

// Elements is the element tree of a single render pass. Insertion order is
// kept so lookups that want "the first match" are deterministic.
type Elements struct {
	byPath map[string]Element
	order  []string
}

func NewElements() *Elements {
	return &Elements{byPath: make(map[string]Element)}
}

// Reset drops every element; hosts call it at the start of each layout pass.
func (t *Elements) Reset() {
	t.byPath = make(map[string]Element, len(t.order))
	t.order = t.order[:0]
}

// Add registers el, replacing an earlier element with the same path.
func (t *Elements) Add(el Element) {
	if el.Path == "" {
		return
	}
	if t.byPath == nil {
		t.byPath = make(map[string]Element)
	}
	if _, ok := t.byPath[el.Path]; !ok {
		t.order = append(t.order, el.Path)
	}
	t.byPath[el.Path] = el
}

func (t *Elements) Get(path string) (Element, bool) {
	if t == nil {
		return Element{}, false
	}
	el, ok := t.byPath[path]
	return el, ok
}

func (t *Elements) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}

// Nearest walks up from path to the closest registered element. Targets that
// are not elements themselves (label text, padding) resolve to their owner.
func (t *Elements) Nearest(path string) (Element, bool) {
	for p := path; p != ""; p = parentPath(p) {
		if el, ok := t.Get(p); ok {
			return el, true
		}
	}
	return Element{}, false
}

// Closest returns the nearest ancestor of path, path included, matching
// selector.
func (t *Elements) Closest(path, selector string) (Element, bool) {
	for p := path; p != ""; p = parentPath(p) {
		if el, ok := t.Get(p); ok && el.Matches(selector) {
			return el, true
		}
	}
	return Element{}, false
}

// Within lists the descendants of root in insertion order.
func (t *Elements) Within(root string) []Element {
	if t == nil {
		return nil
	}
	scope := Element{Path: root}
	out := make([]Element, 0, 8)
	for _, p := range t.order {
		if p != root && scope.Contains(p) {
			out = append(out, t.byPath[p])
		}
	}
	return out
}

func parentPath(p string) string {
	idx := strings.LastIndex(p, pathSep)
	if idx <= 0 {
		return ""
	}
	return p[:idx]
}

// JoinPath builds a child path.
func JoinPath(parts ...string) string {
	clean := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.Trim(part, pathSep)
		if part != "" {
			clean = append(clean, part)
		}
	}
	return strings.Join(clean, pathSep)
}
