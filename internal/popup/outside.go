package popup

// IsOutside reports whether an event aimed at target happened outside the
// popup mounted at root. The target is resolved to its nearest element first;
// a target with no element, or a nil root, is always outside. Elements
// matching one of the allow selectors count as inside.
func IsOutside(target string, root *Element, allow []string, tree *Elements) bool {
	if root == nil {
		return true
	}
	el, ok := tree.Nearest(target)
	if !ok {
		return true
	}
	if root.Contains(el.Path) {
		return false
	}
	for _, sel := range allow {
		if el.Matches(sel) {
			return false
		}
	}
	return true
}
