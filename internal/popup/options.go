package popup

import tea "github.com/charmbracelet/bubbletea"

// DefaultSelectorPrimaryFocus picks the element marked as the primary focus
// target of a popup.
const DefaultSelectorPrimaryFocus = "[" + AttrPrimaryFocus + "]"

// Options configures a Machine. Start from DefaultOptions; the zero value
// disables the focus trap.
type Options struct {
	Direction Direction
	Flipped   bool
	FocusTrap bool
	// InitiallyOpen opens the popup as soon as the trigger is mounted.
	InitiallyOpen        bool
	SelectorPrimaryFocus string
	// MenuOffset and MenuOffsetFlip replace ComputeOffset; the flip variant
	// is used while Flipped is set.
	MenuOffset     OffsetFunc
	MenuOffsetFlip OffsetFunc
	// Target names the container the popup mounts into. When empty the
	// closest ancestor of the trigger carrying AttrContainer is used, falling
	// back to the whole screen.
	Target string
	// AlsoAllow lists extra selectors treated as inside the popup for
	// focus-in, e.g. the triggers of nested popups. The machine's own
	// trigger is always allowed.
	AlsoAllow []string
	// ArrowDirection maps an arrow key to +1 or -1; 0 consumes the key
	// without moving.
	ArrowDirection func(tea.KeyMsg) int
	Keys           KeyMap

	OnOpen  func()
	OnClose func()
	// OnClick fires when a trigger activation toggles the popup.
	OnClick func()
}

func DefaultOptions() Options {
	return Options{
		Direction:            DirectionBottom,
		FocusTrap:            true,
		SelectorPrimaryFocus: DefaultSelectorPrimaryFocus,
		MenuOffset:           ComputeOffset,
		MenuOffsetFlip:       ComputeOffset,
		Keys:                 DefaultKeyMap(),
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Direction == "" {
		o.Direction = def.Direction
	}
	if o.SelectorPrimaryFocus == "" {
		o.SelectorPrimaryFocus = def.SelectorPrimaryFocus
	}
	if o.MenuOffset == nil {
		o.MenuOffset = def.MenuOffset
	}
	if o.MenuOffsetFlip == nil {
		o.MenuOffsetFlip = def.MenuOffsetFlip
	}
	if len(o.Keys.Close.Keys()) == 0 {
		o.Keys = def.Keys
	}
	if o.ArrowDirection == nil {
		o.ArrowDirection = o.Keys.ArrowDirection
	}
	if o.OnOpen == nil {
		o.OnOpen = func() {}
	}
	if o.OnClose == nil {
		o.OnClose = func() {}
	}
	if o.OnClick == nil {
		o.OnClick = func() {}
	}
	return o
}

// ActiveOffset returns the offset function for the current flip state.
func (o Options) ActiveOffset() OffsetFunc {
	if o.Flipped {
		return o.MenuOffsetFlip
	}
	return o.MenuOffset
}
