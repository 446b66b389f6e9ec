package menu

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/overflow-menu/internal/popup"
)

// Bar names the toolbar a trigger is placed on.
type Bar string

const (
	BarTop    Bar = "top"
	BarBottom Bar = "bottom"
)

// Size controls the horizontal padding of menu items.
type Size string

const (
	SizeSmall  Size = "sm"
	SizeMedium Size = "md"
	SizeLarge  Size = "lg"
)

// Padding returns the number of cells added on each side of an item label.
func (s Size) Padding() int {
	switch s {
	case SizeSmall:
		return 1
	case SizeLarge:
		return 3
	default:
		return 2
	}
}

// Item represents a selectable menu entry.
type Item struct {
	ID       string `yaml:"id" json:"id"`
	Label    string `yaml:"label" json:"label"`
	Disabled bool   `yaml:"disabled,omitempty" json:"disabled,omitempty"`
	Danger   bool   `yaml:"danger,omitempty" json:"danger,omitempty"`
	Primary  bool   `yaml:"primary,omitempty" json:"primary,omitempty"`
	Divider  bool   `yaml:"divider,omitempty" json:"divider,omitempty"`
	Action   string `yaml:"action,omitempty" json:"action,omitempty"`
	Message  string `yaml:"message,omitempty" json:"message,omitempty"`
	// Shortcut is a key (in bubbles/key notation, e.g. "ctrl+d") that
	// activates the item while its menu is open.
	Shortcut string `yaml:"shortcut,omitempty" json:"shortcut,omitempty"`
	// Target names the menu a toggle action opens or closes.
	Target string `yaml:"target,omitempty" json:"target,omitempty"`
}

// ActionName returns the configured action, defaulting to info.
func (i Item) ActionName() string {
	if i.Action == "" {
		return ActionInfo
	}
	return i.Action
}

// Definition describes one trigger and the popup menu it owns.
type Definition struct {
	ID                   string          `yaml:"id" json:"id"`
	Label                string          `yaml:"label" json:"label"`
	Description          string          `yaml:"description,omitempty" json:"description,omitempty"`
	Bar                  Bar             `yaml:"bar,omitempty" json:"bar,omitempty"`
	Direction            popup.Direction `yaml:"direction,omitempty" json:"direction,omitempty"`
	Flipped              bool            `yaml:"flipped,omitempty" json:"flipped,omitempty"`
	FocusTrap            *bool           `yaml:"focus_trap,omitempty" json:"focus_trap,omitempty"`
	Open                 bool            `yaml:"open,omitempty" json:"open,omitempty"`
	Size                 Size            `yaml:"size,omitempty" json:"size,omitempty"`
	SelectorPrimaryFocus string          `yaml:"primary_focus,omitempty" json:"primary_focus,omitempty"`
	Offset               *popup.Offset   `yaml:"offset,omitempty" json:"offset,omitempty"`
	OffsetFlip           *popup.Offset   `yaml:"offset_flip,omitempty" json:"offset_flip,omitempty"`
	Target               string          `yaml:"target,omitempty" json:"target,omitempty"`
	AlsoAllow            []string        `yaml:"also_allow,omitempty" json:"also_allow,omitempty"`
	Items                []Item          `yaml:"items" json:"items"`
}

// BarOrDefault returns the configured bar, defaulting to the top bar.
func (d Definition) BarOrDefault() Bar {
	if d.Bar == "" {
		return BarTop
	}
	return d.Bar
}

// Options converts the definition into popup machine options. Callbacks are
// left for the host to fill in.
func (d Definition) Options() popup.Options {
	opts := popup.DefaultOptions()
	if d.Direction != "" {
		opts.Direction = d.Direction
	}
	opts.Flipped = d.Flipped
	if d.FocusTrap != nil {
		opts.FocusTrap = *d.FocusTrap
	}
	opts.InitiallyOpen = d.Open
	if d.SelectorPrimaryFocus != "" {
		opts.SelectorPrimaryFocus = d.SelectorPrimaryFocus
	}
	if d.Offset != nil {
		opts.MenuOffset = popup.StaticOffset(*d.Offset)
	}
	if d.OffsetFlip != nil {
		opts.MenuOffsetFlip = popup.StaticOffset(*d.OffsetFlip)
	}
	opts.Target = d.Target
	opts.AlsoAllow = append([]string(nil), d.AlsoAllow...)
	return opts
}

// Context identifies where an action was triggered from.
type Context struct {
	Menu  string
	Index int
}

// Action executes a menu item.
type Action func(Context, Item) tea.Cmd

// ActionResult communicates the outcome of executing a menu action.
type ActionResult struct {
	Menu   string
	Info   string
	Err    error
	Quit   bool
	Toggle string
}
