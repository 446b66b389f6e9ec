package popup

import "fmt"

// Direction selects which side of the trigger the popup opens on.
type Direction string

const (
	DirectionTop    Direction = "top"
	DirectionBottom Direction = "bottom"
)

// Valid reports whether d is one of the supported directions.
func (d Direction) Valid() bool {
	return d == DirectionTop || d == DirectionBottom
}

// Offset is a cell offset applied to the popup after it is aligned with the
// trigger. Left is added to the popup's column, Top pushes the popup away from
// the trigger.
type Offset struct {
	Left int `yaml:"left" json:"left"`
	Top  int `yaml:"top" json:"top"`
}

// OffsetFunc computes an Offset from the measured menu and trigger.
type OffsetFunc func(menuWidth, menuHeight int, dir Direction, flipped bool, triggerWidth int) Offset

var devWarn = func(string) {}

// SetDevWarnings installs the sink for development-only configuration
// warnings. Passing nil silences them again.
func SetDevWarnings(fn func(message string)) {
	if fn == nil {
		fn = func(string) {}
	}
	devWarn = fn
}

// ComputeOffset centres the menu horizontally on the trigger. Flipping
// mirrors the horizontal offset. An unmeasurable trigger is passed as width 0.
func ComputeOffset(menuWidth, menuHeight int, dir Direction, flipped bool, triggerWidth int) Offset {
	switch dir {
	case DirectionTop, DirectionBottom:
		sign := 1
		if flipped {
			sign = -1
		}
		return Offset{Left: sign * (menuWidth/2 - triggerWidth/2), Top: 0}
	default:
		devWarn(fmt.Sprintf("[overflow-menu] wrong floating menu direction: %q", string(dir)))
		return Offset{}
	}
}

// StaticOffset returns an OffsetFunc that ignores its inputs.
func StaticOffset(o Offset) OffsetFunc {
	return func(int, int, Direction, bool, int) Offset { return o }
}
