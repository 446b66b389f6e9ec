package popup

import (
	"strings"
	"testing"
)

func TestComputeOffsetFlipMirrorsLeft(t *testing.T) {
	cases := []struct {
		menuWidth, triggerWidth int
	}{
		{20, 4},
		{21, 3},
		{4, 20},
		{0, 0},
		{17, 0},
	}
	for _, dir := range []Direction{DirectionTop, DirectionBottom} {
		for _, tc := range cases {
			plain := ComputeOffset(tc.menuWidth, 5, dir, false, tc.triggerWidth)
			flipped := ComputeOffset(tc.menuWidth, 5, dir, true, tc.triggerWidth)
			if flipped.Left != -plain.Left {
				t.Fatalf("%s %+v: expected flipped left %d, got %d", dir, tc, -plain.Left, flipped.Left)
			}
			if plain.Top != 0 || flipped.Top != 0 {
				t.Fatalf("%s %+v: expected top 0, got %d/%d", dir, tc, plain.Top, flipped.Top)
			}
		}
	}
}

func TestComputeOffsetCentresOnTrigger(t *testing.T) {
	got := ComputeOffset(20, 6, DirectionBottom, false, 4)
	if got.Left != 8 {
		t.Fatalf("expected left 8, got %d", got.Left)
	}
	unmeasured := ComputeOffset(20, 6, DirectionTop, false, 0)
	if unmeasured.Left != 10 {
		t.Fatalf("expected menu midpoint 10 without trigger width, got %d", unmeasured.Left)
	}
}

func TestComputeOffsetUnknownDirectionFallsBack(t *testing.T) {
	var warnings []string
	SetDevWarnings(func(msg string) { warnings = append(warnings, msg) })
	t.Cleanup(func() { SetDevWarnings(nil) })

	got := ComputeOffset(20, 6, Direction("left"), true, 4)
	if got != (Offset{}) {
		t.Fatalf("expected zero offset, got %+v", got)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], `"left"`) {
		t.Fatalf("expected one warning naming the direction, got %v", warnings)
	}

	SetDevWarnings(nil)
	if got := ComputeOffset(20, 6, Direction(""), false, 4); got != (Offset{}) {
		t.Fatalf("expected zero offset with warnings disabled, got %+v", got)
	}
}

func TestStaticOffsetIgnoresInputs(t *testing.T) {
	fn := StaticOffset(Offset{Left: 3, Top: 1})
	if got := fn(100, 100, DirectionTop, true, 50); got != (Offset{Left: 3, Top: 1}) {
		t.Fatalf("unexpected offset %+v", got)
	}
}

func TestActiveOffsetFollowsFlip(t *testing.T) {
	opts := DefaultOptions()
	opts.MenuOffset = StaticOffset(Offset{Left: 1})
	opts.MenuOffsetFlip = StaticOffset(Offset{Left: 2})
	if got := opts.ActiveOffset()(0, 0, DirectionBottom, false, 0); got.Left != 1 {
		t.Fatalf("expected unflipped override, got %+v", got)
	}
	opts.Flipped = true
	if got := opts.ActiveOffset()(0, 0, DirectionBottom, true, 0); got.Left != 2 {
		t.Fatalf("expected flipped override, got %+v", got)
	}
}
