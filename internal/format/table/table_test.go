package table

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormatAlignsColumns(t *testing.T) {
	rows := [][]string{
		{"Rename", "ctrl+r"},
		{"Toggle help", ""},
		{"Delete", "del"},
	}
	got := Format(rows, []Alignment{AlignLeft, AlignRight}, 2)
	want := []string{
		"Rename       ctrl+r",
		"Toggle help        ",
		"Delete          del",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected rows (-want +got):\n%s", diff)
	}
	if w := Width(got); w != 19 {
		t.Fatalf("expected width 19, got %d", w)
	}
}

func TestFormatDropsEmptyColumns(t *testing.T) {
	got := Format([][]string{{"About", ""}, {"Keys"}}, []Alignment{AlignLeft, AlignRight}, 2)
	want := []string{"About", "Keys "}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected rows (-want +got):\n%s", diff)
	}
}

func TestFormatMeasuresWideRunes(t *testing.T) {
	got := Format([][]string{{"日本", "x"}, {"ab", "y"}}, nil, 1)
	want := []string{"日本 x", "ab   y"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected rows (-want +got):\n%s", diff)
	}
}

func TestFormatEmpty(t *testing.T) {
	if got := Format(nil, nil, 2); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}
