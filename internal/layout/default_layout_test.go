package layout

import (
	"testing"

	"github.com/1broseidon/komotile/internal/geometry"
)

func TestBSPScenarioOne(t *testing.T) {
	area := geometry.Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1080}
	got := BSP.Arrange(area, 3, make([]*geometry.Rect, 3))

	want := []geometry.Rect{
		{Left: 0, Top: 0, Right: 960, Bottom: 1080},
		{Left: 960, Top: 0, Right: 960, Bottom: 540},
		{Left: 960, Top: 540, Right: 960, Bottom: 540},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d rects, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("rect %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestBSPSingleWindowFillsWorkArea(t *testing.T) {
	area := geometry.Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1080}
	got := BSP.Arrange(area, 1, nil)
	if len(got) != 1 || got[0] != area {
		t.Fatalf("expected single window to fill the whole work area, got %+v", got)
	}
}

func TestColumnsScenarioTwo(t *testing.T) {
	area := geometry.Rect{Left: 0, Top: 0, Right: 1200, Bottom: 800}
	got := Columns.Arrange(area, 4, nil)

	want := []geometry.Rect{
		{Left: 0, Top: 0, Right: 300, Bottom: 800},
		{Left: 300, Top: 0, Right: 300, Bottom: 800},
		{Left: 600, Top: 0, Right: 300, Bottom: 800},
		{Left: 900, Top: 0, Right: 300, Bottom: 800},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("rect %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestColumnsDirectionDoesNotWrap(t *testing.T) {
	idx, ok := Columns.IndexInDirection(Right, 3, 4)
	if ok {
		t.Fatalf("expected no wrap moving right from the last column, got idx %d", idx)
	}
}

func TestArrangeProducesNonOverlappingContainedRects(t *testing.T) {
	area := geometry.Rect{Left: 0, Top: 0, Right: 3840, Bottom: 2160}
	layouts := []DefaultLayout{BSP, Columns, Rows, VerticalStack, HorizontalStack, UltrawideVerticalStack, Grid}

	for _, l := range layouts {
		for n := 1; n <= 64; n++ {
			rects := l.Arrange(area, n, make([]*geometry.Rect, n))
			if len(rects) != n {
				t.Fatalf("%s: n=%d: got %d rects, want %d", l.Name(), n, len(rects), n)
			}
			for i, r := range rects {
				if !area.Contains(r) {
					t.Fatalf("%s: n=%d: rect %d %+v not contained in work area", l.Name(), n, i, r)
				}
				for j := i + 1; j < len(rects); j++ {
					if r.Overlaps(rects[j]) {
						t.Fatalf("%s: n=%d: rect %d %+v overlaps rect %d %+v", l.Name(), n, i, r, j, rects[j])
					}
				}
			}
		}
	}
}

func TestGridPerfectSquareIsUniform(t *testing.T) {
	area := geometry.Rect{Left: 0, Top: 0, Right: 900, Bottom: 900}
	rects := Grid.Arrange(area, 9, nil)
	if len(rects) != 9 {
		t.Fatalf("expected 9 rects, got %d", len(rects))
	}
	for _, r := range rects {
		if r.Right != 300 || r.Bottom != 300 {
			t.Errorf("expected uniform 300x300 cells on a perfect square grid, got %+v", r)
		}
	}
}

func TestCycleNextAndPreviousAreInverses(t *testing.T) {
	layouts := []DefaultLayout{BSP, Columns, Rows, VerticalStack, HorizontalStack, UltrawideVerticalStack, Grid}
	for _, l := range layouts {
		if l.CycleNext().CyclePrevious() != l {
			t.Errorf("%s: CycleNext().CyclePrevious() did not return to start", l.Name())
		}
	}
}

func TestOnlyBSPAndUltrawideSupportResize(t *testing.T) {
	cases := map[DefaultLayout]bool{
		BSP:                    true,
		UltrawideVerticalStack: true,
		Columns:                false,
		Rows:                   false,
		VerticalStack:          false,
		HorizontalStack:        false,
		Grid:                   false,
	}
	for l, want := range cases {
		if got := l.SupportsResize(); got != want {
			t.Errorf("%s.SupportsResize() = %v, want %v", l.Name(), got, want)
		}
	}
}
