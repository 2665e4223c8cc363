package geometry

import "testing"

func TestAddPaddingIsInvolution(t *testing.T) {
	r := Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1080}
	padded := r.AddPadding(10)
	restored := padded.AddPadding(-10)
	if restored != r {
		t.Fatalf("expected %+v, got %+v", r, restored)
	}
}

func TestAddMarginIsInverseOfPadding(t *testing.T) {
	r := Rect{Left: 100, Top: 100, Right: 500, Bottom: 300}
	padded := r.AddPadding(15)
	if restored := padded.AddMargin(15); restored != r {
		t.Fatalf("expected %+v, got %+v", r, restored)
	}
}

func TestContainsPoint(t *testing.T) {
	r := Rect{Left: 0, Top: 0, Right: 100, Bottom: 100}
	cases := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{100, 100, true},
		{50, 50, true},
		{101, 50, false},
		{-1, 0, false},
	}
	for _, c := range cases {
		if got := r.ContainsPoint(c.x, c.y); got != c.want {
			t.Errorf("ContainsPoint(%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestFromEdgesToEdgesRoundTrip(t *testing.T) {
	r := FromEdges(10, 20, 110, 220)
	left, top, right, bottom := r.ToEdges()
	if left != 10 || top != 20 || right != 110 || bottom != 220 {
		t.Fatalf("round trip mismatch: %d,%d,%d,%d", left, top, right, bottom)
	}
}

func TestOverlapsAndContains(t *testing.T) {
	outer := Rect{Left: 0, Top: 0, Right: 1000, Bottom: 1000}
	a := Rect{Left: 0, Top: 0, Right: 500, Bottom: 500}
	b := Rect{Left: 500, Top: 0, Right: 500, Bottom: 500}
	if a.Overlaps(b) {
		t.Fatalf("adjacent rects should not overlap")
	}
	if !outer.Contains(a) {
		t.Fatalf("outer should contain a")
	}
}

func TestFlipHorizontal(t *testing.T) {
	bounds := Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1080}
	r := Rect{Left: 0, Top: 0, Right: 960, Bottom: 1080}
	flipped := r.Flip(AxisHorizontal, bounds)
	if flipped.Left != 960 || flipped.Right != 960 {
		t.Fatalf("unexpected flip result: %+v", flipped)
	}
}
