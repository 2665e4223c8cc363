package border

import (
	"testing"

	"github.com/1broseidon/komotile/internal/geometry"
)

func TestParseHexColorAcceptsHashPrefixAndBare(t *testing.T) {
	for _, s := range []string{"#ff00aa", "ff00aa"} {
		got, err := parseHexColor(s)
		if err != nil {
			t.Fatalf("parseHexColor(%q): %v", s, err)
		}
		if got != 0xff00aa {
			t.Fatalf("parseHexColor(%q) = %#x, want 0xff00aa", s, got)
		}
	}
}

func TestParseHexColorEmptyIsZero(t *testing.T) {
	got, err := parseHexColor("")
	if err != nil {
		t.Fatalf("parseHexColor(\"\"): %v", err)
	}
	if got != 0 {
		t.Fatalf("parseHexColor(\"\") = %#x, want 0", got)
	}
}

func TestParseHexColorRejectsGarbage(t *testing.T) {
	if _, err := parseHexColor("not-a-color"); err == nil {
		t.Fatalf("expected an error for an invalid hex color")
	}
}

func TestFrameRectAppliesOverflowSymmetrically(t *testing.T) {
	rect := geometry.Rect{Left: 100, Top: 100, Right: 200, Bottom: 150}
	framed := frameRect(rect, true)

	if framed.Left != rect.Left-overflowPx || framed.Top != rect.Top-overflowPx {
		t.Fatalf("frameRect did not shift origin by overflowPx: %+v", framed)
	}
	if framed.Right != rect.Right+2*overflowPx || framed.Bottom != rect.Bottom+2*overflowPx {
		t.Fatalf("frameRect did not grow size by 2*overflowPx: %+v", framed)
	}
}

func TestFrameRectNoOverflowIsIdentity(t *testing.T) {
	rect := geometry.Rect{Left: 10, Top: 20, Right: 300, Bottom: 200}
	if got := frameRect(rect, false); got != rect {
		t.Fatalf("frameRect(_, false) = %+v, want unchanged %+v", got, rect)
	}
}

func TestBorderStripsFrameAreaWithoutObscuringInterior(t *testing.T) {
	area := geometry.Rect{Left: 0, Top: 0, Right: 200, Bottom: 100}
	top, bottom, left, right := borderStrips(area, 4)

	if top.Bottom != 4 || top.Right != 200 {
		t.Fatalf("unexpected top strip: %+v", top)
	}
	if bottom.Top != 96 || bottom.Bottom != 4 {
		t.Fatalf("unexpected bottom strip: %+v", bottom)
	}
	if left.Left != 0 || left.Top != 4 || left.Bottom != 92 {
		t.Fatalf("unexpected left strip: %+v", left)
	}
	if right.Left != 196 || right.Bottom != 92 {
		t.Fatalf("unexpected right strip: %+v", right)
	}
}
