package layout

import (
	"testing"

	"github.com/1broseidon/komotile/internal/geometry"
)

func threeColumnLayout() CustomLayout {
	return CustomLayout{
		LayoutName: "three-column",
		Columns: []Column{
			{Kind: ColumnSecondary, Split: SplitHorizontal, Capacity: 1},
			{Kind: ColumnPrimary},
			{Kind: ColumnTertiary, Split: SplitHorizontal},
		},
	}
}

func TestCustomLayoutIsValid(t *testing.T) {
	if !threeColumnLayout().IsValid() {
		t.Fatalf("expected three-column layout to be valid")
	}

	noTertiary := CustomLayout{Columns: []Column{{Kind: ColumnPrimary}, {Kind: ColumnSecondary}}}
	if noTertiary.IsValid() {
		t.Fatalf("expected layout with no Tertiary column to be invalid")
	}

	twoPrimary := CustomLayout{Columns: []Column{{Kind: ColumnPrimary}, {Kind: ColumnPrimary}, {Kind: ColumnTertiary}}}
	if twoPrimary.IsValid() {
		t.Fatalf("expected layout with two Primary columns to be invalid")
	}

	tertiaryNotLast := CustomLayout{Columns: []Column{{Kind: ColumnTertiary}, {Kind: ColumnPrimary}}}
	if tertiaryNotLast.IsValid() {
		t.Fatalf("expected layout where Tertiary isn't last to be invalid")
	}

	verticalSplit := CustomLayout{Columns: []Column{
		{Kind: ColumnPrimary},
		{Kind: ColumnTertiary, Split: SplitVertical},
	}}
	if verticalSplit.IsValid() {
		t.Fatalf("expected a column using SplitVertical to be invalid")
	}
}

func TestCustomLayoutColumnContainerCounts(t *testing.T) {
	l := threeColumnLayout()
	counts := l.columnContainerCounts(5)
	want := []int{1, 1, 3}
	for i := range want {
		if counts[i] != want[i] {
			t.Errorf("counts[%d] = %d, want %d", i, counts[i], want[i])
		}
	}
}

func TestCustomLayoutArrangeIsContainedAndNonOverlapping(t *testing.T) {
	area := geometry.Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1080}
	l := threeColumnLayout()

	for n := 1; n <= 12; n++ {
		rects := l.Arrange(area, n, nil)
		if len(rects) != n {
			t.Fatalf("n=%d: got %d rects, want %d", n, len(rects), n)
		}
		for i, r := range rects {
			if !area.Contains(r) {
				t.Fatalf("n=%d: rect %d %+v not contained in work area", n, i, r)
			}
			for j := i + 1; j < len(rects); j++ {
				if r.Overlaps(rects[j]) {
					t.Fatalf("n=%d: rect %d overlaps rect %d", n, i, j)
				}
			}
		}
	}
}

func TestColumnForContainerIdx(t *testing.T) {
	counts := []int{1, 1, 3}
	cases := []struct {
		idx, wantCol, wantPos int
	}{
		{0, 0, 0},
		{1, 1, 0},
		{2, 2, 0},
		{3, 2, 1},
		{4, 2, 2},
	}
	for _, c := range cases {
		col, pos := columnForContainerIdx(counts, c.idx)
		if col != c.wantCol || pos != c.wantPos {
			t.Errorf("columnForContainerIdx(%d) = (%d,%d), want (%d,%d)", c.idx, col, pos, c.wantCol, c.wantPos)
		}
	}
}
