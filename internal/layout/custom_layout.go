package layout

import "github.com/1broseidon/komotile/internal/geometry"

// ColumnSplit names the axis a Secondary or Tertiary column subdivides its
// containers along. Vertical is kept as a preserved-but-unreachable variant:
// IsValid rejects it everywhere it appears, since no renderer currently
// implements it.
type ColumnSplit int

const (
	SplitHorizontal ColumnSplit = iota
	SplitVertical
)

// ColumnKind identifies which of the three column roles a Column plays.
type ColumnKind int

const (
	ColumnPrimary ColumnKind = iota
	ColumnSecondary
	ColumnTertiary
)

// Column describes one column of a CustomLayout.
//
//   - Primary holds exactly one container.
//   - Secondary optionally subdivides into a fixed capacity of containers
//     along Split; capacity == 0 means a single container, same as Primary.
//   - Tertiary absorbs every container not claimed by an earlier column,
//     subdividing them along Split.
type Column struct {
	Kind     ColumnKind
	Split    ColumnSplit
	Capacity int // meaningful for Secondary only; Tertiary always absorbs the remainder
}

// CustomLayout is a user-authored sequence of columns, left to right.
type CustomLayout struct {
	LayoutName string
	Columns    []Column
}

func (c CustomLayout) Name() string {
	if c.LayoutName == "" {
		return "custom"
	}
	return c.LayoutName
}

// IsValid enforces the structural rules a custom layout must satisfy:
// exactly one Primary column, exactly one Tertiary column which must be
// the last column, and no column may use SplitVertical (the variant exists
// for forward compatibility but no renderer currently implements it).
func (c CustomLayout) IsValid() bool {
	if len(c.Columns) == 0 {
		return false
	}

	primaryCount, tertiaryCount := 0, 0
	tertiaryIdx := -1
	for i, col := range c.Columns {
		switch col.Kind {
		case ColumnPrimary:
			primaryCount++
		case ColumnTertiary:
			tertiaryCount++
			tertiaryIdx = i
		}
		if col.Split == SplitVertical {
			return false
		}
	}

	if primaryCount != 1 || tertiaryCount != 1 {
		return false
	}
	return tertiaryIdx == len(c.Columns)-1
}

// columnContainerCounts returns, for a ring of length count containers, how
// many containers belong to each column. Columns before the Tertiary one
// claim up to a fixed number (1 for Primary, Capacity-or-1 for Secondary); the
// Tertiary column absorbs whatever remains (at minimum 0).
func (c CustomLayout) columnContainerCounts(count int) []int {
	counts := make([]int, len(c.Columns))
	claimed := 0
	for i, col := range c.Columns {
		switch col.Kind {
		case ColumnPrimary:
			if claimed < count {
				counts[i] = 1
				claimed++
			}
		case ColumnSecondary:
			n := col.Capacity
			if n <= 0 {
				n = 1
			}
			if claimed+n > count {
				n = count - claimed
				if n < 0 {
					n = 0
				}
			}
			counts[i] = n
			claimed += n
		case ColumnTertiary:
			n := count - claimed
			if n < 0 {
				n = 0
			}
			counts[i] = n
			claimed += n
		}
	}
	return counts
}

// firstContainerIdx returns the index of the first container belonging to
// column colIdx, given the per-column counts.
func firstContainerIdx(counts []int, colIdx int) int {
	idx := 0
	for i := 0; i < colIdx; i++ {
		idx += counts[i]
	}
	return idx
}

// columnForContainerIdx returns which column owns container idx, and that
// container's position within the column.
func columnForContainerIdx(counts []int, idx int) (col, posInCol int) {
	remaining := idx
	for i, n := range counts {
		if remaining < n {
			return i, remaining
		}
		remaining -= n
	}
	return len(counts) - 1, 0
}

// columnWidths splits area's width across len(columns) equal columns; the
// last column absorbs any rounding remainder.
func columnWidths(area geometry.Rect, n int) []int {
	widths := make([]int, n)
	base := area.Right / n
	remainder := area.Right - base*n
	for i := range widths {
		widths[i] = base
		if i == n-1 {
			widths[i] += remainder
		}
	}
	return widths
}

// Arrange implements Arrangement. Resize deltas are not honoured by custom
// layouts; only BSP and UltrawideVerticalStack support per-container resize.
func (c CustomLayout) Arrange(workArea geometry.Rect, count int, _ []*geometry.Rect) []geometry.Rect {
	if count <= 0 || len(c.Columns) == 0 {
		return nil
	}

	counts := c.columnContainerCounts(count)
	widths := columnWidths(workArea, len(c.Columns))

	rects := make([]geometry.Rect, 0, count)
	x := workArea.Left
	for i, col := range c.Columns {
		colArea := geometry.Rect{Left: x, Top: workArea.Top, Right: widths[i], Bottom: workArea.Bottom}
		x += widths[i]

		n := counts[i]
		if n <= 0 {
			continue
		}
		switch col.Split {
		case SplitHorizontal:
			rects = append(rects, equalRows(colArea, n)...)
		default:
			rects = append(rects, equalRows(colArea, n)...)
		}
	}
	return rects
}

// IndexInDirection reuses the same geometric nearest-neighbour table as the
// built-in layouts, derived from this layout's own canonical arrangement.
func (c CustomLayout) IndexInDirection(dir OperationDirection, idx, length int) (int, bool) {
	if length == 0 || idx < 0 || idx >= length {
		return 0, false
	}
	rects := c.Arrange(canonicalWorkArea, length, nil)
	return nearestInDirection(rects, idx, dir)
}

var (
	_ Arrangement = CustomLayout{}
	_ Direction   = CustomLayout{}
)
