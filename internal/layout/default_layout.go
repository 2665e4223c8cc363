package layout

import (
	"math"

	"github.com/1broseidon/komotile/internal/geometry"
)

// DefaultLayout is one of the built-in layout algorithms.
type DefaultLayout int

const (
	BSP DefaultLayout = iota
	Columns
	Rows
	VerticalStack
	HorizontalStack
	UltrawideVerticalStack
	Grid
)

var defaultLayoutNames = map[DefaultLayout]string{
	BSP:                    "bsp",
	Columns:                "columns",
	Rows:                   "rows",
	VerticalStack:          "vertical_stack",
	HorizontalStack:        "horizontal_stack",
	UltrawideVerticalStack: "ultrawide_vertical_stack",
	Grid:                   "grid",
}

func (d DefaultLayout) Name() string {
	if name, ok := defaultLayoutNames[d]; ok {
		return name
	}
	return "unknown"
}

// CycleNext returns the next layout in the fixed cycle order, used by the
// "cycle layout" command.
func (d DefaultLayout) CycleNext() DefaultLayout {
	switch d {
	case BSP:
		return Columns
	case Columns:
		return Rows
	case Rows:
		return VerticalStack
	case VerticalStack:
		return HorizontalStack
	case HorizontalStack:
		return UltrawideVerticalStack
	case UltrawideVerticalStack:
		return Grid
	default:
		return BSP
	}
}

// CyclePrevious is the inverse of CycleNext.
func (d DefaultLayout) CyclePrevious() DefaultLayout {
	switch d {
	case BSP:
		return Grid
	case Grid:
		return UltrawideVerticalStack
	case UltrawideVerticalStack:
		return HorizontalStack
	case HorizontalStack:
		return VerticalStack
	case VerticalStack:
		return Rows
	case Rows:
		return Columns
	default:
		return BSP
	}
}

// supportsResize reports whether a layout honours per-container resize
// deltas. Only BSP and UltrawideVerticalStack do.
func (d DefaultLayout) supportsResize() bool {
	return d == BSP || d == UltrawideVerticalStack
}

// Arrange implements Arrangement.
func (d DefaultLayout) Arrange(workArea geometry.Rect, count int, resizeDeltas []*geometry.Rect) []geometry.Rect {
	if count <= 0 {
		return nil
	}

	var rects []geometry.Rect
	switch d {
	case BSP:
		rects = bspArrange(workArea, count, 0)
	case Columns:
		rects = equalColumns(workArea, count)
	case Rows:
		rects = equalRows(workArea, count)
	case VerticalStack:
		rects = verticalStackArrange(workArea, count)
	case HorizontalStack:
		rects = horizontalStackArrange(workArea, count)
	case UltrawideVerticalStack:
		rects = ultrawideArrange(workArea, count)
	case Grid:
		rects = gridArrange(workArea, count)
	default:
		rects = equalColumns(workArea, count)
	}

	if d.supportsResize() {
		for i := range rects {
			if i < len(resizeDeltas) {
				rects[i] = applyResize(rects[i], resizeDeltas[i])
			}
		}
	}

	return rects
}

// bspArrange recursively bisects workArea for count windows. The split
// axis alternates with depth, starting with a vertical dividing line
// (producing left/right halves) at depth 0. At each split the first child
// takes exactly one window and, when the work area's axis doesn't divide
// evenly, the larger of the two pixel shares; the remaining count-1
// windows recurse into the second child. The base case (count == 1)
// returns the whole rect as the final leaf occupying the remainder.
func bspArrange(area geometry.Rect, count, depth int) []geometry.Rect {
	if count <= 1 {
		return []geometry.Rect{area}
	}

	var first, second geometry.Rect
	if depth%2 == 0 {
		firstWidth := area.Right - area.Right/2
		first = geometry.Rect{Left: area.Left, Top: area.Top, Right: firstWidth, Bottom: area.Bottom}
		second = geometry.Rect{Left: area.Left + firstWidth, Top: area.Top, Right: area.Right - firstWidth, Bottom: area.Bottom}
	} else {
		firstHeight := area.Bottom - area.Bottom/2
		first = geometry.Rect{Left: area.Left, Top: area.Top, Right: area.Right, Bottom: firstHeight}
		second = geometry.Rect{Left: area.Left, Top: area.Top + firstHeight, Right: area.Right, Bottom: area.Bottom - firstHeight}
	}

	rest := bspArrange(second, count-1, depth+1)
	return append([]geometry.Rect{first}, rest...)
}

func equalColumns(area geometry.Rect, count int) []geometry.Rect {
	rects := make([]geometry.Rect, count)
	base := area.Right / count
	remainder := area.Right - base*count
	x := area.Left
	for i := 0; i < count; i++ {
		w := base
		if i < remainder {
			w++
		}
		rects[i] = geometry.Rect{Left: x, Top: area.Top, Right: w, Bottom: area.Bottom}
		x += w
	}
	return rects
}

func equalRows(area geometry.Rect, count int) []geometry.Rect {
	rects := make([]geometry.Rect, count)
	base := area.Bottom / count
	remainder := area.Bottom - base*count
	y := area.Top
	for i := 0; i < count; i++ {
		h := base
		if i < remainder {
			h++
		}
		rects[i] = geometry.Rect{Left: area.Left, Top: y, Right: area.Right, Bottom: h}
		y += h
	}
	return rects
}

// verticalStackArrange gives the first window the left half and stacks the
// remainder as equal-height rows on the right half.
func verticalStackArrange(area geometry.Rect, count int) []geometry.Rect {
	if count == 1 {
		return []geometry.Rect{area}
	}
	leftWidth := area.Right / 2
	rightWidth := area.Right - leftWidth
	rects := make([]geometry.Rect, 0, count)
	rects = append(rects, geometry.Rect{Left: area.Left, Top: area.Top, Right: leftWidth, Bottom: area.Bottom})
	stackArea := geometry.Rect{Left: area.Left + leftWidth, Top: area.Top, Right: rightWidth, Bottom: area.Bottom}
	rects = append(rects, equalRows(stackArea, count-1)...)
	return rects
}

// horizontalStackArrange is VerticalStack's axis-swapped twin: the first
// window takes the top half, the remainder stack as equal-width columns
// below.
func horizontalStackArrange(area geometry.Rect, count int) []geometry.Rect {
	if count == 1 {
		return []geometry.Rect{area}
	}
	topHeight := area.Bottom / 2
	bottomHeight := area.Bottom - topHeight
	rects := make([]geometry.Rect, 0, count)
	rects = append(rects, geometry.Rect{Left: area.Left, Top: area.Top, Right: area.Right, Bottom: topHeight})
	stackArea := geometry.Rect{Left: area.Left, Top: area.Top + topHeight, Right: area.Right, Bottom: bottomHeight}
	rects = append(rects, equalColumns(stackArea, count-1)...)
	return rects
}

// ultrawideArrange lays out a wide secondary column, a wide centre primary
// column, and a stack on the right. For count <= 2 it degenerates to
// VerticalStack mirrored about the vertical axis (primary on the right).
func ultrawideArrange(area geometry.Rect, count int) []geometry.Rect {
	if count <= 2 {
		mirrored := verticalStackArrange(area, count)
		return geometry.FlipAll(mirrored, area, geometry.AxisHorizontal)
	}

	secondaryWidth := area.Right / 4
	primaryWidth := area.Right / 2
	stackWidth := area.Right - secondaryWidth - primaryWidth

	secondary := geometry.Rect{Left: area.Left, Top: area.Top, Right: secondaryWidth, Bottom: area.Bottom}
	primary := geometry.Rect{Left: area.Left + secondaryWidth, Top: area.Top, Right: primaryWidth, Bottom: area.Bottom}
	stack := geometry.Rect{Left: area.Left + secondaryWidth + primaryWidth, Top: area.Top, Right: stackWidth, Bottom: area.Bottom}

	rects := make([]geometry.Rect, 0, count)
	rects = append(rects, primary, secondary)
	rects = append(rects, equalRows(stack, count-2)...)
	return rects
}

// gridArrange lays out a near-square grid: rows = ceil(sqrt(count)),
// columns distributed per row so the last row absorbs any remainder,
// each row's cells widened to fill the work area width evenly.
func gridArrange(area geometry.Rect, count int) []geometry.Rect {
	rows := int(math.Ceil(math.Sqrt(float64(count))))
	if rows == 0 {
		rows = 1
	}
	cols := int(math.Ceil(float64(count) / float64(rows)))

	rects := make([]geometry.Rect, 0, count)
	rowHeightBase := area.Bottom / rows
	rowHeightRemainder := area.Bottom - rowHeightBase*rows
	remaining := count
	y := area.Top
	for row := 0; row < rows && remaining > 0; row++ {
		h := rowHeightBase
		if row < rowHeightRemainder {
			h++
		}
		colsThisRow := cols
		if remaining < colsThisRow {
			colsThisRow = remaining
		}
		rowArea := geometry.Rect{Left: area.Left, Top: y, Right: area.Right, Bottom: h}
		rects = append(rects, equalColumns(rowArea, colsThisRow)...)
		remaining -= colsThisRow
		y += h
	}
	return rects
}

// IndexInDirection implements Direction using the closed-form geometric
// table shared by every built-in layout: it re-derives the canonical
// arrangement on a fixed-size work area and finds the nearest neighbouring
// rect in the requested direction. BSP's recursive half-plane intersection
// reduces to the same spatial search once the rects are computed, since the
// splits themselves already encode the half-plane boundaries.
func (d DefaultLayout) IndexInDirection(dir OperationDirection, idx, length int) (int, bool) {
	if length == 0 || idx < 0 || idx >= length {
		return 0, false
	}
	rects := d.Arrange(canonicalWorkArea, length, make([]*geometry.Rect, length))
	return nearestInDirection(rects, idx, dir)
}

// canonicalWorkArea is used purely as a topology probe for directional
// navigation; its absolute size is irrelevant, only relative positions.
var canonicalWorkArea = geometry.Rect{Left: 0, Top: 0, Right: 10000, Bottom: 10000}

// nearestInDirection finds, among rects other than idx, the closest rect
// (by centre-to-centre distance) whose centre lies strictly in direction
// dir from rects[idx]'s centre. Grounded on the spatial navigation in the
// teacher's movemode.NavigateSlotSpatial, generalized to containers.
func nearestInDirection(rects []geometry.Rect, idx int, dir OperationDirection) (int, bool) {
	if idx >= len(rects) {
		return 0, false
	}
	cx, cy := center(rects[idx])

	best := -1
	bestDist := -1
	for i, r := range rects {
		if i == idx {
			continue
		}
		rx, ry := center(r)

		var inDirection bool
		switch dir {
		case Up:
			inDirection = ry < cy
		case Down:
			inDirection = ry > cy
		case Left:
			inDirection = rx < cx
		case Right:
			inDirection = rx > cx
		}
		if !inDirection {
			continue
		}

		dist := abs(rx-cx) + abs(ry-cy)
		if best == -1 || dist < bestDist {
			best = i
			bestDist = dist
		}
	}
	if best == -1 {
		return idx, false
	}
	return best, true
}

func center(r geometry.Rect) (int, int) {
	return r.Left + r.Right/2, r.Top + r.Bottom/2
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Resize adjusts a container's stored resize delta by one step in the
// requested direction/sizing, honouring the same clamp Arrange applies.
// Only BSP and UltrawideVerticalStack honour the result; callers should
// check supportsResize (exported as SupportsResize) before bothering.
func (d DefaultLayout) Resize(unaltered geometry.Rect, resize *geometry.Rect, edge OperationDirection, sizing Sizing, delta int) *geometry.Rect {
	if !d.supportsResize() {
		return nil
	}

	r := geometry.Rect{}
	if resize != nil {
		r = *resize
	}

	switch edge {
	case Left:
		d := signedDelta(sizing, delta)
		if clampResizeDelta(r.Left-d, unaltered.Right) {
			r.Left -= d
		}
	case Up:
		d := signedDelta(sizing, delta)
		if clampResizeDelta(r.Top-d, unaltered.Bottom) {
			r.Top -= d
		}
	case Right:
		d := signedDelta(sizing, delta)
		if clampResizeDelta(r.Right+d, unaltered.Right) {
			r.Right += d
		}
	case Down:
		d := signedDelta(sizing, delta)
		if clampResizeDelta(r.Bottom+d, unaltered.Bottom) {
			r.Bottom += d
		}
	}

	if r.IsZero() {
		return nil
	}
	return &r
}

// SupportsResize reports whether this layout honours per-container resize
// deltas.
func (d DefaultLayout) SupportsResize() bool {
	return d.supportsResize()
}

func signedDelta(sizing Sizing, delta int) int {
	if sizing == Decrease {
		return -delta
	}
	return delta
}

var (
	_ Arrangement = BSP
	_ Direction   = BSP
)
