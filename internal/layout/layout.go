// Package layout computes window rectangles for a work area and answers
// directional-navigation queries for focus/move/stack commands. It has no
// knowledge of the state tree or the platform — every function here is
// pure.
package layout

import "github.com/1broseidon/komotile/internal/geometry"

// Arrangement produces one rect per container for a work area. resizeDeltas
// has exactly len == count entries; a nil entry means "no adjustment for
// this container". Only BSP and UltrawideVerticalStack use them.
type Arrangement interface {
	Arrange(workArea geometry.Rect, count int, resizeDeltas []*geometry.Rect) []geometry.Rect
}

// Direction answers focus-movement queries for a layout's specific
// arrangement of rects, independent of any particular work area.
type Direction interface {
	// IndexInDirection returns the container index reached by moving from
	// idx in direction dir within a ring of the given length, or false if
	// there is no such container (this layout's navigation table, or its
	// edge, does not admit the move).
	IndexInDirection(dir OperationDirection, idx, length int) (int, bool)
}

// Layout is a tagged sum: either a built-in DefaultLayout or a user-authored
// CustomLayout. Go has no sum types, so both arms simply implement the same
// two interfaces directly — there is no virtual class hierarchy and no
// third wrapper type.
type Layout interface {
	Arrangement
	Direction
	// Name identifies the layout for serialisation and the notification
	// bus snapshot.
	Name() string
}

// maxResizeDivisor bounds how far a resize delta may push an edge: the
// magnitude of any edge delta must stay under workAreaAxis / maxResizeDivisor,
// so a user can never resize a container fully off-screen.
const maxResizeDivisor = 1.005

// clampResizeDelta reports whether the candidate edge offset (already
// applied to axisValue) stays within bounds of axisLimit.
func clampResizeDelta(axisValue, axisLimit int) bool {
	max := float64(axisLimit) / maxResizeDivisor
	diff := float64(axisValue)
	if diff < 0 {
		diff = -diff
	}
	return diff < max
}

// applyResize adjusts unaltered by the per-edge resize delta in r (if any),
// honouring the clamp. Returns the possibly-adjusted rect.
func applyResize(unaltered geometry.Rect, delta *geometry.Rect) geometry.Rect {
	if delta == nil {
		return unaltered
	}
	out := unaltered
	if clampResizeDelta(out.Left+delta.Left-unaltered.Left, unaltered.Right) {
		out.Left += delta.Left
		out.Right -= delta.Left
	}
	if clampResizeDelta(out.Top+delta.Top-unaltered.Top, unaltered.Bottom) {
		out.Top += delta.Top
		out.Bottom -= delta.Top
	}
	if clampResizeDelta(delta.Right, unaltered.Right) {
		out.Right += delta.Right
	}
	if clampResizeDelta(delta.Bottom, unaltered.Bottom) {
		out.Bottom += delta.Bottom
	}
	return out
}
