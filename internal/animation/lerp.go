package animation

import (
	"math"

	"github.com/1broseidon/komotile/internal/geometry"
)

// LerpInt interpolates an integer value, rounding to nearest.
func LerpInt(start, end int, t float64, style Style) int {
	eased := applyEase(t, style)
	return int(math.Round(float64(start) + float64(end-start)*eased))
}

// LerpRect interpolates every edge of a geometry.Rect independently.
func LerpRect(start, end geometry.Rect, t float64, style Style) geometry.Rect {
	return geometry.Rect{
		Left:   LerpInt(start.Left, end.Left, t, style),
		Top:    LerpInt(start.Top, end.Top, t, style),
		Right:  LerpInt(start.Right, end.Right, t, style),
		Bottom: LerpInt(start.Bottom, end.Bottom, t, style),
	}
}
