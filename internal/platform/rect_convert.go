package platform

import "github.com/1broseidon/komotile/internal/geometry"

// ToGeometry converts a platform Rect into the engine's internal geometry.Rect.
// Both use the same X/Y + width/height fields under different names, so this
// is a pure relabelling with no arithmetic.
func (r Rect) ToGeometry() geometry.Rect {
	return geometry.Rect{Left: r.X, Top: r.Y, Right: r.Width, Bottom: r.Height}
}

// FromGeometry converts an internal geometry.Rect back into a platform Rect.
func FromGeometry(r geometry.Rect) Rect {
	return Rect{X: r.Left, Y: r.Top, Width: r.Right, Height: r.Bottom}
}
