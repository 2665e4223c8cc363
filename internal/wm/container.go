package wm

import (
	"github.com/1broseidon/komotile/internal/geometry"
	"github.com/1broseidon/komotile/internal/ring"
)

// Container is a ring of stacked windows sharing one tile. Only the
// focused window is shown; stacking more than one window into a container
// is how "stack" commands group windows onto the same tile.
type Container struct {
	ID      uint64
	Windows *ring.Ring[Window]

	// ResizeDelta is the per-edge adjustment applied on top of this
	// container's base arrangement rect. Only BSP and
	// UltrawideVerticalStack honour a non-nil delta (layout.DefaultLayout.
	// SupportsResize).
	ResizeDelta *geometry.Rect

	// LastKnownRect is the rect last pushed to the platform backend for
	// this container's focused window, used to diff against a freshly
	// computed arrangement so unaffected containers are not re-moved.
	LastKnownRect geometry.Rect
}

// NewContainer wraps a single window in a new container.
func NewContainer(id uint64, w Window) *Container {
	return &Container{ID: id, Windows: ring.New(w)}
}

// FocusedWindow returns the container's visible window.
func (c *Container) FocusedWindow() (Window, bool) {
	if c == nil {
		return Window{}, false
	}
	return c.Windows.Focused()
}

// IsEmpty reports whether the container holds no windows and should be
// pruned from its workspace.
func (c *Container) IsEmpty() bool {
	return c == nil || c.Windows.Len() == 0
}
