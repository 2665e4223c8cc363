package wm

import (
	"github.com/1broseidon/komotile/internal/geometry"
	"github.com/1broseidon/komotile/internal/layout"
	"github.com/1broseidon/komotile/internal/platform"
	"github.com/1broseidon/komotile/internal/ring"
)

// Workspace holds one virtual desktop's containers, floating windows, and
// layout state. A workspace belongs to exactly one monitor at a time (it
// moves as a unit when a user migrates it to another monitor).
type Workspace struct {
	Name string

	Containers *ring.Ring[*Container]

	// Floating holds windows excluded from tiling (either by an
	// application rule or an explicit "toggle float" command). They are
	// not part of the ring and are not arranged by the layout engine.
	Floating []Window

	// FocusedFloatingIdx tracks which Floating entry last held input
	// focus, -1 if none. ToggleFloat needs this: the command targets
	// "whichever window currently has focus", and a floating window
	// isn't addressable through Containers.FocusedContainer.
	FocusedFloatingIdx int

	// Maximized, if non-nil, names a container whose focused window has
	// been temporarily expanded to fill the whole work area, suspending
	// the normal arrangement for every other container (which are hidden,
	// not moved).
	Maximized *Container

	// Monocle, when true, shows only the focused container at full size;
	// every other container is hidden rather than tiled.
	Monocle bool

	Layout          layout.Layout
	FlipAxis        *geometry.Axis
	ContainerPadding int
	WorkspacePadding int
	TilingEnabled    bool
}

// NewWorkspace returns an empty, tiling-enabled workspace using l.
func NewWorkspace(name string, l layout.Layout) *Workspace {
	return &Workspace{
		Name:               name,
		Containers:         ring.New[*Container](),
		Layout:             l,
		TilingEnabled:      true,
		FocusedFloatingIdx: -1,
	}
}

// FocusedFloatingWindow returns the workspace's currently-focused floating
// window, if any.
func (w *Workspace) FocusedFloatingWindow() (Window, bool) {
	if w == nil || w.FocusedFloatingIdx < 0 || w.FocusedFloatingIdx >= len(w.Floating) {
		return Window{}, false
	}
	return w.Floating[w.FocusedFloatingIdx], true
}

// FocusedContainer returns the workspace's focused container, if any.
func (w *Workspace) FocusedContainer() (*Container, bool) {
	if w == nil {
		return nil, false
	}
	return w.Containers.Focused()
}

// IsEmpty reports whether the workspace has neither tiled nor floating
// windows.
func (w *Workspace) IsEmpty() bool {
	return w == nil || (w.Containers.Len() == 0 && len(w.Floating) == 0)
}

// AddWindow creates a new container for win and focuses it, unless
// asFloating is set, in which case the window joins the floating list
// untouched by the layout engine.
func (w *Workspace) AddWindow(id uint64, win Window, asFloating bool) {
	if asFloating {
		w.Floating = append(w.Floating, win)
		w.FocusedFloatingIdx = len(w.Floating) - 1
		return
	}
	c := NewContainer(id, win)
	w.Containers.Append(c)
	w.Containers.Focus(w.Containers.Len() - 1)
}

// RemoveWindowByID removes a window wherever it lives (a container, or the
// floating list), pruning any container left empty. Reports whether the
// window was found.
func (w *Workspace) RemoveWindowByID(id platform.WindowID) bool {
	for i := 0; i < len(w.Floating); i++ {
		if w.Floating[i].ID == id {
			w.Floating = append(w.Floating[:i], w.Floating[i+1:]...)
			switch {
			case len(w.Floating) == 0:
				w.FocusedFloatingIdx = -1
			case w.FocusedFloatingIdx >= len(w.Floating):
				w.FocusedFloatingIdx = len(w.Floating) - 1
			}
			return true
		}
	}

	for _, c := range w.Containers.Elements() {
		idx := c.Windows.IndexFunc(func(win Window) bool { return win.ID == id })
		if idx < 0 {
			continue
		}
		c.Windows.Remove(idx)
		if c.IsEmpty() {
			w.pruneContainer(c)
		}
		return true
	}
	return false
}

// pruneContainer removes an emptied container from the ring.
func (w *Workspace) pruneContainer(c *Container) {
	idx := w.Containers.IndexFunc(func(candidate *Container) bool { return candidate == c })
	if idx >= 0 {
		w.Containers.Remove(idx)
	}
	if w.Maximized == c {
		w.Maximized = nil
	}
}

// Arrange computes rects for every tiled container, honouring Monocle and
// Maximized overrides, but does not talk to the platform backend itself
// (that is the reducer's job, so it can diff against LastKnownRect and
// animate).
func (w *Workspace) Arrange(workArea geometry.Rect) map[*Container]geometry.Rect {
	out := make(map[*Container]geometry.Rect)
	if w == nil {
		return out
	}

	area := workArea.AddPadding(w.WorkspacePadding)

	if w.Maximized != nil {
		out[w.Maximized] = area
		return out
	}

	containers := w.Containers.Elements()
	if len(containers) == 0 {
		return out
	}

	if w.Monocle {
		if focused, ok := w.Containers.Focused(); ok {
			out[focused] = area
		}
		return out
	}

	if !w.TilingEnabled {
		for _, c := range containers {
			out[c] = c.LastKnownRect
		}
		return out
	}

	deltas := make([]*geometry.Rect, len(containers))
	for i, c := range containers {
		deltas[i] = c.ResizeDelta
	}

	rects := w.Layout.Arrange(area, len(containers), deltas)
	for i, c := range containers {
		r := rects[i]
		if w.ContainerPadding > 0 {
			r = r.AddPadding(w.ContainerPadding)
		}
		if w.FlipAxis != nil {
			r = r.Flip(*w.FlipAxis, area)
		}
		out[c] = r
	}
	return out
}
