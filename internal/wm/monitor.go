package wm

import (
	"github.com/1broseidon/komotile/internal/geometry"
	"github.com/1broseidon/komotile/internal/ring"
)

// Monitor is a physical display and the ring of workspaces living on it.
// Exactly one workspace is shown at a time (the ring's focused element);
// the rest exist but contribute no visible windows.
type Monitor struct {
	ID     int
	Serial string
	Size   geometry.Rect // full display bounds, in geometry.Rect's width/height convention
	Offset geometry.Rect // configured work-area inset (struts, bars) added on top of the platform-reported usable rect

	Workspaces *ring.Ring[*Workspace]

	// LastFocusedWorkspaceIdx remembers which workspace had focus before
	// the user switched away, so "toggle workspace" can return to it.
	LastFocusedWorkspaceIdx int
}

// NewMonitor returns a Monitor with a single empty workspace.
func NewMonitor(id int, serial string, size geometry.Rect) *Monitor {
	return &Monitor{
		ID:                      id,
		Serial:                  serial,
		Size:                    size,
		Workspaces:              ring.New[*Workspace](),
		LastFocusedWorkspaceIdx: -1,
	}
}

// WorkArea returns the monitor's size with the configured offset applied.
func (m *Monitor) WorkArea() geometry.Rect {
	return geometry.Rect{
		Left:   m.Size.Left + m.Offset.Left,
		Top:    m.Size.Top + m.Offset.Top,
		Right:  m.Size.Right - m.Offset.Left - m.Offset.Right,
		Bottom: m.Size.Bottom - m.Offset.Top - m.Offset.Bottom,
	}
}

// FocusedWorkspace returns the currently visible workspace, if any.
func (m *Monitor) FocusedWorkspace() (*Workspace, bool) {
	if m == nil {
		return nil, false
	}
	return m.Workspaces.Focused()
}

// FocusWorkspace switches the visible workspace, remembering the
// previously-focused index in LastFocusedWorkspaceIdx.
func (m *Monitor) FocusWorkspace(idx int) {
	if m == nil {
		return
	}
	m.LastFocusedWorkspaceIdx = m.Workspaces.FocusedIdx()
	m.Workspaces.Focus(idx)
}
