// Package notify publishes a reduced view of the engine's state tree to
// named Unix-socket subscribers as newline-delimited JSON, one notification
// per state change. It never touches wm.State directly beyond reading it to
// build a snapshot; the reducer remains the sole mutator.
package notify

import (
	"github.com/1broseidon/komotile/internal/geometry"
	"github.com/1broseidon/komotile/internal/platform"
	"github.com/1broseidon/komotile/internal/wm"
)

// NotificationEvent names what kind of change produced a StateSnapshot.
// The reducer does not currently distinguish finer-grained causes than
// this; every dispatched event or command is reported as StateUpdated.
type NotificationEvent string

const (
	EventStateUpdated NotificationEvent = "state_updated"
)

// Notification is the envelope written to every subscriber: one line of
// JSON per state change.
type Notification struct {
	Event NotificationEvent `json:"event"`
	State StateSnapshot     `json:"state"`
}

// WindowSnapshot is an owned, JSON-friendly view of a wm.Window. It carries
// nothing beyond the window ID that the platform layer needs to re-locate
// the real window (no backend handles).
type WindowSnapshot struct {
	ID            platform.WindowID `json:"id"`
	PID           int               `json:"pid"`
	Exe           string            `json:"exe"`
	Class         string            `json:"class"`
	Title         string            `json:"title"`
	LastKnownRect geometry.Rect     `json:"last_known_rect"`
}

// ContainerSnapshot is a container's stacked windows plus which one is
// focused.
type ContainerSnapshot struct {
	ID            uint64           `json:"id"`
	Windows       []WindowSnapshot `json:"windows"`
	FocusedIdx    int              `json:"focused_idx"`
	LastKnownRect geometry.Rect    `json:"last_known_rect"`
}

// WorkspaceSnapshot is one workspace's tiled containers, floating windows,
// and layout state.
type WorkspaceSnapshot struct {
	Name               string              `json:"name"`
	Containers         []ContainerSnapshot `json:"containers"`
	FocusedContainer   int                 `json:"focused_container"`
	Floating           []WindowSnapshot    `json:"floating"`
	FocusedFloatingIdx int                 `json:"focused_floating_idx"`
	Layout             string              `json:"layout"`
	Monocle            bool                `json:"monocle"`
	Maximized          bool                `json:"maximized"`
	TilingEnabled      bool                `json:"tiling_enabled"`
	ContainerPadding   int                 `json:"container_padding"`
	WorkspacePadding   int                 `json:"workspace_padding"`
}

// MonitorSnapshot is one monitor's workspaces, with FocusedWorkspace naming
// the visible one.
type MonitorSnapshot struct {
	ID               int                 `json:"id"`
	Serial           string              `json:"serial"`
	Size             geometry.Rect       `json:"size"`
	Workspaces       []WorkspaceSnapshot `json:"workspaces"`
	FocusedWorkspace int                 `json:"focused_workspace"`
}

// StateSnapshot is a reduced, owned view of *wm.State: the full
// monitor/workspace/container/window tree, without backend handles beyond
// each window's platform ID.
type StateSnapshot struct {
	Monitors        []MonitorSnapshot `json:"monitors"`
	FocusedMonitor  int               `json:"focused_monitor"`
	Paused          bool              `json:"paused"`
}

// Snapshot builds a StateSnapshot from the live tree. Callers must hold
// whatever lock protects state for the duration of the call (the reducer
// calls this from inside its own critical section before handing the copy
// off to the bus).
func Snapshot(state *wm.State) StateSnapshot {
	if state == nil {
		return StateSnapshot{FocusedMonitor: -1}
	}

	monitors := state.Monitors.Elements()
	out := StateSnapshot{
		Monitors:       make([]MonitorSnapshot, len(monitors)),
		FocusedMonitor: state.Monitors.FocusedIdx(),
		Paused:         state.Paused,
	}
	for mi, m := range monitors {
		out.Monitors[mi] = snapshotMonitor(m)
	}
	return out
}

func snapshotMonitor(m *wm.Monitor) MonitorSnapshot {
	workspaces := m.Workspaces.Elements()
	out := MonitorSnapshot{
		ID:               m.ID,
		Serial:           m.Serial,
		Size:             m.Size,
		Workspaces:       make([]WorkspaceSnapshot, len(workspaces)),
		FocusedWorkspace: m.Workspaces.FocusedIdx(),
	}
	for wi, ws := range workspaces {
		out.Workspaces[wi] = snapshotWorkspace(ws)
	}
	return out
}

func snapshotWorkspace(ws *wm.Workspace) WorkspaceSnapshot {
	containers := ws.Containers.Elements()
	out := WorkspaceSnapshot{
		Name:               ws.Name,
		Containers:         make([]ContainerSnapshot, len(containers)),
		FocusedContainer:   ws.Containers.FocusedIdx(),
		Floating:           make([]WindowSnapshot, len(ws.Floating)),
		FocusedFloatingIdx: ws.FocusedFloatingIdx,
		Monocle:            ws.Monocle,
		Maximized:          ws.Maximized != nil,
		TilingEnabled:      ws.TilingEnabled,
		ContainerPadding:   ws.ContainerPadding,
		WorkspacePadding:   ws.WorkspacePadding,
	}
	if ws.Layout != nil {
		out.Layout = ws.Layout.Name()
	}
	for ci, c := range containers {
		out.Containers[ci] = snapshotContainer(c)
	}
	for fi, w := range ws.Floating {
		out.Floating[fi] = snapshotWindow(w)
	}
	return out
}

func snapshotContainer(c *wm.Container) ContainerSnapshot {
	windows := c.Windows.Elements()
	out := ContainerSnapshot{
		ID:            c.ID,
		Windows:       make([]WindowSnapshot, len(windows)),
		FocusedIdx:    c.Windows.FocusedIdx(),
		LastKnownRect: c.LastKnownRect,
	}
	for wi, w := range windows {
		out.Windows[wi] = snapshotWindow(w)
	}
	return out
}

func snapshotWindow(w wm.Window) WindowSnapshot {
	return WindowSnapshot{
		ID:            w.ID,
		PID:           w.PID,
		Exe:           w.Exe,
		Class:         w.Class,
		Title:         w.Title,
		LastKnownRect: w.LastKnownRect,
	}
}
