package reducer

import (
	"github.com/1broseidon/komotile/internal/platform"
	"github.com/1broseidon/komotile/internal/wm"
)

// This file implements eventsource.FocusSyncer and eventsource.FocusApplier
// so the workspace reconciliator and focus notifier can drive the reducer
// without it importing eventsource's consumer-side types.

// FocusedMonitorWorkspace reports the currently focused monitor/workspace
// indices, or (-1, -1) if none are focused (no monitors at all).
func (r *Reducer) FocusedMonitorWorkspace() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.state.FocusedMonitor()
	if !ok {
		return -1, -1
	}
	monitorIdx := r.state.Monitors.IndexFunc(func(candidate *wm.Monitor) bool { return candidate == m })
	workspaceIdx := m.Workspaces.FocusedIdx()
	return monitorIdx, workspaceIdx
}

// SyncFocusTo switches the process-wide focus to the given monitor and
// workspace indices and retiles it, completing the deferred work from a
// cross-workspace OS focus event.
func (r *Reducer) SyncFocusTo(monitorIdx, workspaceIdx int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if monitorIdx < 0 || monitorIdx >= r.state.Monitors.Len() {
		return newErr(NotFound, "monitor index %d out of range", monitorIdx)
	}
	r.state.Monitors.Focus(monitorIdx)
	monitor, _ := r.state.FocusedMonitor()
	if workspaceIdx < 0 || workspaceIdx >= monitor.Workspaces.Len() {
		return newErr(NotFound, "workspace index %d out of range", workspaceIdx)
	}
	monitor.FocusWorkspace(workspaceIdx)

	ws, _ := monitor.FocusedWorkspace()
	r.retile(monitor, ws)
	r.publish()
	return nil
}

// FocusWindowByID locates windowID in the tree and focuses its container
// (the alt-tab re-focus path), without touching which workspace is shown.
func (r *Reducer) FocusWindowByID(id platform.WindowID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ws, container, found := r.state.ContainerForWindow(id)
	if !found {
		return newErr(NotFound, "window %d not found", id)
	}
	idx := ws.Containers.IndexFunc(func(c *wm.Container) bool { return c == container })
	if idx >= 0 {
		ws.Containers.Focus(idx)
	}
	return nil
}

// ApplyFocus gives windowID platform input focus, implementing
// eventsource.FocusApplier for the focus notifier.
func (r *Reducer) ApplyFocus(id platform.WindowID, moveCursor bool) error {
	if err := r.backend.FocusWindow(id, moveCursor); err != nil {
		return &Error{Kind: Platform, Err: err}
	}
	return nil
}
