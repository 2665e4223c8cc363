package reducer

import (
	"github.com/1broseidon/komotile/internal/platform"
	"github.com/1broseidon/komotile/internal/ring"
	"github.com/1broseidon/komotile/internal/wm"
)

// lookupWindow finds a freshly-created window's metadata by scanning every
// display. The backend has no single "describe window by id" call, only
// per-display listings, so a new window is found wherever it currently
// lives.
func (r *Reducer) lookupWindow(id platform.WindowID) (platform.Window, bool) {
	displays, err := r.backend.Displays()
	if err != nil {
		r.logger.Warn("failed to list displays while locating new window", "error", err, "window_id", id)
		return platform.Window{}, false
	}
	for _, d := range displays {
		wins, err := r.backend.ListWindowsOnDisplay(d.ID)
		if err != nil {
			continue
		}
		for _, w := range wins {
			if w.ID == id {
				return w, true
			}
		}
	}
	return platform.Window{}, false
}

// handleWindowCreated applies the manageability predicate to a newly
// observed window and, if accepted, places it in the focused workspace.
func (r *Reducer) handleWindowCreated(id platform.WindowID) {
	if _, _, _, found := r.state.ContainerForWindow(id); found {
		return
	}

	pw, ok := r.lookupWindow(id)
	if !ok {
		r.logger.Warn("new window vanished before it could be placed", "window_id", id)
		return
	}
	win := wm.WindowFromPlatform(pw)

	decision := wm.Decide(r.cfg.ApplicationRules, win)
	if decision.Ignore {
		return
	}
	win.BorderOverflow = decision.BorderOverflow

	monitor, ok := r.state.FocusedMonitor()
	if !ok {
		r.logger.Warn("no focused monitor to place new window on", "window_id", id)
		return
	}
	workspace, ok := monitor.FocusedWorkspace()
	if !ok {
		r.logger.Warn("no focused workspace to place new window on", "window_id", id)
		return
	}

	workspace.AddWindow(r.state.NextContainerID(), win, decision.Float)
	if !decision.Float {
		r.retile(monitor, workspace)
	}
}

func (r *Reducer) handleWindowDestroyed(id platform.WindowID) {
	monitor, workspace, _, found := r.state.ContainerForWindow(id)
	if !found {
		r.removeFloating(id)
		return
	}
	workspace.RemoveWindowByID(id)
	r.retile(monitor, workspace)
}

// removeFloating searches every workspace's floating list for id, since
// ContainerForWindow only searches tiled containers.
func (r *Reducer) removeFloating(id platform.WindowID) (*wm.Workspace, bool) {
	for _, m := range r.state.Monitors.Elements() {
		for _, ws := range m.Workspaces.Elements() {
			if ws.RemoveWindowByID(id) {
				return ws, true
			}
		}
	}
	return nil, false
}

// handleWindowFocused updates the tree's focused indices to match an
// OS-reported focus change. If this crosses a workspace or monitor
// boundary, the change is deferred to the reconciliator rather than
// applied inline, to avoid reentrant mutex acquisition from an OS callback.
func (r *Reducer) handleWindowFocused(id platform.WindowID) {
	monitor, workspace, container, found := r.state.ContainerForWindow(id)
	if !found {
		r.handleFloatingWindowFocused(id)
		return
	}

	curMonitor, _ := r.state.FocusedMonitor()
	curWorkspace, _ := curMonitor.FocusedWorkspace()
	if curMonitor != monitor || curWorkspace != workspace {
		monitorIdx := r.state.Monitors.IndexFunc(func(m *wm.Monitor) bool { return m == monitor })
		workspaceIdx := monitor.Workspaces.IndexFunc(func(w *wm.Workspace) bool { return w == workspace })
		if monitorIdx >= 0 && workspaceIdx >= 0 && r.recon != nil {
			r.recon.Notify(monitorIdx, workspaceIdx)
		}
		return
	}

	idx := workspace.Containers.IndexFunc(func(c *wm.Container) bool { return c == container })
	if idx >= 0 {
		workspace.Containers.Focus(idx)
	}
	winIdx := container.Windows.IndexFunc(func(w wm.Window) bool { return w.ID == id })
	if winIdx >= 0 {
		container.Windows.Focus(winIdx)
	}
}

// handleFloatingWindowFocused records which floating window last had OS
// focus, since ToggleFloat on a floating window needs to find it without a
// container to key off of.
func (r *Reducer) handleFloatingWindowFocused(id platform.WindowID) {
	for _, m := range r.state.Monitors.Elements() {
		for _, ws := range m.Workspaces.Elements() {
			for i, win := range ws.Floating {
				if win.ID == id {
					ws.FocusedFloatingIdx = i
					return
				}
			}
		}
	}
}

func (r *Reducer) handleTitleChanged(id platform.WindowID, title string) {
	_, _, container, found := r.state.ContainerForWindow(id)
	if !found {
		return
	}
	idx := container.Windows.IndexFunc(func(w wm.Window) bool { return w.ID == id })
	if idx < 0 {
		return
	}
	if p := container.Windows.AtPtr(idx); p != nil {
		p.Title = title
	}
}

// handleWindowCloaked marks a tracked window cloaked and removes it from
// view without touching the tree: cloaking (a virtual-desktop switch away
// from the window on the platform this was modelled on) is a presentation
// change, not a structural one, so no retile follows.
func (r *Reducer) handleWindowCloaked(id platform.WindowID) {
	_, _, container, found := r.state.ContainerForWindow(id)
	if !found {
		return
	}
	idx := container.Windows.IndexFunc(func(w wm.Window) bool { return w.ID == id })
	if idx >= 0 {
		if p := container.Windows.AtPtr(idx); p != nil {
			p.Cloaked = true
		}
	}
	if err := r.backend.Hide(id); err != nil {
		r.logger.Warn("failed to hide cloaked window", "error", err, "window_id", id)
	}
}

// handleWindowUncloaked clears the cloaked flag and retiles the window's
// workspace, letting the normal focused-window show/hide convention decide
// whether the window reappears.
func (r *Reducer) handleWindowUncloaked(id platform.WindowID) {
	monitor, workspace, container, found := r.state.ContainerForWindow(id)
	if !found {
		return
	}
	idx := container.Windows.IndexFunc(func(w wm.Window) bool { return w.ID == id })
	if idx >= 0 {
		if p := container.Windows.AtPtr(idx); p != nil {
			p.Cloaked = false
		}
	}
	r.retile(monitor, workspace)
}

// handleMoveResizeStart records that an interactive drag has begun on a
// window. It is intentionally a no-op: the point is that the reducer does
// not fight the drag with an animated move while it is in progress (mirrors
// how handle's KindWindowMoved case defers to the next structural event).
func (r *Reducer) handleMoveResizeStart(id platform.WindowID) {
	r.logger.Debug("move/resize started", "window_id", id)
}

// handleMoveResizeEnd resettles a window once an interactive drag ends,
// snapping it back to its container's already-computed rect. The rect
// itself did not change, so retile's diff-against-last-known-rect would
// otherwise skip re-applying it; this forces the snap-back explicitly
// before running retile for its show/hide side effects. Floating windows
// bypass the tree and are left at their dragged position.
func (r *Reducer) handleMoveResizeEnd(id platform.WindowID) {
	monitor, workspace, container, found := r.state.ContainerForWindow(id)
	if !found {
		return
	}
	if win, ok := container.FocusedWindow(); ok && win.ID == id {
		r.applyRect(id, container.LastKnownRect)
	}
	r.retile(monitor, workspace)
}

// handleWindowMinimised responds to a window iconifying itself. If it was
// the focused window of its container, focus advances to another window in
// the same container so the tile does not go blank while one is available;
// the container otherwise keeps its place in the layout until the window
// is restored.
func (r *Reducer) handleWindowMinimised(id platform.WindowID) {
	monitor, workspace, container, found := r.state.ContainerForWindow(id)
	if !found {
		return
	}
	if err := r.backend.Hide(id); err != nil {
		r.logger.Warn("failed to hide minimised window", "error", err, "window_id", id)
	}
	if win, ok := container.FocusedWindow(); ok && win.ID == id && container.Windows.Len() > 1 {
		idx := container.Windows.IndexFunc(func(w wm.Window) bool { return w.ID == id })
		next, ok := ring.CycleNextIdx(container.Windows, idx, ring.CycleNext)
		if ok {
			container.Windows.Focus(next)
		}
	}
	r.retile(monitor, workspace)
}

// handleMonocleRestored responds to a previously-iconified window returning
// to NormalState: its workspace's view (in particular a monocle or
// maximized layout) needs to be reasserted against the restored window.
func (r *Reducer) handleMonocleRestored(id platform.WindowID) {
	monitor, workspace, _, found := r.state.ContainerForWindow(id)
	if !found {
		return
	}
	r.retile(monitor, workspace)
}

func (r *Reducer) updateLastKnownRect(id platform.WindowID, bounds platform.Rect) {
	_, _, container, found := r.state.ContainerForWindow(id)
	if found {
		idx := container.Windows.IndexFunc(func(w wm.Window) bool { return w.ID == id })
		if idx >= 0 {
			if p := container.Windows.AtPtr(idx); p != nil {
				p.LastKnownRect = bounds.ToGeometry()
			}
		}
		return
	}

	for _, m := range r.state.Monitors.Elements() {
		for _, ws := range m.Workspaces.Elements() {
			for i := range ws.Floating {
				if ws.Floating[i].ID == id {
					ws.Floating[i].LastKnownRect = bounds.ToGeometry()
					return
				}
			}
		}
	}
}

// handleDisplaysChanged reconciles the monitor ring against the platform's
// current display list, matching monitors to displays by ID. Known
// monitors have their size refreshed and new displays gain a monitor with
// an empty default workspace. Monitors whose display disappeared are
// removed, and their workspaces are appended to the remaining monitor
// closest by index (the one before it, or the first); the last remaining
// monitor is never removed.
func (r *Reducer) handleDisplaysChanged() {
	displays, err := r.backend.Displays()
	if err != nil {
		r.logger.Warn("failed to refresh displays", "error", err)
		return
	}
	if len(displays) == 0 {
		return
	}

	existing := make(map[int]*wm.Monitor)
	for _, m := range r.state.Monitors.Elements() {
		existing[m.ID] = m
	}

	present := make(map[int]bool, len(displays))
	for _, d := range displays {
		present[d.ID] = true
		if m, ok := existing[d.ID]; ok {
			m.Size = d.Bounds.ToGeometry()
			continue
		}
		m := wm.NewMonitor(d.ID, d.Name, d.Bounds.ToGeometry())
		layoutName := r.cfg.DefaultLayout
		l, err := r.cfg.ResolveLayout(layoutName)
		if err != nil {
			r.logger.Warn("default layout failed to resolve for new monitor", "error", err)
			continue
		}
		ws := wm.NewWorkspace("1", l)
		ws.WorkspacePadding = r.cfg.DefaultWorkspacePadding
		ws.ContainerPadding = r.cfg.DefaultContainerPadding
		m.Workspaces.Append(ws)
		r.state.Monitors.Append(m)
	}

	for i := r.state.Monitors.Len() - 1; i >= 0 && r.state.Monitors.Len() > 1; i-- {
		gone, _ := r.state.Monitors.At(i)
		if present[gone.ID] {
			continue
		}
		r.state.Monitors.Remove(i)
		target, _ := r.state.Monitors.At(max(i-1, 0))
		for _, ws := range gone.Workspaces.Elements() {
			target.Workspaces.Append(ws)
		}
	}
}
