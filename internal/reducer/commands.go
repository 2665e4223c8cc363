package reducer

import (
	"strconv"

	"github.com/1broseidon/komotile/internal/eventsource"
	"github.com/1broseidon/komotile/internal/geometry"
	"github.com/1broseidon/komotile/internal/layout"
	"github.com/1broseidon/komotile/internal/ring"
	"github.com/1broseidon/komotile/internal/wm"
)

// dispatchCommand routes a user/automation command to its handler. Every
// handler either mutates state and retiles, or returns a reducer.Error the
// caller logs; it never panics past this function (handle's recover
// guards the whole event, including commands).
func (r *Reducer) dispatchCommand(cmd eventsource.Command) error {
	switch cmd.Name {
	case eventsource.CommandFocusDirection:
		return r.cmdFocusDirection(cmd.Direction)
	case eventsource.CommandMoveDirection:
		return r.cmdMoveDirection(cmd.Direction)
	case eventsource.CommandStackDirection:
		return r.cmdStackDirection(cmd.Direction)
	case eventsource.CommandUnstack:
		return r.cmdUnstack()
	case eventsource.CommandCycleStack:
		return r.cmdCycleStack(cmd.CycleDir)
	case eventsource.CommandResize:
		return r.cmdResize(cmd.Direction, cmd.Sizing)
	case eventsource.CommandToggleFloat:
		return r.cmdToggleFloat()
	case eventsource.CommandToggleMonocle:
		return r.cmdToggleMonocle()
	case eventsource.CommandToggleMaximize:
		return r.cmdToggleMaximize()
	case eventsource.CommandToggleTiling:
		return r.cmdToggleTiling()
	case eventsource.CommandTogglePause:
		return r.cmdTogglePause()
	case eventsource.CommandChangeLayout:
		return r.cmdChangeLayout(cmd.LayoutName)
	case eventsource.CommandCycleLayout:
		return r.cmdCycleLayout()
	case eventsource.CommandFlipLayout:
		return r.cmdFlipLayout()
	case eventsource.CommandFocusWorkspace:
		return r.cmdFocusWorkspace(cmd.WorkspaceIdx)
	case eventsource.CommandMoveToWorkspace:
		return r.cmdMoveToWorkspace(cmd.WorkspaceIdx)
	case eventsource.CommandFocusMonitor:
		return r.cmdFocusMonitor(cmd.MonitorIdx)
	case eventsource.CommandMoveToMonitor:
		return r.cmdMoveToMonitor(cmd.MonitorIdx)
	case eventsource.CommandRetile:
		return r.cmdRetile()
	case eventsource.CommandCloseWindow:
		return r.cmdCloseWindow()
	case eventsource.CommandAdjustContainerPad:
		return r.cmdAdjustContainerPad(cmd.Sizing, cmd.Delta)
	case eventsource.CommandAdjustWorkspacePad:
		return r.cmdAdjustWorkspacePad(cmd.Sizing, cmd.Delta)
	case eventsource.CommandPromote:
		return r.cmdPromote()
	case eventsource.CommandEnsureWorkspaces:
		return r.cmdEnsureWorkspaces(cmd.MonitorIdx, cmd.Count)
	case eventsource.CommandNewWorkspace:
		return r.cmdNewWorkspace(cmd.MonitorIdx, cmd.WorkspaceName)
	case eventsource.CommandSetContainerPadding:
		return r.cmdSetContainerPadding(cmd.MonitorIdx, cmd.WorkspaceIdx, cmd.Delta)
	case eventsource.CommandSetWorkspacePadding:
		return r.cmdSetWorkspacePadding(cmd.MonitorIdx, cmd.WorkspaceIdx, cmd.Delta)
	case eventsource.CommandSetWorkspaceTiling:
		return r.cmdSetWorkspaceTiling(cmd.MonitorIdx, cmd.WorkspaceIdx, cmd.Enabled)
	case eventsource.CommandSetWorkspaceName:
		return r.cmdSetWorkspaceName(cmd.MonitorIdx, cmd.WorkspaceIdx, cmd.WorkspaceName)
	case eventsource.CommandSetWorkspaceLayout:
		return r.cmdSetWorkspaceLayout(cmd.MonitorIdx, cmd.WorkspaceIdx, cmd.LayoutName)
	default:
		return newErr(InvalidArgument, "unknown command %q", cmd.Name)
	}
}

func (r *Reducer) focused() (*wm.Monitor, *wm.Workspace, error) {
	m, ok := r.state.FocusedMonitor()
	if !ok {
		return nil, nil, newErr(NotFound, "no focused monitor")
	}
	w, ok := m.FocusedWorkspace()
	if !ok {
		return nil, nil, newErr(NotFound, "monitor %d has no focused workspace", m.ID)
	}
	return m, w, nil
}

func (r *Reducer) cmdFocusDirection(dir layout.OperationDirection) error {
	_, ws, err := r.focused()
	if err != nil {
		return err
	}
	idx := ws.Containers.FocusedIdx()
	target, ok := layout.Destination(ws.Layout, ws.FlipAxis, dir, idx, ws.Containers.Len())
	if !ok {
		return newErr(Conflict, "layout does not admit a container in direction %s", dir)
	}
	ws.Containers.Focus(target)
	return nil
}

func (r *Reducer) cmdMoveDirection(dir layout.OperationDirection) error {
	monitor, ws, err := r.focused()
	if err != nil {
		return err
	}
	idx := ws.Containers.FocusedIdx()
	target, ok := layout.Destination(ws.Layout, ws.FlipAxis, dir, idx, ws.Containers.Len())
	if !ok {
		return newErr(Conflict, "layout does not admit a move in direction %s", dir)
	}
	ws.Containers.Swap(idx, target)
	ws.Containers.Focus(target)
	r.retile(monitor, ws)
	return nil
}

func (r *Reducer) cmdStackDirection(dir layout.OperationDirection) error {
	monitor, ws, err := r.focused()
	if err != nil {
		return err
	}
	idx := ws.Containers.FocusedIdx()
	target, ok := layout.Destination(ws.Layout, ws.FlipAxis, dir, idx, ws.Containers.Len())
	if !ok {
		return newErr(Conflict, "layout does not admit stacking in direction %s", dir)
	}
	source, _ := ws.Containers.At(idx)
	dest, _ := ws.Containers.At(target)
	win, ok := source.FocusedWindow()
	if !ok {
		return newErr(NotFound, "focused container has no window to stack")
	}
	source.Windows.RemoveFocused()
	dest.Windows.Append(win)
	dest.Windows.Focus(dest.Windows.Len() - 1)
	if source.IsEmpty() {
		ws.Containers.Remove(idx)
	}
	newIdx := ws.Containers.IndexFunc(func(c *wm.Container) bool { return c == dest })
	if newIdx >= 0 {
		ws.Containers.Focus(newIdx)
	}
	r.retile(monitor, ws)
	return nil
}

func (r *Reducer) cmdUnstack() error {
	monitor, ws, err := r.focused()
	if err != nil {
		return err
	}
	c, ok := ws.FocusedContainer()
	if !ok {
		return newErr(NotFound, "no focused container")
	}
	if c.Windows.Len() < 2 {
		return newErr(Conflict, "focused container has only one window")
	}
	win, _ := c.Windows.RemoveFocused()
	newC := wm.NewContainer(r.state.NextContainerID(), win)
	idx := ws.Containers.IndexFunc(func(candidate *wm.Container) bool { return candidate == c })
	ws.Containers.Insert(idx+1, newC)
	ws.Containers.Focus(idx + 1)
	r.retile(monitor, ws)
	return nil
}

func (r *Reducer) cmdCycleStack(cycleDir layout.CycleDirection) error {
	monitor, ws, err := r.focused()
	if err != nil {
		return err
	}
	c, ok := ws.FocusedContainer()
	if !ok {
		return newErr(NotFound, "no focused container")
	}
	dir := ring.CycleNext
	if cycleDir == layout.Previous {
		dir = ring.CyclePrevious
	}
	next, ok := ring.CycleNextIdx(c.Windows, c.Windows.FocusedIdx(), dir)
	if !ok {
		return newErr(Conflict, "container has no windows to cycle")
	}
	c.Windows.Focus(next)
	r.retile(monitor, ws)
	return nil
}

func (r *Reducer) cmdResize(dir layout.OperationDirection, sizing layout.Sizing) error {
	monitor, ws, err := r.focused()
	if err != nil {
		return err
	}
	c, ok := ws.FocusedContainer()
	if !ok {
		return newErr(NotFound, "no focused container")
	}
	if dl, ok := ws.Layout.(interface{ SupportsResize() bool }); !ok || !dl.SupportsResize() {
		return newErr(Conflict, "layout %s does not support resize", ws.Layout.Name())
	}
	resizable, ok := ws.Layout.(interface {
		Resize(unaltered geometry.Rect, resize *geometry.Rect, edge layout.OperationDirection, sizing layout.Sizing, delta int) *geometry.Rect
	})
	if !ok {
		return newErr(Conflict, "layout %s does not implement resize", ws.Layout.Name())
	}
	c.ResizeDelta = resizable.Resize(c.LastKnownRect, c.ResizeDelta, dir, sizing, r.resizeStep())
	r.retile(monitor, ws)
	return nil
}

func (r *Reducer) cmdToggleFloat() error {
	monitor, ws, err := r.focused()
	if err != nil {
		return err
	}

	if floatingWin, ok := ws.FocusedFloatingWindow(); ok {
		ws.RemoveWindowByID(floatingWin.ID)
		ws.AddWindow(r.state.NextContainerID(), floatingWin, false)
		ws.Containers.Focus(0)
		r.retile(monitor, ws)
		return nil
	}

	c, ok := ws.FocusedContainer()
	if !ok {
		return newErr(NotFound, "no focused container")
	}
	win, ok := c.FocusedWindow()
	if !ok {
		return newErr(NotFound, "focused container has no window")
	}
	ws.RemoveWindowByID(win.ID)
	ws.AddWindow(r.state.NextContainerID(), win, true)
	r.retile(monitor, ws)
	return nil
}

func (r *Reducer) cmdToggleMonocle() error {
	monitor, ws, err := r.focused()
	if err != nil {
		return err
	}
	ws.Monocle = !ws.Monocle
	r.retile(monitor, ws)
	return nil
}

func (r *Reducer) cmdToggleMaximize() error {
	monitor, ws, err := r.focused()
	if err != nil {
		return err
	}
	if ws.Maximized != nil {
		ws.Maximized = nil
		r.retile(monitor, ws)
		return nil
	}
	c, ok := ws.FocusedContainer()
	if !ok {
		return newErr(NotFound, "no focused container")
	}
	ws.Maximized = c
	r.retile(monitor, ws)
	return nil
}

func (r *Reducer) cmdToggleTiling() error {
	_, ws, err := r.focused()
	if err != nil {
		return err
	}
	ws.TilingEnabled = !ws.TilingEnabled
	return nil
}

func (r *Reducer) cmdTogglePause() error {
	r.state.Paused = !r.state.Paused
	return nil
}

func (r *Reducer) cmdChangeLayout(name string) error {
	monitor, ws, err := r.focused()
	if err != nil {
		return err
	}
	l, rerr := r.cfg.ResolveLayout(name)
	if rerr != nil {
		return newErr(InvalidArgument, "%v", rerr)
	}
	ws.Layout = l
	r.retile(monitor, ws)
	return nil
}

func (r *Reducer) cmdCycleLayout() error {
	monitor, ws, err := r.focused()
	if err != nil {
		return err
	}
	dl, ok := ws.Layout.(layout.DefaultLayout)
	if !ok {
		return newErr(Conflict, "custom layouts do not cycle")
	}
	ws.Layout = dl.CycleNext()
	r.retile(monitor, ws)
	return nil
}

func (r *Reducer) cmdFlipLayout() error {
	monitor, ws, err := r.focused()
	if err != nil {
		return err
	}
	var next geometry.Axis
	switch {
	case ws.FlipAxis == nil:
		next = geometry.AxisHorizontal
	case *ws.FlipAxis == geometry.AxisHorizontal:
		next = geometry.AxisVertical
	case *ws.FlipAxis == geometry.AxisVertical:
		next = geometry.AxisHorizontalAndVertical
	default:
		ws.FlipAxis = nil
		r.retile(monitor, ws)
		return nil
	}
	ws.FlipAxis = &next
	r.retile(monitor, ws)
	return nil
}

func (r *Reducer) cmdFocusWorkspace(idx int) error {
	monitor, ok := r.state.FocusedMonitor()
	if !ok {
		return newErr(NotFound, "no focused monitor")
	}
	if idx < 0 || idx >= monitor.Workspaces.Len() {
		return newErr(InvalidArgument, "workspace index %d out of range", idx)
	}
	monitor.FocusWorkspace(idx)
	if ws, ok := monitor.FocusedWorkspace(); ok {
		r.retile(monitor, ws)
	}
	return nil
}

func (r *Reducer) cmdMoveToWorkspace(idx int) error {
	monitor, ws, err := r.focused()
	if err != nil {
		return err
	}
	if idx < 0 || idx >= monitor.Workspaces.Len() {
		return newErr(InvalidArgument, "workspace index %d out of range", idx)
	}
	c, ok := ws.FocusedContainer()
	if !ok {
		return newErr(NotFound, "no focused container")
	}
	win, ok := c.FocusedWindow()
	if !ok {
		return newErr(NotFound, "focused container has no window")
	}
	dest, _ := monitor.Workspaces.At(idx)
	ws.RemoveWindowByID(win.ID)
	dest.AddWindow(r.state.NextContainerID(), win, false)
	r.retile(monitor, ws)
	if dest == ws {
		return nil
	}
	r.retile(monitor, dest)
	return nil
}

func (r *Reducer) cmdFocusMonitor(idx int) error {
	if idx < 0 || idx >= r.state.Monitors.Len() {
		return newErr(InvalidArgument, "monitor index %d out of range", idx)
	}
	r.state.Monitors.Focus(idx)
	if m, ok := r.state.FocusedMonitor(); ok {
		if ws, ok := m.FocusedWorkspace(); ok {
			r.retile(m, ws)
		}
	}
	return nil
}

func (r *Reducer) cmdMoveToMonitor(idx int) error {
	monitor, ws, err := r.focused()
	if err != nil {
		return err
	}
	if idx < 0 || idx >= r.state.Monitors.Len() {
		return newErr(InvalidArgument, "monitor index %d out of range", idx)
	}
	destMonitor, _ := r.state.Monitors.At(idx)
	destWs, ok := destMonitor.FocusedWorkspace()
	if !ok {
		return newErr(NotFound, "destination monitor has no focused workspace")
	}
	c, ok := ws.FocusedContainer()
	if !ok {
		return newErr(NotFound, "no focused container")
	}
	win, ok := c.FocusedWindow()
	if !ok {
		return newErr(NotFound, "focused container has no window")
	}
	ws.RemoveWindowByID(win.ID)
	destWs.AddWindow(r.state.NextContainerID(), win, false)
	r.retile(monitor, ws)
	r.retile(destMonitor, destWs)
	return nil
}

func (r *Reducer) cmdRetile() error {
	monitor, ws, err := r.focused()
	if err != nil {
		return err
	}
	r.retile(monitor, ws)
	return nil
}

func (r *Reducer) cmdCloseWindow() error {
	_, ws, err := r.focused()
	if err != nil {
		return err
	}
	c, ok := ws.FocusedContainer()
	if !ok {
		return newErr(NotFound, "no focused container")
	}
	win, ok := c.FocusedWindow()
	if !ok {
		return newErr(NotFound, "focused container has no window")
	}
	if cerr := r.backend.Close(win.ID); cerr != nil {
		return &Error{Kind: Platform, Err: cerr}
	}
	return nil
}

func (r *Reducer) cmdAdjustContainerPad(sizing layout.Sizing, delta int) error {
	monitor, ws, err := r.focused()
	if err != nil {
		return err
	}
	ws.ContainerPadding += signedDelta(sizing, delta)
	if ws.ContainerPadding < 0 {
		ws.ContainerPadding = 0
	}
	r.retile(monitor, ws)
	return nil
}

func (r *Reducer) cmdAdjustWorkspacePad(sizing layout.Sizing, delta int) error {
	monitor, ws, err := r.focused()
	if err != nil {
		return err
	}
	ws.WorkspacePadding += signedDelta(sizing, delta)
	if ws.WorkspacePadding < 0 {
		ws.WorkspacePadding = 0
	}
	r.retile(monitor, ws)
	return nil
}

func signedDelta(sizing layout.Sizing, delta int) int {
	if sizing == layout.Decrease {
		return -delta
	}
	return delta
}

// workspaceAt resolves an explicit (monitor, workspace) index pair, used by
// the per-index tuning commands that address a workspace regardless of
// which one currently has focus.
func (r *Reducer) workspaceAt(monitorIdx, workspaceIdx int) (*wm.Monitor, *wm.Workspace, error) {
	if monitorIdx < 0 || monitorIdx >= r.state.Monitors.Len() {
		return nil, nil, newErr(InvalidArgument, "monitor index %d out of range", monitorIdx)
	}
	monitor, _ := r.state.Monitors.At(monitorIdx)
	if workspaceIdx < 0 || workspaceIdx >= monitor.Workspaces.Len() {
		return nil, nil, newErr(InvalidArgument, "workspace index %d out of range", workspaceIdx)
	}
	ws, _ := monitor.Workspaces.At(workspaceIdx)
	return monitor, ws, nil
}

// cmdPromote swaps the focused container into the primary (index 0)
// position, keeping it focused.
func (r *Reducer) cmdPromote() error {
	monitor, ws, err := r.focused()
	if err != nil {
		return err
	}
	idx := ws.Containers.FocusedIdx()
	if ws.Containers.Len() < 2 {
		return newErr(Conflict, "workspace has fewer than two containers")
	}
	if idx == 0 {
		return newErr(Conflict, "focused container is already primary")
	}
	ws.Containers.Swap(0, idx)
	ws.Containers.Focus(0)
	r.retile(monitor, ws)
	return nil
}

func (r *Reducer) newWorkspace(name string) (*wm.Workspace, error) {
	l, err := r.cfg.ResolveLayout(r.cfg.DefaultLayout)
	if err != nil {
		return nil, newErr(InvalidArgument, "%v", err)
	}
	ws := wm.NewWorkspace(name, l)
	ws.WorkspacePadding = r.cfg.DefaultWorkspacePadding
	ws.ContainerPadding = r.cfg.DefaultContainerPadding
	return ws, nil
}

func (r *Reducer) cmdEnsureWorkspaces(monitorIdx, count int) error {
	if monitorIdx < 0 || monitorIdx >= r.state.Monitors.Len() {
		return newErr(InvalidArgument, "monitor index %d out of range", monitorIdx)
	}
	monitor, _ := r.state.Monitors.At(monitorIdx)
	for monitor.Workspaces.Len() < count {
		ws, err := r.newWorkspace(strconv.Itoa(monitor.Workspaces.Len() + 1))
		if err != nil {
			return err
		}
		monitor.Workspaces.Append(ws)
	}
	return nil
}

func (r *Reducer) cmdNewWorkspace(monitorIdx int, name string) error {
	if monitorIdx < 0 || monitorIdx >= r.state.Monitors.Len() {
		return newErr(InvalidArgument, "monitor index %d out of range", monitorIdx)
	}
	monitor, _ := r.state.Monitors.At(monitorIdx)
	if name == "" {
		name = strconv.Itoa(monitor.Workspaces.Len() + 1)
	}
	ws, err := r.newWorkspace(name)
	if err != nil {
		return err
	}
	monitor.Workspaces.Append(ws)
	return nil
}

func (r *Reducer) cmdSetContainerPadding(monitorIdx, workspaceIdx, px int) error {
	monitor, ws, err := r.workspaceAt(monitorIdx, workspaceIdx)
	if err != nil {
		return err
	}
	if px < 0 {
		px = 0
	}
	ws.ContainerPadding = px
	r.retile(monitor, ws)
	return nil
}

func (r *Reducer) cmdSetWorkspacePadding(monitorIdx, workspaceIdx, px int) error {
	monitor, ws, err := r.workspaceAt(monitorIdx, workspaceIdx)
	if err != nil {
		return err
	}
	if px < 0 {
		px = 0
	}
	ws.WorkspacePadding = px
	r.retile(monitor, ws)
	return nil
}

func (r *Reducer) cmdSetWorkspaceTiling(monitorIdx, workspaceIdx int, enabled bool) error {
	_, ws, err := r.workspaceAt(monitorIdx, workspaceIdx)
	if err != nil {
		return err
	}
	ws.TilingEnabled = enabled
	return nil
}

func (r *Reducer) cmdSetWorkspaceName(monitorIdx, workspaceIdx int, name string) error {
	_, ws, err := r.workspaceAt(monitorIdx, workspaceIdx)
	if err != nil {
		return err
	}
	if name == "" {
		return newErr(InvalidArgument, "workspace name must not be empty")
	}
	ws.Name = name
	return nil
}

func (r *Reducer) cmdSetWorkspaceLayout(monitorIdx, workspaceIdx int, layoutName string) error {
	monitor, ws, err := r.workspaceAt(monitorIdx, workspaceIdx)
	if err != nil {
		return err
	}
	l, rerr := r.cfg.ResolveLayout(layoutName)
	if rerr != nil {
		return newErr(InvalidArgument, "%v", rerr)
	}
	ws.Layout = l
	r.retile(monitor, ws)
	return nil
}
