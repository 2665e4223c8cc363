package wm

import (
	"fmt"

	"github.com/1broseidon/komotile/internal/platform"
	"github.com/1broseidon/komotile/internal/ring"
)

// State is the engine's whole process-wide tree: every monitor, its
// workspaces, their containers and windows. The reducer is the sole owner
// of a *State value and guards every access with one mutex (a single-writer
// rule); State itself has no locking of its own.
type State struct {
	Monitors *ring.Ring[*Monitor]

	// Paused suspends the retile pipeline: events are still recorded (so
	// nothing is lost) but no window is moved until resumed.
	Paused bool

	nextContainerID uint64
}

// NewState returns an empty State with no monitors.
func NewState() *State {
	return &State{Monitors: ring.New[*Monitor]()}
}

// NextContainerID returns a process-unique container identifier.
func (s *State) NextContainerID() uint64 {
	s.nextContainerID++
	return s.nextContainerID
}

// FocusedMonitor returns the currently focused monitor, if any.
func (s *State) FocusedMonitor() (*Monitor, bool) {
	if s == nil {
		return nil, false
	}
	return s.Monitors.Focused()
}

// FocusedWorkspace returns the focused workspace of the focused monitor.
func (s *State) FocusedWorkspace() (*Workspace, bool) {
	m, ok := s.FocusedMonitor()
	if !ok {
		return nil, false
	}
	return m.FocusedWorkspace()
}

// MonitorForWorkspace finds the monitor currently hosting workspace ws, by
// identity, along with the workspace's index within that monitor's ring.
func (s *State) MonitorForWorkspace(ws *Workspace) (*Monitor, int, bool) {
	for _, m := range s.Monitors.Elements() {
		idx := m.Workspaces.IndexFunc(func(candidate *Workspace) bool { return candidate == ws })
		if idx >= 0 {
			return m, idx, true
		}
	}
	return nil, 0, false
}

// ContainerForWindow locates the container holding a window by ID, and the
// workspace/monitor that own it. Returns ok=false if the window is not
// tracked anywhere (including any workspace's floating list, which callers
// distinguish by checking FloatingWindow first).
func (s *State) ContainerForWindow(id platform.WindowID) (m *Monitor, w *Workspace, c *Container, ok bool) {
	for _, mon := range s.Monitors.Elements() {
		for _, ws := range mon.Workspaces.Elements() {
			for _, container := range ws.Containers.Elements() {
				if idx := container.Windows.IndexFunc(func(win Window) bool { return win.ID == id }); idx >= 0 {
					return mon, ws, container, true
				}
			}
		}
	}
	return nil, nil, nil, false
}

// Validate checks the structural invariants the reducer relies on: every
// monitor has at least one workspace, every container has at least one
// window, and no window ID appears twice across the whole tree.
func (s *State) Validate() error {
	seen := make(map[platform.WindowID]bool)
	for mi, m := range s.Monitors.Elements() {
		if m.Workspaces.Len() == 0 {
			return fmt.Errorf("monitor %d (%s) has no workspaces", mi, m.Serial)
		}
		for wi, ws := range m.Workspaces.Elements() {
			for ci, c := range ws.Containers.Elements() {
				if c.IsEmpty() {
					return fmt.Errorf("monitor %d workspace %d (%s) container %d is empty", mi, wi, ws.Name, ci)
				}
				for _, win := range c.Windows.Elements() {
					if seen[win.ID] {
						return fmt.Errorf("window %d appears in more than one container", win.ID)
					}
					seen[win.ID] = true
				}
			}
			for _, win := range ws.Floating {
				if seen[win.ID] {
					return fmt.Errorf("window %d appears in both a container and a floating list", win.ID)
				}
				seen[win.ID] = true
			}
		}
	}
	return nil
}
