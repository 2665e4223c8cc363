// Package eventsource turns raw window-system notifications and user
// commands into a single typed stream the reducer consumes, applying the
// bounded-channel and drop-when-full discipline the notification and
// reconciliation channels need to stay responsive under load.
package eventsource

import (
	"github.com/1broseidon/komotile/internal/layout"
	"github.com/1broseidon/komotile/internal/platform"
)

// Kind identifies what an Event carries.
type Kind int

const (
	// OS-observed notifications, translated from platform.RawEvent.
	KindWindowCreated Kind = iota
	KindWindowDestroyed
	KindWindowFocused
	KindWindowTitleChanged
	KindWindowMoved
	KindDisplaysChanged
	KindWindowCloaked
	KindWindowUncloaked
	KindWindowMoveResizeStart
	KindWindowMoveResizeEnd
	KindWindowMinimised
	KindMonocleRestored

	// User/automation-issued commands, translated from ipc requests.
	KindCommand
)

// CommandName enumerates the operations a Command can request.
type CommandName string

const (
	CommandFocusDirection       CommandName = "focus_direction"
	CommandMoveDirection        CommandName = "move_direction"
	CommandStackDirection       CommandName = "stack_direction"
	CommandUnstack              CommandName = "unstack"
	CommandCycleStack           CommandName = "cycle_stack"
	CommandResize               CommandName = "resize"
	CommandToggleFloat          CommandName = "toggle_float"
	CommandToggleMonocle        CommandName = "toggle_monocle"
	CommandToggleMaximize       CommandName = "toggle_maximize"
	CommandToggleTiling         CommandName = "toggle_tiling"
	CommandTogglePause          CommandName = "toggle_pause"
	CommandChangeLayout         CommandName = "change_layout"
	CommandCycleLayout          CommandName = "cycle_layout"
	CommandFlipLayout           CommandName = "flip_layout"
	CommandFocusWorkspace       CommandName = "focus_workspace"
	CommandMoveToWorkspace      CommandName = "move_to_workspace"
	CommandFocusMonitor         CommandName = "focus_monitor"
	CommandMoveToMonitor        CommandName = "move_to_monitor"
	CommandRetile               CommandName = "retile"
	CommandCloseWindow          CommandName = "close_window"
	CommandAdjustContainerPad   CommandName = "adjust_container_padding"
	CommandAdjustWorkspacePad   CommandName = "adjust_workspace_padding"
	CommandPromote              CommandName = "promote"
	CommandEnsureWorkspaces     CommandName = "ensure_workspaces"
	CommandNewWorkspace         CommandName = "new_workspace"
	CommandSetContainerPadding  CommandName = "set_container_padding"
	CommandSetWorkspacePadding  CommandName = "set_workspace_padding"
	CommandSetWorkspaceTiling   CommandName = "set_workspace_tiling"
	CommandSetWorkspaceName     CommandName = "set_workspace_name"
	CommandSetWorkspaceLayout   CommandName = "set_workspace_layout"
)

// Command is a user- or automation-issued request to change state. Only the
// fields relevant to Name are populated.
type Command struct {
	Name          CommandName
	Direction     layout.OperationDirection
	Sizing        layout.Sizing
	CycleDir      layout.CycleDirection
	LayoutName    string
	WorkspaceIdx  int
	MonitorIdx    int
	Delta         int
	WindowID      platform.WindowID
	WorkspaceName string
	Enabled       bool
	Count         int
}

// Event is the unit the reducer's event loop drains. Exactly the fields
// relevant to Kind are populated; the rest are zero.
type Event struct {
	Kind     Kind
	WindowID platform.WindowID
	Bounds   platform.Rect
	Title    string
	Command  Command
}

func fromRaw(raw platform.RawEvent) (Event, bool) {
	switch raw.Kind {
	case platform.RawWindowCreated:
		return Event{Kind: KindWindowCreated, WindowID: raw.WindowID}, true
	case platform.RawWindowDestroyed:
		return Event{Kind: KindWindowDestroyed, WindowID: raw.WindowID}, true
	case platform.RawWindowFocused:
		return Event{Kind: KindWindowFocused, WindowID: raw.WindowID}, true
	case platform.RawWindowTitleChanged:
		return Event{Kind: KindWindowTitleChanged, WindowID: raw.WindowID, Title: raw.Title}, true
	case platform.RawWindowMoved:
		return Event{Kind: KindWindowMoved, WindowID: raw.WindowID, Bounds: raw.Bounds}, true
	case platform.RawDisplaysChanged:
		return Event{Kind: KindDisplaysChanged}, true
	case platform.RawWindowCloaked:
		return Event{Kind: KindWindowCloaked, WindowID: raw.WindowID}, true
	case platform.RawWindowUncloaked:
		return Event{Kind: KindWindowUncloaked, WindowID: raw.WindowID}, true
	case platform.RawWindowMoveResizeStart:
		return Event{Kind: KindWindowMoveResizeStart, WindowID: raw.WindowID}, true
	case platform.RawWindowMoveResizeEnd:
		return Event{Kind: KindWindowMoveResizeEnd, WindowID: raw.WindowID}, true
	case platform.RawWindowMinimised:
		return Event{Kind: KindWindowMinimised, WindowID: raw.WindowID}, true
	case platform.RawMonocleRestored:
		return Event{Kind: KindMonocleRestored, WindowID: raw.WindowID}, true
	default:
		return Event{}, false
	}
}
