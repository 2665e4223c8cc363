package platform

import "context"

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Display describes a physical display and its usable work area.
type Display struct {
	ID     int
	Name   string
	Bounds Rect
	Usable Rect
}

// Window contains metadata and geometry for a top-level window.
type Window struct {
	ID     WindowID
	PID    int
	AppID  string
	Title  string
	Bounds Rect

	// HasTitlebar, ToolWindow and Cloaked feed the manageability fallback
	// predicate (wm.Decide): a window with no titlebar, or that is a tool
	// window, or that is cloaked, is rejected when no configured rule
	// matches it.
	HasTitlebar bool
	ToolWindow  bool
	Cloaked     bool
}

// RawEventKind names the window-system notifications a Backend can report.
type RawEventKind int

const (
	RawWindowCreated RawEventKind = iota
	RawWindowDestroyed
	RawWindowFocused
	RawWindowTitleChanged
	RawWindowMoved
	RawDisplaysChanged

	// RawWindowCloaked and RawWindowUncloaked report a window leaving or
	// entering visibility without being destroyed (e.g. a virtual-desktop
	// switch away from it). X11 has no literal "cloak" concept the way the
	// Windows DWM does; backends report this via _NET_WM_STATE_HIDDEN
	// transitions as the nearest analogue.
	RawWindowCloaked
	RawWindowUncloaked

	// RawWindowMoveResizeStart and RawWindowMoveResizeEnd bracket an
	// externally-driven interactive move/resize (e.g. a client requesting
	// _NET_WM_MOVERESIZE), so the reducer can suppress fighting the drag
	// with its own animated moves and then resettle the window once it ends.
	RawWindowMoveResizeStart
	RawWindowMoveResizeEnd

	// RawWindowMinimised reports a window iconifying itself (ICCCM
	// WM_STATE -> IconicState).
	RawWindowMinimised

	// RawMonocleRestored reports a previously-iconified window returning to
	// NormalState, the signal that a monocle workspace needs its view
	// reasserted against the restored window.
	RawMonocleRestored
)

// RawEvent is a single window-system notification, delivered in the order
// the backend observed it. Fields not relevant to Kind are zero.
type RawEvent struct {
	Kind     RawEventKind
	WindowID WindowID
	Bounds   Rect
	Title    string
}

// Backend abstracts window-system operations across platforms.
type Backend interface {
	Displays() ([]Display, error)
	ActiveDisplay() (Display, error)
	ActiveWindow() (WindowID, error)
	ListWindowsOnDisplay(displayID int) ([]Window, error)
	MoveResize(windowID WindowID, bounds Rect) error
	Minimize(windowID WindowID) error
	Close(windowID WindowID) error

	// Show un-hides a window previously hidden with Hide.
	Show(windowID WindowID) error
	// Hide removes a window from view without destroying it, used to hide
	// every container but the focused one within a workspace.
	Hide(windowID WindowID) error
	// FocusWindow gives windowID input focus, optionally warping the
	// cursor onto it (mouse-follows-focus).
	FocusWindow(windowID WindowID, warpCursor bool) error

	// Subscribe starts delivering RawEvents on the returned channel until
	// ctx is cancelled, at which point the channel is closed. Backends
	// drop events rather than block a slow consumer.
	Subscribe(ctx context.Context) (<-chan RawEvent, error)
}
