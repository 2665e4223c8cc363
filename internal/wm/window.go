// Package wm holds the state tree the reducer owns: windows grouped into
// containers, containers arranged on workspaces, workspaces cycling on
// monitors, monitors forming the process-wide State. Every level is a
// ring.Ring so focus tracking is uniform top to bottom.
package wm

import (
	"github.com/1broseidon/komotile/internal/geometry"
	"github.com/1broseidon/komotile/internal/platform"
)

// Window is a single top-level window known to the engine.
type Window struct {
	ID    platform.WindowID
	PID   int
	Exe   string
	Class string
	Title string
	Path  string

	// LastKnownRect is the rect the platform backend last reported for
	// this window, used to detect externally-driven moves/resizes that
	// the reducer did not itself request.
	LastKnownRect geometry.Rect

	// BorderOverflow mirrors the matched ApplicationRule's BorderOverflow
	// flag (config.ApplicationRule), telling the border overlay driver to
	// add its overflow fudge when framing this window.
	BorderOverflow bool

	// HasTitlebar, ToolWindow and Cloaked mirror platform.Window's fields of
	// the same name, consulted by Decide's manageability fallback and kept
	// on the window record since Cloak/Uncloak events update them after
	// creation.
	HasTitlebar bool
	ToolWindow  bool
	Cloaked     bool
}

// WindowFromPlatform builds a Window from a platform.Window. The platform
// layer only exposes one application identifier (AppID) rather than X11's
// separate WM_CLASS instance/class pair, so Exe and Class both take it;
// Path is left blank (no platform capability resolves a window's backing
// executable path).
func WindowFromPlatform(pw platform.Window) Window {
	return Window{
		ID:            pw.ID,
		PID:           pw.PID,
		Exe:           pw.AppID,
		Class:         pw.AppID,
		Title:         pw.Title,
		LastKnownRect: pw.Bounds.ToGeometry(),
		HasTitlebar:   pw.HasTitlebar,
		ToolWindow:    pw.ToolWindow,
		Cloaked:       pw.Cloaked,
	}
}

