//go:build linux

package platform

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

// Show maps a window, reversing a prior Hide.
func (b *LinuxBackend) Show(windowID WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	if err := xproto.MapWindowChecked(conn.XUtil.Conn(), xproto.Window(windowID)).Check(); err != nil {
		return fmt.Errorf("failed to map window %d: %w", windowID, err)
	}
	return nil
}

// Hide unmaps a window, keeping it alive but off screen. Used to hide every
// container in a workspace but the focused one.
func (b *LinuxBackend) Hide(windowID WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	if err := xproto.UnmapWindowChecked(conn.XUtil.Conn(), xproto.Window(windowID)).Check(); err != nil {
		return fmt.Errorf("failed to unmap window %d: %w", windowID, err)
	}
	return nil
}

// FocusWindow activates windowID via _NET_ACTIVE_WINDOW and, if warpCursor
// is set, moves the pointer to its centre.
func (b *LinuxBackend) FocusWindow(windowID WindowID, warpCursor bool) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	if err := conn.FocusWindow(uint32(windowID)); err != nil {
		return fmt.Errorf("failed to focus window %d: %w", windowID, err)
	}
	if !warpCursor {
		return nil
	}
	rect, ok := b.windowRect(xproto.Window(windowID))
	if !ok {
		return nil
	}
	cx, cy := int16(rect.X+rect.Width/2), int16(rect.Y+rect.Height/2)
	return xproto.WarpPointerChecked(conn.XUtil.Conn(), 0, conn.Root, 0, 0, 0, 0, cx, cy).Check()
}
