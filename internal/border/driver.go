// Package border drives the focused-window border overlay: a set of thin
// override-redirect X11 windows framing whichever window currently holds
// engine focus, repositioned on every state publish and hidden when nothing
// is focused, tiling is paused, or borders are disabled.
package border

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/komotile/internal/config"
	"github.com/1broseidon/komotile/internal/geometry"
	"github.com/1broseidon/komotile/internal/wm"
	"github.com/1broseidon/komotile/internal/x11"
)

// overflowPx is the extra fudge added around a window matched by an
// ApplicationRule with BorderOverflow set, for applications that draw
// slightly outside their reported geometry.
const overflowPx = 6

// overlay is a rectangular border made of 4 thin override-redirect
// windows, adapted from the move-mode overlay's per-terminal border to
// frame a single focused window instead.
type overlay struct {
	top, bottom, left, right xproto.Window
	created                  bool
	mapped                   bool
}

// Driver owns the single overlay instance and repositions/recolors it on
// every Publish call. It implements reducer.SnapshotPublisher so it can be
// registered alongside the notification bus.
type Driver struct {
	conn *x11.Connection
	cfg  config.BorderConfig
	ov   overlay

	colorFocused   uint32
	colorUnfocused uint32
	colorMonocle   uint32
}

// NewDriver parses cfg's hex colors and returns a Driver. The overlay
// windows themselves are created lazily on the first Publish that needs
// them.
func NewDriver(conn *x11.Connection, cfg config.BorderConfig) (*Driver, error) {
	focused, err := parseHexColor(cfg.ColorFocused)
	if err != nil {
		return nil, fmt.Errorf("border color_focused: %w", err)
	}
	unfocused, err := parseHexColor(cfg.ColorUnfocused)
	if err != nil {
		return nil, fmt.Errorf("border color_unfocused: %w", err)
	}
	monocle, err := parseHexColor(cfg.ColorMonocle)
	if err != nil {
		return nil, fmt.Errorf("border color_monocle: %w", err)
	}
	return &Driver{
		conn:           conn,
		cfg:            cfg,
		colorFocused:   focused,
		colorUnfocused: unfocused,
		colorMonocle:   monocle,
	}, nil
}

func parseHexColor(s string) (uint32, error) {
	s = strings.TrimPrefix(s, "#")
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return uint32(v), nil
}

// Publish implements reducer.SnapshotPublisher: it locates whichever
// window currently holds engine focus and frames it, or hides the overlay
// if nothing qualifies.
func (d *Driver) Publish(state *wm.State) {
	if !d.cfg.Enabled || state == nil || state.Paused {
		d.hide()
		return
	}

	monitor, ok := state.FocusedMonitor()
	if !ok {
		d.hide()
		return
	}
	workspace, ok := monitor.FocusedWorkspace()
	if !ok {
		d.hide()
		return
	}

	if floatingWin, ok := workspace.FocusedFloatingWindow(); ok {
		d.show(floatingWin.LastKnownRect, floatingWin.BorderOverflow, d.colorUnfocused)
		return
	}

	container, ok := workspace.FocusedContainer()
	if !ok {
		d.hide()
		return
	}
	win, ok := container.FocusedWindow()
	if !ok {
		d.hide()
		return
	}

	color := d.colorFocused
	if workspace.Monocle {
		color = d.colorMonocle
	}
	d.show(container.LastKnownRect, win.BorderOverflow, color)
}

// frameRect expands rect by the overflow fudge when overflow is set.
func frameRect(rect geometry.Rect, overflow bool) geometry.Rect {
	if !overflow {
		return rect
	}
	return geometry.Rect{
		Left:   rect.Left - overflowPx,
		Top:    rect.Top - overflowPx,
		Right:  rect.Right + overflowPx*2,
		Bottom: rect.Bottom + overflowPx*2,
	}
}

// borderStrips returns the 4 thin rects (top, bottom, left, right) that
// together frame area with the given thickness, leaving its interior
// unobscured.
func borderStrips(area geometry.Rect, thickness int) (top, bottom, left, right geometry.Rect) {
	if thickness < 1 {
		thickness = 1
	}
	x, y, w, h, t := area.Left, area.Top, area.Right, area.Bottom, thickness
	top = geometry.Rect{Left: x, Top: y, Right: w, Bottom: t}
	bottom = geometry.Rect{Left: x, Top: y + h - t, Right: w, Bottom: t}
	left = geometry.Rect{Left: x, Top: y + t, Right: t, Bottom: h - 2*t}
	right = geometry.Rect{Left: x + w - t, Top: y + t, Right: t, Bottom: h - 2*t}
	return
}

func (d *Driver) show(rect geometry.Rect, overflow bool, color uint32) {
	if !d.ov.created {
		if err := d.create(); err != nil {
			return
		}
	}

	area := frameRect(rect, overflow)
	top, bottom, left, right := borderStrips(area, d.cfg.Width)

	d.update(d.ov.top, top.Left, top.Top, top.Right, top.Bottom, color)
	d.update(d.ov.bottom, bottom.Left, bottom.Top, bottom.Right, bottom.Bottom, color)
	d.update(d.ov.left, left.Left, left.Top, left.Right, left.Bottom, color)
	d.update(d.ov.right, right.Left, right.Top, right.Right, right.Bottom, color)

	conn := d.conn.XUtil.Conn()
	xproto.MapWindow(conn, d.ov.top)
	xproto.MapWindow(conn, d.ov.bottom)
	xproto.MapWindow(conn, d.ov.left)
	xproto.MapWindow(conn, d.ov.right)
	d.ov.mapped = true
}

func (d *Driver) hide() {
	if !d.ov.mapped {
		return
	}
	conn := d.conn.XUtil.Conn()
	xproto.UnmapWindow(conn, d.ov.top)
	xproto.UnmapWindow(conn, d.ov.bottom)
	xproto.UnmapWindow(conn, d.ov.left)
	xproto.UnmapWindow(conn, d.ov.right)
	d.ov.mapped = false
}

// Close destroys the overlay windows. Called once at daemon shutdown.
func (d *Driver) Close() {
	if !d.ov.created {
		return
	}
	conn := d.conn.XUtil.Conn()
	xproto.DestroyWindow(conn, d.ov.top)
	xproto.DestroyWindow(conn, d.ov.bottom)
	xproto.DestroyWindow(conn, d.ov.left)
	xproto.DestroyWindow(conn, d.ov.right)
	d.ov = overlay{}
}

func (d *Driver) create() error {
	var err error
	if d.ov.top, err = d.newOverrideRedirectWindow(); err != nil {
		return err
	}
	if d.ov.bottom, err = d.newOverrideRedirectWindow(); err != nil {
		return err
	}
	if d.ov.left, err = d.newOverrideRedirectWindow(); err != nil {
		return err
	}
	if d.ov.right, err = d.newOverrideRedirectWindow(); err != nil {
		return err
	}
	d.ov.created = true
	return nil
}

func (d *Driver) newOverrideRedirectWindow() (xproto.Window, error) {
	conn := d.conn.XUtil.Conn()
	screen := d.conn.XUtil.Screen()

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return 0, err
	}

	err = xproto.CreateWindowChecked(
		conn,
		screen.RootDepth,
		wid,
		d.conn.Root,
		0, 0,
		1, 1,
		0,
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		xproto.CwOverrideRedirect|xproto.CwBackPixel,
		[]uint32{0, 1}, // back_pixel=black, override_redirect=true; CwBackPixel precedes CwOverrideRedirect in mask order
	).Check()
	if err != nil {
		return 0, err
	}
	return wid, nil
}

func (d *Driver) update(wid xproto.Window, x, y, width, height int, color uint32) {
	conn := d.conn.XUtil.Conn()
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	xproto.ConfigureWindow(
		conn,
		wid,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight|xproto.ConfigWindowStackMode,
		[]uint32{uint32(x), uint32(y), uint32(width), uint32(height), xproto.StackModeAbove},
	)
	xproto.ChangeWindowAttributes(conn, wid, xproto.CwBackPixel, []uint32{color})
	xproto.ClearArea(conn, false, wid, 0, 0, 0, 0)
}
