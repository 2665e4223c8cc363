//go:build linux

package platform

import (
	"context"
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Subscribe watches the root window for substructure and property changes
// and translates them into RawEvents, using xevent's Connect-callback
// style of X11 event delivery.
func (b *LinuxBackend) Subscribe(ctx context.Context) (<-chan RawEvent, error) {
	xu := b.XUtil()
	root := b.RootWindow()
	if xu == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}

	out := make(chan RawEvent, 256)
	send := func(ev RawEvent) {
		select {
		case out <- ev:
		default:
			// Consumer is behind; drop rather than block the X11 event
			// goroutine. A dropped notification is not replayed.
		}
	}

	xevent.CreateNotifyFun(func(xu *xgbutil.XUtil, ev xevent.CreateNotifyEvent) {
		send(RawEvent{Kind: RawWindowCreated, WindowID: WindowID(ev.Window)})
	}).Connect(xu, root)

	xevent.DestroyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.DestroyNotifyEvent) {
		send(RawEvent{Kind: RawWindowDestroyed, WindowID: WindowID(ev.Window)})
	}).Connect(xu, root)

	xevent.ConfigureNotifyFun(func(xu *xgbutil.XUtil, ev xevent.ConfigureNotifyEvent) {
		send(RawEvent{
			Kind:     RawWindowMoved,
			WindowID: WindowID(ev.Window),
			Bounds:   Rect{X: int(ev.X), Y: int(ev.Y), Width: int(ev.Width), Height: int(ev.Height)},
		})
	}).Connect(xu, root)

	activeAtom, err := xproto.InternAtom(xu.Conn(), true, uint16(len("_NET_ACTIVE_WINDOW")), "_NET_ACTIVE_WINDOW").Reply()
	nameAtom, _ := xproto.InternAtom(xu.Conn(), true, uint16(len("_NET_WM_NAME")), "_NET_WM_NAME").Reply()
	netStateAtom, _ := xproto.InternAtom(xu.Conn(), true, uint16(len("_NET_WM_STATE")), "_NET_WM_STATE").Reply()
	icccmStateAtom, _ := xproto.InternAtom(xu.Conn(), true, uint16(len("WM_STATE")), "WM_STATE").Reply()
	moveResizeAtom, _ := xproto.InternAtom(xu.Conn(), true, uint16(len("_NET_WM_MOVERESIZE")), "_NET_WM_MOVERESIZE").Reply()

	// cloaked tracks which windows currently carry _NET_WM_STATE_HIDDEN so
	// PropertyNotify only fires RawWindowCloaked/RawWindowUncloaked on the
	// actual transition, not on every unrelated _NET_WM_STATE change.
	cloaked := make(map[xproto.Window]bool)

	xevent.PropertyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
		switch {
		case err == nil && ev.Atom == activeAtom.Atom:
			if active, aerr := ewmh.ActiveWindowGet(xu); aerr == nil {
				send(RawEvent{Kind: RawWindowFocused, WindowID: WindowID(active)})
			}
		case nameAtom != nil && ev.Atom == nameAtom.Atom:
			title, _ := ewmh.WmNameGet(xu, ev.Window)
			send(RawEvent{Kind: RawWindowTitleChanged, WindowID: WindowID(ev.Window), Title: title})
		case netStateAtom != nil && ev.Atom == netStateAtom.Atom:
			hidden := false
			if states, serr := ewmh.WmStateGet(xu, ev.Window); serr == nil {
				for _, s := range states {
					if s == "_NET_WM_STATE_HIDDEN" {
						hidden = true
						break
					}
				}
			}
			was := cloaked[ev.Window]
			if hidden && !was {
				cloaked[ev.Window] = true
				send(RawEvent{Kind: RawWindowCloaked, WindowID: WindowID(ev.Window)})
			} else if !hidden && was {
				delete(cloaked, ev.Window)
				send(RawEvent{Kind: RawWindowUncloaked, WindowID: WindowID(ev.Window)})
			}
		case icccmStateAtom != nil && ev.Atom == icccmStateAtom.Atom:
			state, ok := icccmWindowState(xu, ev.Window, icccmStateAtom.Atom)
			if !ok {
				return
			}
			switch state {
			case icccmIconicState:
				send(RawEvent{Kind: RawWindowMinimised, WindowID: WindowID(ev.Window)})
			case icccmNormalState:
				send(RawEvent{Kind: RawMonocleRestored, WindowID: WindowID(ev.Window)})
			}
		}
	}).Connect(xu, root)

	xevent.ClientMessageFun(func(xu *xgbutil.XUtil, ev xevent.ClientMessageEvent) {
		if moveResizeAtom == nil || ev.Type != moveResizeAtom.Atom {
			return
		}
		data := ev.Data.Data32()
		const netWMMoveResizeCancel = 11
		if len(data) > 2 && data[2] == netWMMoveResizeCancel {
			send(RawEvent{Kind: RawWindowMoveResizeEnd, WindowID: WindowID(ev.Window)})
			return
		}
		send(RawEvent{Kind: RawWindowMoveResizeStart, WindowID: WindowID(ev.Window)})
	}).Connect(xu, root)

	go func() {
		<-ctx.Done()
		close(out)
	}()

	return out, nil
}

// ICCCM WM_STATE values (see the Inter-Client Communication Conventions
// Manual, section 4.1.3.1).
const (
	icccmNormalState = 1
	icccmIconicState = 3
)

// icccmWindowState reads a window's WM_STATE property, returning its state
// field (icccmNormalState/icccmIconicState/...).
func icccmWindowState(xu *xgbutil.XUtil, win xproto.Window, atom xproto.Atom) (int, bool) {
	reply, err := xproto.GetProperty(xu.Conn(), false, win, atom, xproto.GetPropertyTypeAny, 0, 2).Reply()
	if err != nil || reply.Format != 32 || len(reply.Value) < 4 {
		return 0, false
	}
	words := decodeCardinals(reply.Value)
	return int(words[0]), true
}
