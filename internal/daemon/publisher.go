// Package daemon holds the Publisher interface and FanOutPublisher, which
// lets the reducer's single snapshot publisher feed several targets.
package daemon

import (
	"github.com/1broseidon/komotile/internal/wm"
)

// Publisher is the subset of reducer.SnapshotPublisher every fan-out target
// implements.
type Publisher interface {
	Publish(state *wm.State)
}

// FanOutPublisher broadcasts a state snapshot to every registered
// publisher in order: the notification bus and the border overlay driver
// both implement reducer.SnapshotPublisher independently, and the reducer
// only holds one. A panic in one publisher (most likely the X11-backed
// border driver) is recovered so it cannot take the notification bus down
// with it.
type FanOutPublisher struct {
	targets []Publisher
}

// NewFanOutPublisher builds a FanOutPublisher over targets. Callers must
// only include targets that are actually in use (e.g. omit the border
// driver when borders are disabled) rather than passing a typed nil, since
// a nil *border.Driver stored in a Publisher is not itself a nil interface.
func NewFanOutPublisher(targets ...Publisher) *FanOutPublisher {
	return &FanOutPublisher{targets: targets}
}

func (f *FanOutPublisher) Publish(state *wm.State) {
	for _, t := range f.targets {
		publishSafely(t, state)
	}
}

func publishSafely(t Publisher, state *wm.State) {
	defer func() { recover() }()
	t.Publish(state)
}
