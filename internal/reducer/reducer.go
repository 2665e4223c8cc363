// Package reducer owns the window manager's whole state tree behind a
// single mutex and drains the event bus strictly in order, mutating state,
// queuing animations, and publishing notifications in response to each
// event — never unwinding past a single one.
package reducer

import (
	"context"
	"log/slog"
	"sync"

	"github.com/1broseidon/komotile/internal/animation"
	"github.com/1broseidon/komotile/internal/config"
	"github.com/1broseidon/komotile/internal/eventsource"
	"github.com/1broseidon/komotile/internal/platform"
	"github.com/1broseidon/komotile/internal/wm"
)

// SnapshotPublisher is the notification bus capability the reducer drives
// after every state change. Kept as an interface so reducer has no direct
// dependency on internal/notify.
type SnapshotPublisher interface {
	Publish(state *wm.State)
}

// Reducer is the sole mutator of a *wm.State, guarding every access with
// one mutex. Its exported methods are safe for concurrent use; callers
// normally only do so via Run's event loop and the command socket's
// synchronous request path.
type Reducer struct {
	mu    sync.Mutex
	state *wm.State
	cfg   *config.Config

	backend   platform.Backend
	animation *animation.Engine
	publisher SnapshotPublisher
	recon     *eventsource.Reconciliator
	logger    *slog.Logger

	resizeStepPx int
}

// New builds a Reducer over an already-populated state tree.
func New(state *wm.State, cfg *config.Config, backend platform.Backend, anim *animation.Engine, publisher SnapshotPublisher, recon *eventsource.Reconciliator, logger *slog.Logger) *Reducer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reducer{
		state:        state,
		cfg:          cfg,
		backend:      backend,
		animation:    anim,
		publisher:    publisher,
		recon:        recon,
		logger:       logger,
		resizeStepPx: 20,
	}
}

// SetReconciliator wires the workspace reconciliator in after construction.
// It exists because the reconciliator's own constructor takes the Reducer
// as its FocusSyncer: the two cannot be built in a single expression.
func (r *Reducer) SetReconciliator(recon *eventsource.Reconciliator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recon = recon
}

// Run drains bus until ctx is cancelled, processing one event at a time.
func (r *Reducer) Run(ctx context.Context, bus *eventsource.Bus) {
	r.logger.Info("reducer started")
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reducer stopped")
			return
		case ev := <-bus.Events():
			r.handle(ev)
		}
	}
}

func (r *Reducer) handle(ev eventsource.Event) {
	defer func() {
		if err := recover(); err != nil {
			r.logger.Error("reducer panic recovered", "error", err, "event_kind", ev.Kind)
		}
	}()

	r.mu.Lock()
	defer r.mu.Unlock()

	switch ev.Kind {
	case eventsource.KindWindowCreated:
		r.handleWindowCreated(ev.WindowID)
	case eventsource.KindWindowDestroyed:
		r.handleWindowDestroyed(ev.WindowID)
	case eventsource.KindWindowFocused:
		r.handleWindowFocused(ev.WindowID)
	case eventsource.KindWindowTitleChanged:
		r.handleTitleChanged(ev.WindowID, ev.Title)
	case eventsource.KindWindowMoved:
		// Externally-driven moves (drag-resize) are recorded but do not
		// themselves trigger a retile; the next structural event will.
		r.updateLastKnownRect(ev.WindowID, ev.Bounds)
	case eventsource.KindDisplaysChanged:
		r.handleDisplaysChanged()
	case eventsource.KindWindowCloaked:
		r.handleWindowCloaked(ev.WindowID)
	case eventsource.KindWindowUncloaked:
		r.handleWindowUncloaked(ev.WindowID)
	case eventsource.KindWindowMoveResizeStart:
		r.handleMoveResizeStart(ev.WindowID)
	case eventsource.KindWindowMoveResizeEnd:
		r.handleMoveResizeEnd(ev.WindowID)
	case eventsource.KindWindowMinimised:
		r.handleWindowMinimised(ev.WindowID)
	case eventsource.KindMonocleRestored:
		r.handleMonocleRestored(ev.WindowID)
	case eventsource.KindCommand:
		if err := r.dispatchCommand(ev.Command); err != nil {
			r.logger.Warn("command failed", "error", err, "command", ev.Command.Name)
		}
	}

	r.publish()
}

func (r *Reducer) publish() {
	if r.publisher != nil {
		r.publisher.Publish(r.state)
	}
}

func (r *Reducer) resizeStep() int {
	if r.resizeStepPx <= 0 {
		return 20
	}
	return r.resizeStepPx
}
