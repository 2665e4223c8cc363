package eventsource

import (
	"context"
	"log/slog"

	"github.com/1broseidon/komotile/internal/platform"
)

// FocusApplier is the reducer capability the focus notifier drives: moving
// input focus (and, if mouse-follows-focus is enabled, the cursor) to a
// window, used for async follow-ups like "an animation finished, now put
// the cursor where the newly-focused window is".
type FocusApplier interface {
	ApplyFocus(id platform.WindowID, moveCursor bool) error
}

// FocusNotifier serialises asynchronous focus requests (animation
// completions wanting to set cursor position, mainly) onto a small bounded
// channel. It is independent of Reconciliator: the reconciliator fixes up
// which workspace is focused, this fixes up which window within it has
// input focus.
type FocusNotifier struct {
	requests        chan platform.WindowID
	applyFocus      FocusApplier
	mouseFollowsFocus func() bool
	logger          *slog.Logger
}

// NewFocusNotifier builds a FocusNotifier with a single-slot buffer: while
// one request is pending, further requests are dropped.
func NewFocusNotifier(apply FocusApplier, mouseFollowsFocus func() bool, logger *slog.Logger) *FocusNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	if mouseFollowsFocus == nil {
		mouseFollowsFocus = func() bool { return false }
	}
	return &FocusNotifier{
		requests:          make(chan platform.WindowID, 1),
		applyFocus:        apply,
		mouseFollowsFocus: mouseFollowsFocus,
		logger:            logger,
	}
}

// Notify requests that windowID receive focus. Drops the request and logs a
// warning if the channel is full rather than blocking the caller.
func (f *FocusNotifier) Notify(windowID platform.WindowID) {
	select {
	case f.requests <- windowID:
	default:
		f.logger.Warn("focus notification channel full; dropping notification")
	}
}

// Run drains focus requests until ctx is cancelled.
func (f *FocusNotifier) Run(ctx context.Context) {
	f.logger.Info("focus notifier started")
	for {
		select {
		case <-ctx.Done():
			f.logger.Info("focus notifier stopped")
			return
		case id := <-f.requests:
			f.handle(id)
		}
	}
}

func (f *FocusNotifier) handle(id platform.WindowID) {
	defer func() {
		if err := recover(); err != nil {
			f.logger.Error("focus notifier panic recovered", "error", err)
		}
	}()
	if err := f.applyFocus.ApplyFocus(id, f.mouseFollowsFocus()); err != nil {
		f.logger.Warn("focus apply failed", "error", err, "window_id", id)
	}
}
