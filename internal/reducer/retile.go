package reducer

import (
	"context"
	"strconv"
	"time"

	"github.com/1broseidon/komotile/internal/animation"
	"github.com/1broseidon/komotile/internal/geometry"
	"github.com/1broseidon/komotile/internal/platform"
	"github.com/1broseidon/komotile/internal/wm"
)

// retile recomputes and applies every container's rect on workspace,
// diffing against each container's last-applied rect so unaffected
// windows are left alone, then shows the focused window of each container
// and hides the rest. It is a no-op while the reducer is paused.
func (r *Reducer) retile(monitor *wm.Monitor, workspace *wm.Workspace) {
	if r.state.Paused || monitor == nil || workspace == nil {
		return
	}

	target := workspace.Arrange(monitor.WorkArea())

	for container, rect := range target {
		win, ok := container.FocusedWindow()
		if !ok {
			continue
		}
		if !rectsEqual(container.LastKnownRect, rect) {
			r.animateMove(container, win.ID, rect)
		}
		container.LastKnownRect = rect

		if err := r.backend.Show(win.ID); err != nil {
			r.logger.Warn("failed to show window", "error", err, "window_id", win.ID)
		}
		r.hideNonFocused(container, win.ID)
	}
}

func (r *Reducer) hideNonFocused(c *wm.Container, focusedID platform.WindowID) {
	for _, win := range c.Windows.Elements() {
		if win.ID == focusedID {
			continue
		}
		if err := r.backend.Hide(win.ID); err != nil {
			r.logger.Warn("failed to hide stacked window", "error", err, "window_id", win.ID)
		}
	}
}

func rectsEqual(a, b geometry.Rect) bool {
	return a == b
}

// animateMove kicks off an animation keyed by window_move:<id> from the
// container's currently-applied rect to target, pushing MoveResize calls
// to the backend on every frame. It does not block the reducer; the
// animation runs on its own goroutine via the animation engine.
func (r *Reducer) animateMove(container *wm.Container, id platform.WindowID, target geometry.Rect) {
	if r.animation == nil {
		r.applyRect(id, target)
		return
	}

	cfg := r.cfg.Animation
	if !cfg.Enabled {
		r.applyRect(id, target)
		return
	}

	start := container.LastKnownRect
	style := animation.StyleByName(cfg.Style)
	duration := time.Duration(cfg.DurationMs) * time.Millisecond
	key := animation.Key(animation.PrefixWindowMove, windowKey(id))

	backend := r.backend
	logger := r.logger
	r.animation.Animate(context.Background(), key, duration, style, func(progress float64) error {
		rect := animation.LerpRect(start, target, progress, style)
		if err := backend.MoveResize(id, platform.FromGeometry(rect)); err != nil {
			logger.Warn("animated move failed", "error", err, "window_id", id)
			return err
		}
		return nil
	})
}

func (r *Reducer) applyRect(id platform.WindowID, target geometry.Rect) {
	if err := r.backend.MoveResize(id, platform.FromGeometry(target)); err != nil {
		r.logger.Warn("move failed", "error", err, "window_id", id)
	}
}

func windowKey(id platform.WindowID) string {
	return strconv.FormatUint(uint64(id), 10)
}
