// Package animation drives per-key render loops (window moves, workspace
// switches) that call back into a render function with eased progress in
// [0,1], and cancels a key's in-flight animation before a newer one for the
// same key starts.
package animation

import (
	"context"
	"time"
)

// RenderFunc is called once per animation frame with progress in [0,1]
// (post-easing). Implementations push a computed rect to the platform
// backend; returning an error stops that frame's render but does not abort
// the animation loop.
type RenderFunc func(progress float64) error

// Engine runs animations and lets callers wait for, cancel, or count them.
// One Engine is shared by the whole daemon; animate goroutines are
// ephemeral — they exit as soon as their animation finishes or is
// cancelled.
type Engine struct {
	manager *manager
	fps     int
}

// NewEngine builds an Engine targeting fps frames per second.
func NewEngine(fps int) *Engine {
	if fps <= 0 {
		fps = 60
	}
	return &Engine{manager: newManager(), fps: fps}
}

// Animate starts an animation for key, cancelling any animation already in
// progress for the same key first. It spawns its own goroutine and returns
// immediately; render is invoked synchronously from that goroutine once
// per frame until progress reaches 1.0, with a final forced call at
// progress==1.0 even if the loop overran its last frame slot.
func (e *Engine) Animate(ctx context.Context, key string, duration time.Duration, style Style, render RenderFunc) {
	go func() {
		if e.manager.inProgress(key) {
			if !e.cancel(ctx, key) {
				return
			}
		}

		e.manager.start(key)
		targetFrameTime := time.Second / time.Duration(e.fps)
		progress := 0.0
		start := time.Now()

		for progress < 1.0 {
			if e.manager.isCancelled(key) {
				e.manager.cancel(key)
				return
			}
			select {
			case <-ctx.Done():
				e.manager.cancel(key)
				return
			default:
			}

			frameStart := time.Now()
			progress = float64(time.Since(start)) / float64(duration)
			if progress >= 1.0 {
				break
			}
			_ = render(applyEase(clamp01(progress), style))

			elapsed := time.Since(frameStart)
			if elapsed < targetFrameTime {
				time.Sleep(targetFrameTime - elapsed)
			}
		}

		e.manager.end(key)

		if progress > 1.0 {
			progress = 1.0
		}
		_ = render(applyEase(1.0, style))
	}()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// cancel requests the in-flight animation for key to stop and blocks until
// it does (bounded at 5s, the watchdog bound on CancelPending), returning
// whether this caller's cancellation was the last one requested — i.e.
// whether the caller should proceed to start its own animation for key.
func (e *Engine) cancel(ctx context.Context, key string) bool {
	if !e.manager.inProgress(key) {
		return true
	}

	cancelIdx := e.manager.initCancel(key)
	deadline := time.Now().Add(5 * time.Second)

	for e.manager.inProgress(key) {
		if time.Now().After(deadline) {
			e.manager.end(key)
			break
		}
		select {
		case <-ctx.Done():
			e.manager.end(key)
		case <-time.After(targetSleepFor(e.fps)):
		}
	}

	latest := e.manager.latestCancelIdx(key)
	e.manager.endCancel(key)
	return latest == cancelIdx
}

func targetSleepFor(fps int) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return (time.Second / time.Duration(fps)) / 2
}

// CountInProgress reports how many animations with the given key prefix
// are currently running.
func (e *Engine) CountInProgress(prefix Prefix) int {
	return e.manager.countInProgress(prefix)
}

// WaitForAll blocks until no animation is in flight, or 20 seconds elapse,
// matching the original engine's shutdown-time bound.
func (e *Engine) WaitForAll(ctx context.Context) {
	deadline := time.Now().Add(20 * time.Second)
	for e.manager.count() > 0 {
		if time.Now().After(deadline) {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(50 * time.Millisecond):
		}
	}
}
