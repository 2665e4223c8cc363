package animation

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/1broseidon/komotile/internal/geometry"
)

func TestLerpIntReachesEndpointsExactly(t *testing.T) {
	if got := LerpInt(0, 100, 0, Linear); got != 0 {
		t.Errorf("t=0: got %d, want 0", got)
	}
	if got := LerpInt(0, 100, 1, Linear); got != 100 {
		t.Errorf("t=1: got %d, want 100", got)
	}
	if got := LerpInt(0, 100, 0.5, Linear); got != 50 {
		t.Errorf("t=0.5 linear: got %d, want 50", got)
	}
}

func TestLerpRectInterpolatesEachEdge(t *testing.T) {
	start := geometry.Rect{Left: 0, Top: 0, Right: 100, Bottom: 200}
	end := geometry.Rect{Left: 100, Top: 200, Right: 300, Bottom: 400}
	mid := LerpRect(start, end, 0.5, Linear)
	want := geometry.Rect{Left: 50, Top: 100, Right: 200, Bottom: 300}
	if mid != want {
		t.Errorf("got %+v, want %+v", mid, want)
	}
}

func TestEaseFuncsStartAtZeroEndAtOne(t *testing.T) {
	styles := []Style{Linear, EaseInSine, EaseOutSine, EaseInOutSine, EaseInQuad, EaseOutQuad,
		EaseInOutQuad, EaseInCubic, EaseOutCubic, EaseInOutCubic, EaseInBounce, EaseOutBounce, EaseInOutBounce}
	for _, s := range styles {
		if got := applyEase(0, s); got < -0.001 || got > 0.001 {
			t.Errorf("%s: applyEase(0) = %v, want ~0", s, got)
		}
		if got := applyEase(1, s); got < 0.999 || got > 1.001 {
			t.Errorf("%s: applyEase(1) = %v, want ~1", s, got)
		}
	}
}

func TestAnimateRunsToCompletion(t *testing.T) {
	e := NewEngine(240)
	var frames int32
	var lastProgress atomic.Value
	lastProgress.Store(0.0)

	done := make(chan struct{})
	e.Animate(context.Background(), Key(PrefixWindowMove, "1"), 30*time.Millisecond, Linear, func(p float64) error {
		atomic.AddInt32(&frames, 1)
		lastProgress.Store(p)
		if p >= 1.0 {
			close(done)
		}
		return nil
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("animation did not complete in time")
	}

	if frames < 2 {
		t.Errorf("expected multiple frames, got %d", frames)
	}
	if lastProgress.Load().(float64) != 1.0 {
		t.Errorf("expected final progress 1.0, got %v", lastProgress.Load())
	}
}

func TestAnimateCancelsSupersededKey(t *testing.T) {
	e := NewEngine(240)
	key := Key(PrefixWindowMove, "42")

	var mu sync.Mutex
	var firstSawCancellation bool

	firstStarted := make(chan struct{})
	e.Animate(context.Background(), key, 200*time.Millisecond, Linear, func(p float64) error {
		select {
		case <-firstStarted:
		default:
			close(firstStarted)
		}
		return nil
	})
	<-firstStarted
	time.Sleep(5 * time.Millisecond)

	secondDone := make(chan struct{})
	e.Animate(context.Background(), key, 10*time.Millisecond, Linear, func(p float64) error {
		if p >= 1.0 {
			mu.Lock()
			firstSawCancellation = true
			mu.Unlock()
			select {
			case <-secondDone:
			default:
				close(secondDone)
			}
		}
		return nil
	})

	select {
	case <-secondDone:
	case <-time.After(2 * time.Second):
		t.Fatalf("second animation for the same key never completed")
	}

	mu.Lock()
	defer mu.Unlock()
	if !firstSawCancellation {
		t.Fatalf("expected the second animation to run to completion after cancelling the first")
	}
}

func TestWaitForAllReturnsWhenIdle(t *testing.T) {
	e := NewEngine(240)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	e.WaitForAll(ctx) // should return immediately, nothing running
}
