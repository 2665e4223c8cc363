package eventsource

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/1broseidon/komotile/internal/platform"
)

func TestBusPublishAndDrain(t *testing.T) {
	b := NewBus(4, nil)
	b.Publish(Event{Kind: KindWindowCreated, WindowID: 1})
	b.Publish(Event{Kind: KindWindowFocused, WindowID: 2})

	ev := <-b.Events()
	if ev.Kind != KindWindowCreated || ev.WindowID != 1 {
		t.Fatalf("got %+v, want window created for id 1", ev)
	}
	ev = <-b.Events()
	if ev.Kind != KindWindowFocused || ev.WindowID != 2 {
		t.Fatalf("got %+v, want window focused for id 2", ev)
	}
}

func TestBusDropsOldestWhenFull(t *testing.T) {
	b := NewBus(1, nil)
	b.Publish(Event{Kind: KindWindowCreated, WindowID: 1})
	b.Publish(Event{Kind: KindWindowCreated, WindowID: 2})

	ev := <-b.Events()
	if ev.WindowID != 2 {
		t.Fatalf("expected the newest event to survive, got window id %d", ev.WindowID)
	}
}

func TestBusPublishCommand(t *testing.T) {
	b := NewBus(1, nil)
	b.PublishCommand(Command{Name: CommandToggleFloat, WindowID: 7})
	ev := <-b.Events()
	if ev.Kind != KindCommand || ev.Command.Name != CommandToggleFloat || ev.Command.WindowID != 7 {
		t.Fatalf("got %+v, want a toggle_float command for window 7", ev)
	}
}

type fakeFocusSyncer struct {
	mu             sync.Mutex
	monitorIdx     int
	workspaceIdx   int
	focusedWindow  platform.WindowID
	syncErr        error
}

func (f *fakeFocusSyncer) FocusedMonitorWorkspace() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.monitorIdx, f.workspaceIdx
}

func (f *fakeFocusSyncer) SyncFocusTo(monitorIdx, workspaceIdx int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.syncErr != nil {
		return f.syncErr
	}
	f.monitorIdx, f.workspaceIdx = monitorIdx, workspaceIdx
	return nil
}

func (f *fakeFocusSyncer) FocusWindowByID(id platform.WindowID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.focusedWindow = id
	return nil
}

func TestReconciliatorSkipsWhenAlreadyFocused(t *testing.T) {
	sync := &fakeFocusSyncer{monitorIdx: 1, workspaceIdx: 2}
	r := NewReconciliator(sync, 0, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	r.Notify(1, 2)
	time.Sleep(20 * time.Millisecond)

	sync.mu.Lock()
	defer sync.mu.Unlock()
	if sync.focusedWindow != 0 {
		t.Fatalf("expected no alt-tab refocus for a no-op notification")
	}
}

func TestReconciliatorAppliesAltTabRefocusWithinWindow(t *testing.T) {
	sync := &fakeFocusSyncer{monitorIdx: 0, workspaceIdx: 0}
	r := NewReconciliator(sync, time.Second, nil)
	r.window = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	r.NoteAltTab(platform.WindowID(99))
	r.Notify(1, 1)

	deadline := time.Now().Add(2 * time.Second)
	for {
		sync.mu.Lock()
		got := sync.focusedWindow
		sync.mu.Unlock()
		if got == 99 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("expected alt-tabbed window 99 to be refocused, got %d", got)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestReconciliatorSkipsAltTabRefocusOutsideWindow(t *testing.T) {
	sync := &fakeFocusSyncer{monitorIdx: 0, workspaceIdx: 0}
	r := NewReconciliator(sync, 10*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	r.NoteAltTab(platform.WindowID(5))
	time.Sleep(30 * time.Millisecond)
	r.Notify(1, 1)
	time.Sleep(200 * time.Millisecond)

	sync.mu.Lock()
	defer sync.mu.Unlock()
	if sync.focusedWindow == 5 {
		t.Fatalf("expected stale alt-tab to be ignored")
	}
}

func TestNotifyDropsWhenChannelFull(t *testing.T) {
	sync := &fakeFocusSyncer{}
	r := NewReconciliator(sync, 0, nil)
	r.Notify(1, 1)
	r.Notify(2, 2) // channel already has one queued; this should be dropped, not block
}

type fakeFocusApplier struct {
	mu        sync.Mutex
	lastID    platform.WindowID
	moveCalls []bool
}

func (f *fakeFocusApplier) ApplyFocus(id platform.WindowID, moveCursor bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastID = id
	f.moveCalls = append(f.moveCalls, moveCursor)
	return nil
}

func TestFocusNotifierDeliversRequests(t *testing.T) {
	applier := &fakeFocusApplier{}
	n := NewFocusNotifier(applier, func() bool { return true }, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go n.Run(ctx)

	n.Notify(platform.WindowID(42))

	deadline := time.Now().Add(time.Second)
	for {
		applier.mu.Lock()
		got := applier.lastID
		applier.mu.Unlock()
		if got == 42 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("expected focus request for window 42 to be delivered")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
