package reducer

import (
	"context"
	"sync"
	"testing"

	"github.com/1broseidon/komotile/internal/config"
	"github.com/1broseidon/komotile/internal/eventsource"
	"github.com/1broseidon/komotile/internal/geometry"
	"github.com/1broseidon/komotile/internal/layout"
	"github.com/1broseidon/komotile/internal/platform"
	"github.com/1broseidon/komotile/internal/wm"
)

type fakeBackend struct {
	mu      sync.Mutex
	windows map[platform.WindowID]platform.Window
	rects   map[platform.WindowID]platform.Rect
	hidden  map[platform.WindowID]bool
	closed  map[platform.WindowID]bool
	focused platform.WindowID
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		windows: make(map[platform.WindowID]platform.Window),
		rects:   make(map[platform.WindowID]platform.Rect),
		hidden:  make(map[platform.WindowID]bool),
		closed:  make(map[platform.WindowID]bool),
	}
}

func (b *fakeBackend) addWindow(w platform.Window) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.windows[w.ID] = w
}

func (b *fakeBackend) Displays() ([]platform.Display, error) {
	return []platform.Display{{ID: 0, Name: "primary", Bounds: platform.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}, Usable: platform.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}}}, nil
}

func (b *fakeBackend) ActiveDisplay() (platform.Display, error) {
	ds, _ := b.Displays()
	return ds[0], nil
}

func (b *fakeBackend) ActiveWindow() (platform.WindowID, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.focused, nil
}

func (b *fakeBackend) ListWindowsOnDisplay(displayID int) ([]platform.Window, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]platform.Window, 0, len(b.windows))
	for _, w := range b.windows {
		out = append(out, w)
	}
	return out, nil
}

func (b *fakeBackend) MoveResize(id platform.WindowID, bounds platform.Rect) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rects[id] = bounds
	return nil
}

func (b *fakeBackend) Minimize(id platform.WindowID) error { return nil }

func (b *fakeBackend) Close(id platform.WindowID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed[id] = true
	return nil
}

func (b *fakeBackend) Show(id platform.WindowID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.hidden[id] = false
	return nil
}

func (b *fakeBackend) Hide(id platform.WindowID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.hidden[id] = true
	return nil
}

func (b *fakeBackend) FocusWindow(id platform.WindowID, warpCursor bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.focused = id
	return nil
}

func (b *fakeBackend) Subscribe(ctx context.Context) (<-chan platform.RawEvent, error) {
	ch := make(chan platform.RawEvent)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

var _ platform.Backend = (*fakeBackend)(nil)

func newTestReducer(backend *fakeBackend) *Reducer {
	cfg := config.DefaultConfig()
	cfg.Animation.Enabled = false
	cfg.DefaultLayout = "columns"

	st := wm.NewState()
	l, _ := cfg.ResolveLayout(cfg.DefaultLayout)
	m := wm.NewMonitor(0, "primary", geometry.Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1080})
	ws := wm.NewWorkspace("1", l)
	m.Workspaces.Append(ws)
	st.Monitors.Append(m)

	return New(st, cfg, backend, nil, nil, nil, nil)
}

func addManagedWindow(t *testing.T, r *Reducer, backend *fakeBackend, id platform.WindowID) {
	t.Helper()
	backend.addWindow(platform.Window{ID: id, AppID: "xterm", Title: "term", Bounds: platform.Rect{X: 0, Y: 0, Width: 100, Height: 100}, HasTitlebar: true})
	r.handle(eventsource.Event{Kind: eventsource.KindWindowCreated, WindowID: id})
}

func TestWindowCreatedPlacesManagedWindow(t *testing.T) {
	backend := newFakeBackend()
	r := newTestReducer(backend)
	addManagedWindow(t, r, backend, 1)

	_, ws, err := r.focused()
	if err != nil {
		t.Fatalf("focused: %v", err)
	}
	if ws.Containers.Len() != 1 {
		t.Fatalf("expected 1 container, got %d", ws.Containers.Len())
	}
}

func TestWindowCreatedIgnoresRuleMatch(t *testing.T) {
	backend := newFakeBackend()
	r := newTestReducer(backend)
	backend.addWindow(platform.Window{ID: 5, AppID: "Polybar", Title: "bar"})
	r.handle(eventsource.Event{Kind: eventsource.KindWindowCreated, WindowID: 5})

	_, ws, _ := r.focused()
	if ws.Containers.Len() != 0 {
		t.Fatalf("expected the default ignore rule to drop Polybar, got %d containers", ws.Containers.Len())
	}
}

func TestRetileAppliesColumnsLayout(t *testing.T) {
	backend := newFakeBackend()
	r := newTestReducer(backend)
	addManagedWindow(t, r, backend, 1)
	addManagedWindow(t, r, backend, 2)

	backend.mu.Lock()
	rect, ok := backend.rects[1]
	backend.mu.Unlock()
	if !ok {
		t.Fatalf("expected window 1 to have been moved")
	}
	if rect.Width != 1920/2 {
		t.Errorf("expected half-width column, got %d", rect.Width)
	}
}

func TestToggleFloatRoundTrip(t *testing.T) {
	backend := newFakeBackend()
	r := newTestReducer(backend)
	addManagedWindow(t, r, backend, 1)

	if err := r.dispatchCommand(eventsource.Command{Name: eventsource.CommandToggleFloat}); err != nil {
		t.Fatalf("toggle float (in): %v", err)
	}
	_, ws, _ := r.focused()
	if ws.Containers.Len() != 0 || len(ws.Floating) != 1 {
		t.Fatalf("expected window to be floating, got %d containers / %d floating", ws.Containers.Len(), len(ws.Floating))
	}

	if err := r.dispatchCommand(eventsource.Command{Name: eventsource.CommandToggleFloat}); err != nil {
		t.Fatalf("toggle float (out): %v", err)
	}
	_, ws, _ = r.focused()
	if ws.Containers.Len() != 1 || len(ws.Floating) != 0 {
		t.Fatalf("expected window back in a container, got %d containers / %d floating", ws.Containers.Len(), len(ws.Floating))
	}
}

func TestFocusDirectionDoesNotWrapUnderColumns(t *testing.T) {
	backend := newFakeBackend()
	r := newTestReducer(backend)
	for i := platform.WindowID(1); i <= 4; i++ {
		addManagedWindow(t, r, backend, i)
	}
	_, ws, _ := r.focused()
	ws.Containers.Focus(2)

	if err := r.dispatchCommand(eventsource.Command{Name: eventsource.CommandFocusDirection, Direction: layout.Right}); err != nil {
		t.Fatalf("focus right: %v", err)
	}
	if ws.Containers.FocusedIdx() != 3 {
		t.Fatalf("expected focus to move to index 3, got %d", ws.Containers.FocusedIdx())
	}

	if err := r.dispatchCommand(eventsource.Command{Name: eventsource.CommandFocusDirection, Direction: layout.Right}); err == nil {
		t.Fatalf("expected a Conflict error moving right past the last column")
	} else if KindOf(err) != Conflict {
		t.Fatalf("expected Conflict, got %v", KindOf(err))
	}
	if ws.Containers.FocusedIdx() != 3 {
		t.Fatalf("expected focus to remain at index 3, got %d", ws.Containers.FocusedIdx())
	}
}

func TestCommandOnEmptyWorkspaceReturnsNotFound(t *testing.T) {
	backend := newFakeBackend()
	r := newTestReducer(backend)

	err := r.dispatchCommand(eventsource.Command{Name: eventsource.CommandToggleMonocle})
	// Toggle monocle doesn't require a container, so it should succeed even
	// on an empty workspace...
	if err != nil {
		t.Fatalf("toggle monocle on empty workspace: %v", err)
	}
	// ...but closing a window with none focused must fail with NotFound.
	err = r.dispatchCommand(eventsource.Command{Name: eventsource.CommandCloseWindow})
	if err == nil || KindOf(err) != NotFound {
		t.Fatalf("expected NotFound closing with no focused container, got %v", err)
	}
}

func TestWindowDestroyedRemovesContainer(t *testing.T) {
	backend := newFakeBackend()
	r := newTestReducer(backend)
	addManagedWindow(t, r, backend, 1)

	r.handle(eventsource.Event{Kind: eventsource.KindWindowDestroyed, WindowID: 1})
	_, ws, _ := r.focused()
	if ws.Containers.Len() != 0 {
		t.Fatalf("expected container to be pruned after window destroyed")
	}
}

func TestWindowCloakedHidesWithoutRetiling(t *testing.T) {
	backend := newFakeBackend()
	r := newTestReducer(backend)
	addManagedWindow(t, r, backend, 1)

	r.handle(eventsource.Event{Kind: eventsource.KindWindowCloaked, WindowID: 1})

	backend.mu.Lock()
	hidden := backend.hidden[1]
	backend.mu.Unlock()
	if !hidden {
		t.Fatalf("expected cloaked window to be hidden")
	}

	_, ws, _ := r.focused()
	if ws.Containers.Len() != 1 {
		t.Fatalf("expected the container to remain in the tree while cloaked, got %d", ws.Containers.Len())
	}
	c, _ := ws.FocusedContainer()
	win, _ := c.FocusedWindow()
	if !win.Cloaked {
		t.Fatalf("expected window's Cloaked flag to be set")
	}
}

func TestWindowUncloakedClearsFlagAndRetiles(t *testing.T) {
	backend := newFakeBackend()
	r := newTestReducer(backend)
	addManagedWindow(t, r, backend, 1)
	r.handle(eventsource.Event{Kind: eventsource.KindWindowCloaked, WindowID: 1})

	r.handle(eventsource.Event{Kind: eventsource.KindWindowUncloaked, WindowID: 1})

	_, ws, _ := r.focused()
	c, _ := ws.FocusedContainer()
	win, _ := c.FocusedWindow()
	if win.Cloaked {
		t.Fatalf("expected window's Cloaked flag to be cleared")
	}
	backend.mu.Lock()
	hidden := backend.hidden[1]
	backend.mu.Unlock()
	if hidden {
		t.Fatalf("expected the focused window to be shown again after uncloak retile")
	}
}

func TestWindowMinimisedAdvancesFocusWithinContainer(t *testing.T) {
	backend := newFakeBackend()
	r := newTestReducer(backend)
	addManagedWindow(t, r, backend, 1)

	_, ws, _ := r.focused()
	c, _ := ws.FocusedContainer()
	backend.addWindow(platform.Window{ID: 2, AppID: "xterm", Title: "term2", HasTitlebar: true})
	win := wm.WindowFromPlatform(platform.Window{ID: 2, AppID: "xterm", Title: "term2", HasTitlebar: true})
	c.Windows.Append(win)
	c.Windows.Focus(c.Windows.Len() - 1)

	r.handle(eventsource.Event{Kind: eventsource.KindWindowMinimised, WindowID: 2})

	focused, _ := c.FocusedWindow()
	if focused.ID != 1 {
		t.Fatalf("expected focus to move off the minimised window, got %d", focused.ID)
	}
	backend.mu.Lock()
	hidden := backend.hidden[2]
	backend.mu.Unlock()
	if !hidden {
		t.Fatalf("expected minimised window to be hidden")
	}
}

func TestMonocleRestoredRetilesWorkspace(t *testing.T) {
	backend := newFakeBackend()
	r := newTestReducer(backend)
	addManagedWindow(t, r, backend, 1)

	backend.mu.Lock()
	backend.hidden[1] = true
	backend.mu.Unlock()

	r.handle(eventsource.Event{Kind: eventsource.KindMonocleRestored, WindowID: 1})

	backend.mu.Lock()
	hidden := backend.hidden[1]
	backend.mu.Unlock()
	if hidden {
		t.Fatalf("expected monocle-restored retile to re-show the focused window")
	}
}

func TestMoveResizeEndRetilesTiledWindow(t *testing.T) {
	backend := newFakeBackend()
	r := newTestReducer(backend)
	addManagedWindow(t, r, backend, 1)

	backend.mu.Lock()
	backend.rects = map[platform.WindowID]platform.Rect{}
	backend.mu.Unlock()

	r.handle(eventsource.Event{Kind: eventsource.KindWindowMoveResizeStart, WindowID: 1})
	backend.mu.Lock()
	_, movedDuringStart := backend.rects[1]
	backend.mu.Unlock()
	if movedDuringStart {
		t.Fatalf("expected MoveResizeStart not to trigger a move")
	}

	r.handle(eventsource.Event{Kind: eventsource.KindWindowMoveResizeEnd, WindowID: 1})
	backend.mu.Lock()
	_, movedAfterEnd := backend.rects[1]
	backend.mu.Unlock()
	if !movedAfterEnd {
		t.Fatalf("expected MoveResizeEnd to retile and reapply the computed rect")
	}
}
