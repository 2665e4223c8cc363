package wm

import (
	"testing"

	"github.com/1broseidon/komotile/internal/config"
	"github.com/1broseidon/komotile/internal/geometry"
	"github.com/1broseidon/komotile/internal/layout"
	"github.com/1broseidon/komotile/internal/platform"
)

func newTestWorkspace() *Workspace {
	return NewWorkspace("main", layout.BSP)
}

func TestAddWindowCreatesFocusedContainer(t *testing.T) {
	ws := newTestWorkspace()
	ws.AddWindow(1, Window{ID: 100, Title: "a"}, false)
	ws.AddWindow(2, Window{ID: 101, Title: "b"}, false)

	if ws.Containers.Len() != 2 {
		t.Fatalf("expected 2 containers, got %d", ws.Containers.Len())
	}
	focused, ok := ws.FocusedContainer()
	if !ok {
		t.Fatalf("expected a focused container")
	}
	win, _ := focused.FocusedWindow()
	if win.ID != 101 {
		t.Fatalf("expected newest window focused, got id %d", win.ID)
	}
}

func TestAddWindowAsFloatingSkipsTiling(t *testing.T) {
	ws := newTestWorkspace()
	ws.AddWindow(1, Window{ID: 100}, true)
	if ws.Containers.Len() != 0 {
		t.Fatalf("expected no tiled containers")
	}
	if len(ws.Floating) != 1 {
		t.Fatalf("expected one floating window")
	}
}

func TestRemoveWindowPrunesEmptyContainer(t *testing.T) {
	ws := newTestWorkspace()
	ws.AddWindow(1, Window{ID: 100}, false)

	if !ws.RemoveWindowByID(100) {
		t.Fatalf("expected window to be found and removed")
	}
	if ws.Containers.Len() != 0 {
		t.Fatalf("expected container to be pruned once empty")
	}
}

func TestArrangeMonocleShowsOnlyFocused(t *testing.T) {
	ws := newTestWorkspace()
	ws.AddWindow(1, Window{ID: 100}, false)
	ws.AddWindow(2, Window{ID: 101}, false)
	ws.Monocle = true

	rects := ws.Arrange(geometry.Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1080})
	if len(rects) != 1 {
		t.Fatalf("expected exactly one visible rect in monocle mode, got %d", len(rects))
	}
}

func TestArrangeMaximizedOverridesTiling(t *testing.T) {
	ws := newTestWorkspace()
	ws.AddWindow(1, Window{ID: 100}, false)
	ws.AddWindow(2, Window{ID: 101}, false)
	c, _ := ws.FocusedContainer()
	ws.Maximized = c

	area := geometry.Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1080}
	rects := ws.Arrange(area)
	if len(rects) != 1 {
		t.Fatalf("expected exactly one rect when maximized, got %d", len(rects))
	}
	if rects[c] != area {
		t.Fatalf("expected maximized container to fill the work area, got %+v", rects[c])
	}
}

func TestStateValidateCatchesDuplicateWindow(t *testing.T) {
	s := NewState()
	m := NewMonitor(0, "primary", geometry.Rect{Right: 1920, Bottom: 1080})
	ws := NewWorkspace("main", layout.BSP)
	ws.AddWindow(s.NextContainerID(), Window{ID: 1}, false)
	m.Workspaces.Append(ws)
	s.Monitors.Append(m)

	if err := s.Validate(); err != nil {
		t.Fatalf("expected valid state, got %v", err)
	}

	// Duplicate the same window ID into the floating list to trigger the invariant.
	ws.Floating = append(ws.Floating, Window{ID: 1})
	if err := s.Validate(); err == nil {
		t.Fatalf("expected duplicate-window invariant violation")
	}
}

func TestContainerForWindowFindsOwningWorkspace(t *testing.T) {
	s := NewState()
	m := NewMonitor(0, "primary", geometry.Rect{Right: 1920, Bottom: 1080})
	ws := NewWorkspace("main", layout.BSP)
	ws.AddWindow(s.NextContainerID(), Window{ID: 42}, false)
	m.Workspaces.Append(ws)
	s.Monitors.Append(m)

	foundMon, foundWs, foundContainer, ok := s.ContainerForWindow(platform.WindowID(42))
	if !ok {
		t.Fatalf("expected to find window 42")
	}
	if foundMon != m || foundWs != ws {
		t.Fatalf("expected to find the owning monitor/workspace")
	}
	if win, _ := foundContainer.FocusedWindow(); win.ID != 42 {
		t.Fatalf("expected container's focused window to be 42")
	}
}

func TestDecideAppliesFirstMatchingRule(t *testing.T) {
	rules := []config.ApplicationRule{
		{Matches: []config.MatchRule{{Kind: config.MatchClass, Value: "rofi"}}, Floating: true},
		{Matches: []config.MatchRule{{Kind: config.MatchClass, Value: "polybar"}}, Ignore: true},
	}

	d := Decide(rules, Window{Class: "rofi"})
	if !d.Float || d.Ignore {
		t.Fatalf("expected rofi to float, got %+v", d)
	}

	d = Decide(rules, Window{Class: "polybar"})
	if !d.Ignore {
		t.Fatalf("expected polybar to be ignored, got %+v", d)
	}

	d = Decide(rules, Window{Class: "firefox", HasTitlebar: true})
	if d.Ignore || d.Float {
		t.Fatalf("expected no rule to match firefox, got %+v", d)
	}
}

func TestDecideFallsBackToTitlebarPredicateWithNoMatchingRule(t *testing.T) {
	var rules []config.ApplicationRule

	if d := Decide(rules, Window{Class: "firefox", HasTitlebar: true}); d.Ignore {
		t.Fatalf("expected a titled, non-tool, non-cloaked window to be managed, got %+v", d)
	}
	if d := Decide(rules, Window{Class: "popup"}); !d.Ignore {
		t.Fatalf("expected a window with no titlebar to be rejected, got %+v", d)
	}
	if d := Decide(rules, Window{Class: "palette", HasTitlebar: true, ToolWindow: true}); !d.Ignore {
		t.Fatalf("expected a tool window to be rejected, got %+v", d)
	}
	if d := Decide(rules, Window{Class: "background", HasTitlebar: true, Cloaked: true}); !d.Ignore {
		t.Fatalf("expected a cloaked window to be rejected, got %+v", d)
	}
}
