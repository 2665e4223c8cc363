package notify

import (
	"bufio"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/1broseidon/komotile/internal/geometry"
	"github.com/1broseidon/komotile/internal/layout"
	"github.com/1broseidon/komotile/internal/runtimepath"
	"github.com/1broseidon/komotile/internal/wm"
)

func newTestState() *wm.State {
	st := wm.NewState()
	m := wm.NewMonitor(0, "primary", geometry.Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1080})
	ws := wm.NewWorkspace("1", layout.Columns)
	m.Workspaces.Append(ws)
	st.Monitors.Append(m)
	return st
}

func dialSubscriber(t *testing.T, name string) net.Conn {
	t.Helper()
	path, err := runtimepath.SubscriberSocketPath(name)
	if err != nil {
		t.Fatalf("resolve subscriber path: %v", err)
	}
	var conn net.Conn
	for i := 0; i < 50; i++ {
		conn, err = net.Dial("unix", path)
		if err == nil {
			return conn
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("dial subscriber socket: %v", err)
	return nil
}

func TestPublishDeliversToConnectedSubscriber(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())
	bus := New(nil)
	defer bus.Close()

	if err := bus.Subscribe("bar"); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	conn := dialSubscriber(t, "bar")
	defer conn.Close()

	bus.Publish(newTestState())

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	line, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil {
		t.Fatalf("read notification: %v", err)
	}
	var n Notification
	if err := json.Unmarshal(line, &n); err != nil {
		t.Fatalf("unmarshal notification: %v", err)
	}
	if n.Event != EventStateUpdated {
		t.Fatalf("event = %q, want %q", n.Event, EventStateUpdated)
	}
	if len(n.State.Monitors) != 1 {
		t.Fatalf("expected 1 monitor in snapshot, got %d", len(n.State.Monitors))
	}
}

func TestPublishSkipsIdenticalConsecutiveSnapshots(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())
	bus := New(nil)
	defer bus.Close()

	if err := bus.Subscribe("bar"); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	conn := dialSubscriber(t, "bar")
	defer conn.Close()

	state := newTestState()
	bus.Publish(state)
	bus.Publish(state) // identical snapshot, should not be re-sent

	reader := bufio.NewReader(conn)
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, err := reader.ReadBytes('\n'); err != nil {
		t.Fatalf("read first notification: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, err := reader.ReadBytes('\n'); err == nil {
		t.Fatalf("expected no second notification for an identical snapshot")
	}
}

func TestPublishEvictsSubscriberOnBrokenPipe(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())
	bus := New(nil)
	defer bus.Close()

	if err := bus.Subscribe("bar"); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	conn := dialSubscriber(t, "bar")
	conn.Close() // subscriber goes away before the next publish

	// Give acceptLoop a moment and then publish twice; neither call may
	// panic or block despite the dead connection.
	time.Sleep(20 * time.Millisecond)
	bus.Publish(newTestState())

	state2 := newTestState()
	state2.Paused = true
	bus.Publish(state2)

	bus.mu.Lock()
	sub := bus.subscribers["bar"]
	bus.mu.Unlock()
	sub.mu.Lock()
	defer sub.mu.Unlock()
	if sub.conn != nil {
		t.Fatalf("expected dead subscriber connection to be cleared")
	}
}
