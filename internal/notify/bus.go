package notify

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"os"
	"sync"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/1broseidon/komotile/internal/runtimepath"
	"github.com/1broseidon/komotile/internal/wm"
)

// subscriber is one named listener socket and its currently connected
// reader, if any. A subscription exists (and its socket stays bound) even
// between connections; Broadcast only writes to subscribers with a live
// connection.
type subscriber struct {
	name     string
	listener net.Listener

	mu   sync.Mutex
	conn net.Conn
}

// Bus is the notification bus: external processes call subscribe(name) on
// the command socket, which registers a named listener here; every
// subsequent state change is written to every subscriber with a live
// connection as one line of newline-delimited JSON.
type Bus struct {
	mu          sync.Mutex
	subscribers map[string]*subscriber
	lastHash    uint64
	haveHash    bool
	logger      *slog.Logger
}

// New returns an empty Bus.
func New(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{subscribers: make(map[string]*subscriber), logger: logger}
}

// Subscribe registers name, creating its well-known listener socket and
// accepting connections on it in the background. Calling Subscribe again
// with the same name closes and replaces the previous listener.
func (b *Bus) Subscribe(name string) error {
	path, err := runtimepath.SubscriberSocketPath(name)
	if err != nil {
		return fmt.Errorf("resolve subscriber socket path: %w", err)
	}
	os.Remove(path)

	ln, err := net.Listen("unix", path)
	if err != nil {
		return fmt.Errorf("listen on subscriber socket %q: %w", path, err)
	}
	if err := os.Chmod(path, 0600); err != nil {
		ln.Close()
		return fmt.Errorf("chmod subscriber socket %q: %w", path, err)
	}

	sub := &subscriber{name: name, listener: ln}

	b.mu.Lock()
	if old, ok := b.subscribers[name]; ok {
		old.close()
	}
	b.subscribers[name] = sub
	b.mu.Unlock()

	go b.acceptLoop(sub)
	return nil
}

// Unsubscribe closes name's listener socket and drops it from the bus.
func (b *Bus) Unsubscribe(name string) {
	b.mu.Lock()
	sub, ok := b.subscribers[name]
	if ok {
		delete(b.subscribers, name)
	}
	b.mu.Unlock()
	if ok {
		sub.close()
	}
}

func (b *Bus) acceptLoop(sub *subscriber) {
	for {
		conn, err := sub.listener.Accept()
		if err != nil {
			return
		}
		sub.mu.Lock()
		if sub.conn != nil {
			sub.conn.Close()
		}
		sub.conn = conn
		sub.mu.Unlock()
	}
}

func (s *subscriber) close() {
	s.listener.Close()
	s.mu.Lock()
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
	s.mu.Unlock()
}

// Publish implements reducer.SnapshotPublisher: it builds a StateSnapshot
// from state, skips the broadcast entirely if it hashes identically to the
// last one sent (an optimisation layered on top of "every state change"),
// and otherwise writes the notification to every connected subscriber.
// When a write fails (a broken pipe), that connection is closed and
// dropped without crashing the reducer; the subscriber's name and listener
// stay registered, so a reader that reconnects resumes receiving.
func (b *Bus) Publish(state *wm.State) {
	snap := Snapshot(state)

	hash, err := hashstructure.Hash(snap, hashstructure.FormatV2, nil)
	if err != nil {
		b.logger.Warn("failed to hash state snapshot, broadcasting anyway", "error", err)
	} else {
		b.mu.Lock()
		dup := b.haveHash && hash == b.lastHash
		b.lastHash = hash
		b.haveHash = true
		b.mu.Unlock()
		if dup {
			return
		}
	}

	payload, err := json.Marshal(Notification{Event: EventStateUpdated, State: snap})
	if err != nil {
		b.logger.Error("failed to marshal notification", "error", err)
		return
	}
	payload = append(payload, '\n')

	b.mu.Lock()
	subs := make([]*subscriber, 0, len(b.subscribers))
	for _, s := range b.subscribers {
		subs = append(subs, s)
	}
	b.mu.Unlock()

	for _, s := range subs {
		s.mu.Lock()
		conn := s.conn
		s.mu.Unlock()
		if conn == nil {
			continue
		}
		if _, err := conn.Write(payload); err != nil {
			b.logger.Info("dropping disconnected subscriber", "name", s.name, "error", err)
			s.mu.Lock()
			if s.conn == conn {
				conn.Close()
				s.conn = nil
			}
			s.mu.Unlock()
		}
	}
}

// Close tears down every subscriber socket.
func (b *Bus) Close() {
	b.mu.Lock()
	subs := b.subscribers
	b.subscribers = make(map[string]*subscriber)
	b.mu.Unlock()
	for _, s := range subs {
		s.close()
	}
}
