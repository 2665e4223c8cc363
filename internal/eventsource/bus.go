package eventsource

import (
	"context"
	"log/slog"

	"github.com/1broseidon/komotile/internal/platform"
)

// Bus carries platform events (from the OS hook pump and the daemon's
// startup window scan) and commands into one bounded channel the reducer
// drains. The reconciliator and focus notifier have channels of their own
// and call the reducer directly. Sends never
// block a producer: a full channel means the reducer is behind, and the
// newest event always wins over the oldest queued one.
type Bus struct {
	events chan Event
	logger *slog.Logger
}

// NewBus creates a Bus with the given channel capacity.
func NewBus(capacity int, logger *slog.Logger) *Bus {
	if capacity <= 0 {
		capacity = 256
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{events: make(chan Event, capacity), logger: logger}
}

// Events returns the channel the reducer should range over.
func (b *Bus) Events() <-chan Event {
	return b.events
}

// Publish enqueues an event, dropping the oldest queued event and logging a
// warning if the channel is full rather than blocking the caller.
func (b *Bus) Publish(ev Event) {
	select {
	case b.events <- ev:
		return
	default:
	}

	select {
	case <-b.events:
		b.logger.Warn("event bus full, dropped oldest queued event")
	default:
	}

	select {
	case b.events <- ev:
	default:
		b.logger.Warn("event bus still full after eviction, dropping event", "kind", ev.Kind)
	}
}

// PumpOSEvents subscribes to the backend's raw notifications and republishes
// them as Events until ctx is cancelled.
func (b *Bus) PumpOSEvents(ctx context.Context, backend platform.Backend) error {
	raw, err := backend.Subscribe(ctx)
	if err != nil {
		return err
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				b.logger.Error("os event pump panic recovered", "error", r)
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case re, ok := <-raw:
				if !ok {
					return
				}
				if ev, known := fromRaw(re); known {
					b.Publish(ev)
				}
			}
		}
	}()

	return nil
}

// PublishCommand is a convenience wrapper for IPC-originated commands.
func (b *Bus) PublishCommand(cmd Command) {
	b.Publish(Event{Kind: KindCommand, Command: cmd})
}
