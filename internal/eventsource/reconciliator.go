package eventsource

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/1broseidon/komotile/internal/platform"
)

// WorkspaceNotification names a monitor/workspace pair that became the
// logical focus target (e.g. because a window on it was just activated)
// and needs the window manager's own focus state to catch up.
type WorkspaceNotification struct {
	MonitorIdx   int
	WorkspaceIdx int
}

// FocusSyncer is the subset of reducer behaviour the reconciliator drives:
// bringing the in-memory focus state in line with a notification, and
// reporting what it currently considers focused.
type FocusSyncer interface {
	FocusedMonitorWorkspace() (monitorIdx, workspaceIdx int)
	SyncFocusTo(monitorIdx, workspaceIdx int) error
	FocusWindowByID(id platform.WindowID) error
}

// Reconciliator serialises workspace-focus notifications onto a 1-slot
// channel so producers never block: while one notification is queued,
// further ones are dropped, so a burst of updates keeps only the first.
// It also applies the alt-tab heuristic: if a window was alt-tabbed to
// within the configured window before a cross-workspace focus notification
// arrives, that window is re-focused once the workspace switch lands.
type Reconciliator struct {
	notifications chan WorkspaceNotification
	sync          FocusSyncer
	window        time.Duration
	logger        *slog.Logger

	mu          sync.Mutex
	altTabWinID *platform.WindowID
	altTabAt    time.Time
}

// NewReconciliator builds a Reconciliator. window is the alt-tab
// re-focus heuristic's recency bound (config.AltTabReconciliationWindowMs).
func NewReconciliator(sync FocusSyncer, window time.Duration, logger *slog.Logger) *Reconciliator {
	if window <= 0 {
		window = time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciliator{
		notifications: make(chan WorkspaceNotification, 1),
		sync:          sync,
		window:        window,
		logger:        logger,
	}
}

// Notify records that monitorIdx/workspaceIdx should become focused. If a
// notification is already queued it is left in place and this one is
// dropped with a warning.
func (r *Reconciliator) Notify(monitorIdx, workspaceIdx int) {
	select {
	case r.notifications <- WorkspaceNotification{MonitorIdx: monitorIdx, WorkspaceIdx: workspaceIdx}:
	default:
		r.logger.Warn("reconciliation channel full; dropping notification")
	}
}

// NoteAltTab records that windowID was alt-tabbed to just now, so that if a
// cross-workspace focus notification lands within window it re-focuses
// windowID instead of whatever the new workspace's own focus points to.
func (r *Reconciliator) NoteAltTab(windowID platform.WindowID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := windowID
	r.altTabWinID = &id
	r.altTabAt = time.Now()
}

// Run drains notifications until ctx is cancelled, reconciling the focus
// state for each one it doesn't find already current.
func (r *Reconciliator) Run(ctx context.Context) {
	r.logger.Info("workspace reconciliator started")
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("workspace reconciliator stopped")
			return
		case n := <-r.notifications:
			r.reconcile(ctx, n)
		}
	}
}

func (r *Reconciliator) reconcile(ctx context.Context, n WorkspaceNotification) {
	defer func() {
		if err := recover(); err != nil {
			r.logger.Error("reconciliator panic recovered", "error", err)
		}
	}()

	curMonitor, curWorkspace := r.sync.FocusedMonitorWorkspace()
	if curMonitor == n.MonitorIdx && curWorkspace == n.WorkspaceIdx {
		return
	}

	if err := r.sync.SyncFocusTo(n.MonitorIdx, n.WorkspaceIdx); err != nil {
		r.logger.Error("reconciliation failed", "error", err, "monitor", n.MonitorIdx, "workspace", n.WorkspaceIdx)
		return
	}

	r.mu.Lock()
	altTabWinID := r.altTabWinID
	recent := altTabWinID != nil && time.Since(r.altTabAt) < r.window
	r.mu.Unlock()
	if !recent {
		return
	}

	// Give other events from the alt-tab a moment to settle before
	// re-focusing, matching the original reconciler's brief delay.
	select {
	case <-ctx.Done():
		return
	case <-time.After(100 * time.Millisecond):
	}

	if err := r.sync.FocusWindowByID(*altTabWinID); err != nil {
		r.logger.Warn("alt-tab refocus failed", "error", err, "window_id", *altTabWinID)
	}

	r.mu.Lock()
	r.altTabWinID = nil
	r.mu.Unlock()
}
