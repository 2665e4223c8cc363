package reducer

import (
	"github.com/1broseidon/komotile/internal/config"
	"github.com/1broseidon/komotile/internal/eventsource"
	"github.com/1broseidon/komotile/internal/geometry"
	"github.com/1broseidon/komotile/internal/notify"
)

// Submit applies a single command synchronously and returns its error,
// bypassing the event bus. The command socket uses this rather than
// eventsource.Bus.PublishCommand whenever the caller needs the result
// inline (an error response, or a confirmed side effect) instead of
// fire-and-forget delivery.
func (r *Reducer) Submit(cmd eventsource.Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	err := r.dispatchCommand(cmd)
	r.publish()
	return err
}

// StateSnapshot returns a point-in-time, JSON-friendly view of the whole
// state tree under lock.
func (r *Reducer) StateSnapshot() notify.StateSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return notify.Snapshot(r.state)
}

// ListLayouts returns every layout name the engine can resolve: the
// built-ins plus any configured custom layouts.
func (r *Reducer) ListLayouts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := config.BuiltinLayoutNames()
	for name := range r.cfg.CustomLayouts {
		names = append(names, name)
	}
	return names
}

// PreviewLayout computes the rects layoutName would produce for the named
// workspace without mutating state, for the PREVIEW_LAYOUT query.
func (r *Reducer) PreviewLayout(monitorIdx, workspaceIdx int, layoutName string) ([]geometry.Rect, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	monitor, ws, err := r.workspaceAt(monitorIdx, workspaceIdx)
	if err != nil {
		return nil, err
	}
	l, rerr := r.cfg.ResolveLayout(layoutName)
	if rerr != nil {
		return nil, newErr(InvalidArgument, "%v", rerr)
	}

	original := ws.Layout
	ws.Layout = l
	defer func() { ws.Layout = original }()

	arranged := ws.Arrange(monitor.WorkArea())
	out := make([]geometry.Rect, 0, len(arranged))
	for _, c := range ws.Containers.Elements() {
		if rect, ok := arranged[c]; ok {
			out = append(out, rect)
		}
	}
	return out, nil
}

// AddFloatRule appends an always-float application rule matched on a single
// attribute (class/exe/title), used by the `float-class`/`float-exe`/
// `float-title` command-socket messages.
func (r *Reducer) AddFloatRule(kind config.MatchKind, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cfg.ApplicationRules = append(r.cfg.ApplicationRules, config.ApplicationRule{
		Name:     "float-" + string(kind) + "-" + value,
		Matches:  []config.MatchRule{{Kind: kind, Value: value}},
		Floating: true,
	})
}

// SetFocusFollowsMouse updates the live focus-follows-mouse flag.
func (r *Reducer) SetFocusFollowsMouse(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cfg.FocusFollowsMouse = enabled
}

// ReloadConfig validates and swaps in a freshly-loaded configuration.
// Already-placed windows and their containers are untouched; only
// subsequently-evaluated rules and defaults change.
func (r *Reducer) ReloadConfig(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return newErr(InvalidArgument, "%v", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cfg = cfg
	return nil
}

// Config returns the live configuration. Callers must treat the result as
// read-only; mutate through ReloadConfig/AddFloatRule/SetFocusFollowsMouse
// instead of writing fields directly.
func (r *Reducer) Config() *config.Config {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cfg
}
