package ipc

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/1broseidon/komotile/internal/config"
	"github.com/1broseidon/komotile/internal/eventsource"
)

func unmarshalPayload(data json.RawMessage, v interface{}) error {
	if len(data) == 0 {
		return fmt.Errorf("missing payload")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}

func (s *Server) handleDirectional(payload json.RawMessage, name eventsource.CommandName) *Response {
	var p DirectionalPayload
	if err := unmarshalPayload(payload, &p); err != nil {
		return NewErrorResponse(err.Error())
	}
	dir, err := parseDirection(p.Direction)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return s.submit(eventsource.Command{Name: name, Direction: dir})
}

func (s *Server) handleCycleStack(payload json.RawMessage) *Response {
	var p CyclePayload
	if err := unmarshalPayload(payload, &p); err != nil {
		return NewErrorResponse(err.Error())
	}
	cycleDir, err := parseCycleDirection(p.Direction)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return s.submit(eventsource.Command{Name: eventsource.CommandCycleStack, CycleDir: cycleDir})
}

func (s *Server) handleResize(payload json.RawMessage) *Response {
	var p ResizePayload
	if err := unmarshalPayload(payload, &p); err != nil {
		return NewErrorResponse(err.Error())
	}
	dir, err := parseDirection(p.Direction)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	sizing, err := parseSizing(p.Sizing)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return s.submit(eventsource.Command{Name: eventsource.CommandResize, Direction: dir, Sizing: sizing})
}

func (s *Server) handleIndex(payload json.RawMessage, name eventsource.CommandName, monitor bool) *Response {
	var p IndexPayload
	if err := unmarshalPayload(payload, &p); err != nil {
		return NewErrorResponse(err.Error())
	}
	cmd := eventsource.Command{Name: name}
	if monitor {
		cmd.MonitorIdx = p.Index
	} else {
		cmd.WorkspaceIdx = p.Index
	}
	return s.submit(cmd)
}

func (s *Server) handlePaddingDelta(payload json.RawMessage, name eventsource.CommandName) *Response {
	var p PaddingDeltaPayload
	if err := unmarshalPayload(payload, &p); err != nil {
		return NewErrorResponse(err.Error())
	}
	sizing, err := parseSizing(p.Sizing)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return s.submit(eventsource.Command{Name: name, Sizing: sizing, Delta: p.Delta})
}

func (s *Server) handleChangeLayout(payload json.RawMessage) *Response {
	var p LayoutPayload
	if err := unmarshalPayload(payload, &p); err != nil {
		return NewErrorResponse(err.Error())
	}
	return s.submit(eventsource.Command{Name: eventsource.CommandChangeLayout, LayoutName: p.LayoutName})
}

func (s *Server) handleWorkspaceIndexPadding(payload json.RawMessage, name eventsource.CommandName) *Response {
	var p ContainerPaddingPayload
	if err := unmarshalPayload(payload, &p); err != nil {
		return NewErrorResponse(err.Error())
	}
	return s.submit(eventsource.Command{
		Name:         name,
		MonitorIdx:   p.MonitorIdx,
		WorkspaceIdx: p.WorkspaceIdx,
		Delta:        p.Px,
	})
}

func (s *Server) handleWorkspaceTiling(payload json.RawMessage) *Response {
	var p WorkspaceTilingPayload
	if err := unmarshalPayload(payload, &p); err != nil {
		return NewErrorResponse(err.Error())
	}
	return s.submit(eventsource.Command{
		Name:         eventsource.CommandSetWorkspaceTiling,
		MonitorIdx:   p.MonitorIdx,
		WorkspaceIdx: p.WorkspaceIdx,
		Enabled:      p.Enabled,
	})
}

func (s *Server) handleWorkspaceName(payload json.RawMessage) *Response {
	var p WorkspaceNamePayload
	if err := unmarshalPayload(payload, &p); err != nil {
		return NewErrorResponse(err.Error())
	}
	return s.submit(eventsource.Command{
		Name:          eventsource.CommandSetWorkspaceName,
		MonitorIdx:    p.MonitorIdx,
		WorkspaceIdx:  p.WorkspaceIdx,
		WorkspaceName: p.Name,
	})
}

func (s *Server) handleWorkspaceLayout(payload json.RawMessage) *Response {
	var p WorkspaceLayoutPayload
	if err := unmarshalPayload(payload, &p); err != nil {
		return NewErrorResponse(err.Error())
	}
	return s.submit(eventsource.Command{
		Name:         eventsource.CommandSetWorkspaceLayout,
		MonitorIdx:   p.MonitorIdx,
		WorkspaceIdx: p.WorkspaceIdx,
		LayoutName:   p.LayoutName,
	})
}

func (s *Server) handleEnsureWorkspaces(payload json.RawMessage) *Response {
	var p EnsureWorkspacesPayload
	if err := unmarshalPayload(payload, &p); err != nil {
		return NewErrorResponse(err.Error())
	}
	return s.submit(eventsource.Command{
		Name:       eventsource.CommandEnsureWorkspaces,
		MonitorIdx: p.MonitorIdx,
		Count:      p.Count,
	})
}

func (s *Server) handleNewWorkspace(payload json.RawMessage) *Response {
	var p NewWorkspacePayload
	if err := unmarshalPayload(payload, &p); err != nil {
		return NewErrorResponse(err.Error())
	}
	return s.submit(eventsource.Command{
		Name:          eventsource.CommandNewWorkspace,
		MonitorIdx:    p.MonitorIdx,
		WorkspaceName: p.Name,
	})
}

// handleStop acknowledges the request before asking the daemon to shut
// down, so the client gets its response before the socket disappears.
func (s *Server) handleStop() *Response {
	if s.stop != nil {
		go func() {
			time.Sleep(100 * time.Millisecond)
			s.stop()
		}()
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleReloadConfiguration() *Response {
	cfg, err := config.Load()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("failed to load configuration: %v", err))
	}
	if err := s.reducer.ReloadConfig(cfg); err != nil {
		return NewErrorResponse(err.Error())
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

// handleWatchConfiguration starts a polling goroutine that stats the config
// file and reloads on change. No library in the dependency set offers
// filesystem change notification, so this uses a plain stdlib ticker.
func (s *Server) handleWatchConfiguration() *Response {
	if s.watchStop == nil {
		path, err := config.DefaultConfigPath()
		if err != nil {
			return NewErrorResponse(err.Error())
		}
		s.watchPath = path
		s.watchStop = make(chan struct{})
		go s.watchConfigLoop(path, s.watchStop)
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) watchConfigLoop(path string, stop chan struct{}) {
	var lastMod time.Time
	if info, err := os.Stat(path); err == nil {
		lastMod = info.ModTime()
	}

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			info, err := os.Stat(path)
			if err != nil {
				continue
			}
			if info.ModTime().Equal(lastMod) {
				continue
			}
			lastMod = info.ModTime()
			cfg, err := config.Load()
			if err != nil {
				s.logger.Warn("configuration reload failed", "error", err)
				continue
			}
			if err := s.reducer.ReloadConfig(cfg); err != nil {
				s.logger.Warn("configuration reload rejected", "error", err)
			}
		}
	}
}

func (s *Server) handleFloatRule(payload json.RawMessage, kind config.MatchKind) *Response {
	var p MatchPayload
	if err := unmarshalPayload(payload, &p); err != nil {
		return NewErrorResponse(err.Error())
	}
	s.reducer.AddFloatRule(kind, p.Value)
	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleFocusFollowsMouse(payload json.RawMessage) *Response {
	var p BoolPayload
	if err := unmarshalPayload(payload, &p); err != nil {
		return NewErrorResponse(err.Error())
	}
	s.reducer.SetFocusFollowsMouse(p.Enabled)
	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleAddSubscriber(payload json.RawMessage) *Response {
	var p SubscriberPayload
	if err := unmarshalPayload(payload, &p); err != nil {
		return NewErrorResponse(err.Error())
	}
	if s.notify == nil {
		return NewErrorResponse("notification bus not available")
	}
	if err := s.notify.Subscribe(p.Name); err != nil {
		return NewErrorResponse(err.Error())
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleRemoveSubscriber(payload json.RawMessage) *Response {
	var p SubscriberPayload
	if err := unmarshalPayload(payload, &p); err != nil {
		return NewErrorResponse(err.Error())
	}
	if s.notify != nil {
		s.notify.Unsubscribe(p.Name)
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleState() *Response {
	snap := s.reducer.StateSnapshot()
	resp, err := NewOKResponse(snap)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) handleGetMonitors() *Response {
	snap := s.reducer.StateSnapshot()
	data := MonitorsData{Monitors: make([]MonitorInfo, len(snap.Monitors))}
	for i, m := range snap.Monitors {
		data.Monitors[i] = MonitorInfo{
			ID:               m.ID,
			Serial:           m.Serial,
			Left:             m.Size.Left,
			Top:              m.Size.Top,
			Width:            m.Size.Right,
			Height:           m.Size.Bottom,
			WorkspaceCount:   len(m.Workspaces),
			FocusedWorkspace: m.FocusedWorkspace,
		}
	}
	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) handleGetStatus() *Response {
	snap := s.reducer.StateSnapshot()
	data := StatusData{
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		Paused:        snap.Paused,
	}
	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) handleListLayouts() *Response {
	data := LayoutsData{Layouts: s.reducer.ListLayouts()}
	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) handlePreviewLayout(payload json.RawMessage) *Response {
	var p PreviewLayoutPayload
	if err := unmarshalPayload(payload, &p); err != nil {
		return NewErrorResponse(err.Error())
	}
	rects, err := s.reducer.PreviewLayout(p.MonitorIdx, p.WorkspaceIdx, p.LayoutName)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	data := PreviewData{Rects: make([]RectInfo, len(rects))}
	for i, r := range rects {
		data.Rects[i] = RectInfo{Left: r.Left, Top: r.Top, Right: r.Right, Bottom: r.Bottom}
	}
	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}
