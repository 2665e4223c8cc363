package automation

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) handleFocusWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args DirectionalInput) (*mcpsdk.CallToolResult, DirectionalOutput, error) {
	if err := s.client.FocusWindow(args.Direction); err != nil {
		return nil, DirectionalOutput{}, err
	}
	return nil, DirectionalOutput{OK: true}, nil
}

func (s *Server) handleMoveWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args DirectionalInput) (*mcpsdk.CallToolResult, DirectionalOutput, error) {
	if err := s.client.MoveWindow(args.Direction); err != nil {
		return nil, DirectionalOutput{}, err
	}
	return nil, DirectionalOutput{OK: true}, nil
}

func (s *Server) handleStackWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args DirectionalInput) (*mcpsdk.CallToolResult, DirectionalOutput, error) {
	if err := s.client.StackWindow(args.Direction); err != nil {
		return nil, DirectionalOutput{}, err
	}
	return nil, DirectionalOutput{OK: true}, nil
}

func (s *Server) handleUnstackWindow(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, SimpleOutput, error) {
	if err := s.client.UnstackWindow(); err != nil {
		return nil, SimpleOutput{}, err
	}
	return nil, SimpleOutput{OK: true}, nil
}

func (s *Server) handleResizeWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args ResizeInput) (*mcpsdk.CallToolResult, ResizeOutput, error) {
	if err := s.client.ResizeWindow(args.Direction, args.Sizing); err != nil {
		return nil, ResizeOutput{}, err
	}
	return nil, ResizeOutput{OK: true}, nil
}

func (s *Server) handlePromote(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, SimpleOutput, error) {
	if err := s.client.Promote(); err != nil {
		return nil, SimpleOutput{}, err
	}
	return nil, SimpleOutput{OK: true}, nil
}

func (s *Server) handleToggleFloat(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, SimpleOutput, error) {
	if err := s.client.ToggleFloat(); err != nil {
		return nil, SimpleOutput{}, err
	}
	return nil, SimpleOutput{OK: true}, nil
}

func (s *Server) handleToggleMonocle(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, SimpleOutput, error) {
	if err := s.client.ToggleMonocle(); err != nil {
		return nil, SimpleOutput{}, err
	}
	return nil, SimpleOutput{OK: true}, nil
}

func (s *Server) handleToggleMaximize(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, SimpleOutput, error) {
	if err := s.client.ToggleMaximize(); err != nil {
		return nil, SimpleOutput{}, err
	}
	return nil, SimpleOutput{OK: true}, nil
}

func (s *Server) handleCloseWindow(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, SimpleOutput, error) {
	if err := s.client.CloseWindow(); err != nil {
		return nil, SimpleOutput{}, err
	}
	return nil, SimpleOutput{OK: true}, nil
}

func (s *Server) handleChangeLayout(_ context.Context, _ *mcpsdk.CallToolRequest, args ChangeLayoutInput) (*mcpsdk.CallToolResult, ChangeLayoutOutput, error) {
	if err := s.client.ChangeLayout(args.Layout); err != nil {
		return nil, ChangeLayoutOutput{}, err
	}
	return nil, ChangeLayoutOutput{OK: true}, nil
}

func (s *Server) handleCycleLayout(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, SimpleOutput, error) {
	if err := s.client.CycleLayout(); err != nil {
		return nil, SimpleOutput{}, err
	}
	return nil, SimpleOutput{OK: true}, nil
}

func (s *Server) handleFlipLayout(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, SimpleOutput, error) {
	if err := s.client.FlipLayout(); err != nil {
		return nil, SimpleOutput{}, err
	}
	return nil, SimpleOutput{OK: true}, nil
}

func (s *Server) handleMoveToMonitor(_ context.Context, _ *mcpsdk.CallToolRequest, args IndexInput) (*mcpsdk.CallToolResult, IndexOutput, error) {
	if err := s.client.MoveContainerToMonitor(args.Index); err != nil {
		return nil, IndexOutput{}, err
	}
	return nil, IndexOutput{OK: true}, nil
}

func (s *Server) handleMoveToWorkspace(_ context.Context, _ *mcpsdk.CallToolRequest, args IndexInput) (*mcpsdk.CallToolResult, IndexOutput, error) {
	if err := s.client.MoveContainerToWorkspace(args.Index); err != nil {
		return nil, IndexOutput{}, err
	}
	return nil, IndexOutput{OK: true}, nil
}

func (s *Server) handleFocusMonitor(_ context.Context, _ *mcpsdk.CallToolRequest, args IndexInput) (*mcpsdk.CallToolResult, IndexOutput, error) {
	if err := s.client.FocusMonitor(args.Index); err != nil {
		return nil, IndexOutput{}, err
	}
	return nil, IndexOutput{OK: true}, nil
}

func (s *Server) handleFocusWorkspace(_ context.Context, _ *mcpsdk.CallToolRequest, args IndexInput) (*mcpsdk.CallToolResult, IndexOutput, error) {
	if err := s.client.FocusWorkspace(args.Index); err != nil {
		return nil, IndexOutput{}, err
	}
	return nil, IndexOutput{OK: true}, nil
}

func (s *Server) handleToggleTiling(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, SimpleOutput, error) {
	if err := s.client.ToggleTiling(); err != nil {
		return nil, SimpleOutput{}, err
	}
	return nil, SimpleOutput{OK: true}, nil
}

func (s *Server) handleRetile(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, SimpleOutput, error) {
	if err := s.client.Retile(); err != nil {
		return nil, SimpleOutput{}, err
	}
	return nil, SimpleOutput{OK: true}, nil
}

func (s *Server) handleReloadConfiguration(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, SimpleOutput, error) {
	if err := s.client.ReloadConfiguration(); err != nil {
		return nil, SimpleOutput{}, err
	}
	return nil, SimpleOutput{OK: true}, nil
}

func (s *Server) handleFloatClass(_ context.Context, _ *mcpsdk.CallToolRequest, args FloatRuleInput) (*mcpsdk.CallToolResult, FloatRuleOutput, error) {
	if err := s.client.FloatClass(args.Value); err != nil {
		return nil, FloatRuleOutput{}, err
	}
	return nil, FloatRuleOutput{OK: true}, nil
}

func (s *Server) handleFloatTitle(_ context.Context, _ *mcpsdk.CallToolRequest, args FloatRuleInput) (*mcpsdk.CallToolResult, FloatRuleOutput, error) {
	if err := s.client.FloatTitle(args.Value); err != nil {
		return nil, FloatRuleOutput{}, err
	}
	return nil, FloatRuleOutput{OK: true}, nil
}

func (s *Server) handleGetMonitors(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, GetMonitorsOutput, error) {
	data, err := s.client.GetMonitors()
	if err != nil {
		return nil, GetMonitorsOutput{}, err
	}
	out := GetMonitorsOutput{Monitors: make([]MonitorInfo, 0, len(data.Monitors))}
	for _, m := range data.Monitors {
		out.Monitors = append(out.Monitors, MonitorInfo{
			ID:               m.ID,
			Serial:           m.Serial,
			Left:             m.Left,
			Top:              m.Top,
			Width:            m.Width,
			Height:           m.Height,
			WorkspaceCount:   m.WorkspaceCount,
			FocusedWorkspace: m.FocusedWorkspace,
		})
	}
	return nil, out, nil
}

func (s *Server) handleGetStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, GetStatusOutput, error) {
	status, err := s.client.GetStatus()
	if err != nil {
		return nil, GetStatusOutput{}, err
	}
	return nil, GetStatusOutput{UptimeSeconds: status.UptimeSeconds, Paused: status.Paused}, nil
}

func (s *Server) handleListLayouts(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, ListLayoutsOutput, error) {
	data, err := s.client.ListLayouts()
	if err != nil {
		return nil, ListLayoutsOutput{}, err
	}
	return nil, ListLayoutsOutput{Layouts: data.Layouts}, nil
}

func (s *Server) handlePreviewLayout(_ context.Context, _ *mcpsdk.CallToolRequest, args PreviewLayoutInput) (*mcpsdk.CallToolResult, PreviewLayoutOutput, error) {
	data, err := s.client.PreviewLayout(args.MonitorIdx, args.WorkspaceIdx, args.Layout)
	if err != nil {
		return nil, PreviewLayoutOutput{}, err
	}
	out := PreviewLayoutOutput{Rects: make([]RectInfo, 0, len(data.Rects))}
	for _, r := range data.Rects {
		out.Rects = append(out.Rects, RectInfo{Left: r.Left, Top: r.Top, Right: r.Right, Bottom: r.Bottom})
	}
	return nil, out, nil
}

func (s *Server) handleGetState(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, GetStateOutput, error) {
	raw, err := s.client.State()
	if err != nil {
		return nil, GetStateOutput{}, err
	}
	return nil, GetStateOutput{State: string(raw)}, nil
}
