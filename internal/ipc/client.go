package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/komotile/internal/config"
	"github.com/1broseidon/komotile/internal/runtimepath"
)

// Client sends commands to the daemon over its command socket, one request
// per connection.
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient builds a Client bound to the daemon's configured socket name.
// socketName is typically config.Config.SocketName from a loaded config;
// pass "" to use the default ("komotiled.sock").
func NewClient(socketName string) *Client {
	if socketName == "" {
		socketName = "komotiled.sock"
	}
	socketPath, err := runtimepath.SocketPath(socketName)
	if err != nil {
		// Keep the constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}
	return &Client{socketPath: socketPath, timeout: 5 * time.Second}
}

// NewDefaultClient loads the on-disk configuration to resolve the socket
// name, falling back to the default if no config is present.
func NewDefaultClient() *Client {
	cfg, err := config.Load()
	if err != nil || cfg == nil {
		return NewClient("")
	}
	return NewClient(cfg.SocketName)
}

func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	if uc, ok := conn.(*net.UnixConn); ok {
		uc.CloseWrite()
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}
	return &resp, nil
}

func (c *Client) sendSimple(cmd CommandType, payload interface{}) error {
	req := &Request{Command: cmd}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal %s payload: %w", cmd, err)
		}
		req.Payload = data
	}
	_, err := c.sendRequest(req)
	return err
}

func (c *Client) FocusWindow(direction string) error {
	return c.sendSimple(CommandFocusWindow, DirectionalPayload{Direction: direction})
}

func (c *Client) MoveWindow(direction string) error {
	return c.sendSimple(CommandMoveWindow, DirectionalPayload{Direction: direction})
}

func (c *Client) StackWindow(direction string) error {
	return c.sendSimple(CommandStackWindow, DirectionalPayload{Direction: direction})
}

func (c *Client) UnstackWindow() error {
	return c.sendSimple(CommandUnstackWindow, nil)
}

func (c *Client) CycleStack(direction string) error {
	return c.sendSimple(CommandCycleStack, CyclePayload{Direction: direction})
}

func (c *Client) ResizeWindow(direction, sizing string) error {
	return c.sendSimple(CommandResizeWindow, ResizePayload{Direction: direction, Sizing: sizing})
}

func (c *Client) MoveContainerToMonitor(index int) error {
	return c.sendSimple(CommandMoveContainerToMonitorNumber, IndexPayload{Index: index})
}

func (c *Client) MoveContainerToWorkspace(index int) error {
	return c.sendSimple(CommandMoveContainerToWorkspaceNumber, IndexPayload{Index: index})
}

func (c *Client) Promote() error {
	return c.sendSimple(CommandPromote, nil)
}

func (c *Client) ToggleFloat() error {
	return c.sendSimple(CommandToggleFloat, nil)
}

func (c *Client) ToggleMonocle() error {
	return c.sendSimple(CommandToggleMonocle, nil)
}

func (c *Client) ToggleMaximize() error {
	return c.sendSimple(CommandToggleMaximize, nil)
}

func (c *Client) CloseWindow() error {
	return c.sendSimple(CommandCloseWindow, nil)
}

func (c *Client) AdjustContainerPadding(sizing string, delta int) error {
	return c.sendSimple(CommandAdjustContainerPadding, PaddingDeltaPayload{Sizing: sizing, Delta: delta})
}

func (c *Client) AdjustWorkspacePadding(sizing string, delta int) error {
	return c.sendSimple(CommandAdjustWorkspacePadding, PaddingDeltaPayload{Sizing: sizing, Delta: delta})
}

func (c *Client) ChangeLayout(layoutName string) error {
	return c.sendSimple(CommandChangeLayout, LayoutPayload{LayoutName: layoutName})
}

func (c *Client) CycleLayout() error {
	return c.sendSimple(CommandCycleLayout, nil)
}

func (c *Client) FlipLayout() error {
	return c.sendSimple(CommandFlipLayout, nil)
}

func (c *Client) SetContainerPadding(monitorIdx, workspaceIdx, px int) error {
	return c.sendSimple(CommandContainerPadding, ContainerPaddingPayload{
		WorkspaceIndexPayload: WorkspaceIndexPayload{MonitorIdx: monitorIdx, WorkspaceIdx: workspaceIdx},
		Px:                    px,
	})
}

func (c *Client) SetWorkspacePadding(monitorIdx, workspaceIdx, px int) error {
	return c.sendSimple(CommandWorkspacePadding, ContainerPaddingPayload{
		WorkspaceIndexPayload: WorkspaceIndexPayload{MonitorIdx: monitorIdx, WorkspaceIdx: workspaceIdx},
		Px:                    px,
	})
}

func (c *Client) SetWorkspaceTiling(monitorIdx, workspaceIdx int, enabled bool) error {
	return c.sendSimple(CommandWorkspaceTiling, WorkspaceTilingPayload{
		WorkspaceIndexPayload: WorkspaceIndexPayload{MonitorIdx: monitorIdx, WorkspaceIdx: workspaceIdx},
		Enabled:               enabled,
	})
}

func (c *Client) SetWorkspaceName(monitorIdx, workspaceIdx int, name string) error {
	return c.sendSimple(CommandWorkspaceName, WorkspaceNamePayload{
		WorkspaceIndexPayload: WorkspaceIndexPayload{MonitorIdx: monitorIdx, WorkspaceIdx: workspaceIdx},
		Name:                  name,
	})
}

func (c *Client) SetWorkspaceLayout(monitorIdx, workspaceIdx int, layoutName string) error {
	return c.sendSimple(CommandWorkspaceLayout, WorkspaceLayoutPayload{
		WorkspaceIndexPayload: WorkspaceIndexPayload{MonitorIdx: monitorIdx, WorkspaceIdx: workspaceIdx},
		LayoutName:            layoutName,
	})
}

func (c *Client) EnsureWorkspaces(monitorIdx, count int) error {
	return c.sendSimple(CommandEnsureWorkspaces, EnsureWorkspacesPayload{MonitorIdx: monitorIdx, Count: count})
}

func (c *Client) NewWorkspace(monitorIdx int, name string) error {
	return c.sendSimple(CommandNewWorkspace, NewWorkspacePayload{MonitorIdx: monitorIdx, Name: name})
}

func (c *Client) ToggleTiling() error {
	return c.sendSimple(CommandToggleTiling, nil)
}

// Stop asks the daemon to shut down. The daemon acknowledges before it
// actually exits, so a nil error here does not guarantee the process has
// already terminated.
func (c *Client) Stop() error {
	return c.sendSimple(CommandStop, nil)
}

func (c *Client) TogglePause() error {
	return c.sendSimple(CommandTogglePause, nil)
}

func (c *Client) Retile() error {
	return c.sendSimple(CommandRetile, nil)
}

func (c *Client) FocusMonitor(index int) error {
	return c.sendSimple(CommandFocusMonitorNumber, IndexPayload{Index: index})
}

func (c *Client) FocusWorkspace(index int) error {
	return c.sendSimple(CommandFocusWorkspaceNumber, IndexPayload{Index: index})
}

func (c *Client) ReloadConfiguration() error {
	return c.sendSimple(CommandReloadConfiguration, nil)
}

func (c *Client) WatchConfiguration() error {
	return c.sendSimple(CommandWatchConfiguration, nil)
}

func (c *Client) FloatClass(class string) error {
	return c.sendSimple(CommandFloatClass, MatchPayload{Value: class})
}

func (c *Client) FloatExe(exe string) error {
	return c.sendSimple(CommandFloatExe, MatchPayload{Value: exe})
}

func (c *Client) FloatTitle(title string) error {
	return c.sendSimple(CommandFloatTitle, MatchPayload{Value: title})
}

func (c *Client) SetFocusFollowsMouse(enabled bool) error {
	return c.sendSimple(CommandFocusFollowsMouse, BoolPayload{Enabled: enabled})
}

func (c *Client) AddSubscriberSocket(name string) error {
	return c.sendSimple(CommandAddSubscriberSocket, SubscriberPayload{Name: name})
}

func (c *Client) RemoveSubscriberSocket(name string) error {
	return c.sendSimple(CommandRemoveSubscriberSocket, SubscriberPayload{Name: name})
}

// State retrieves the full snapshot of monitors, workspaces, containers,
// and windows.
func (c *Client) State() (json.RawMessage, error) {
	resp, err := c.sendRequest(&Request{Command: CommandState})
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) GetMonitors() (*MonitorsData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetMonitors})
	if err != nil {
		return nil, err
	}
	var data MonitorsData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse monitors data: %w", err)
	}
	return &data, nil
}

func (c *Client) GetStatus() (*StatusData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetStatus})
	if err != nil {
		return nil, err
	}
	var data StatusData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}
	return &data, nil
}

func (c *Client) ListLayouts() (*LayoutsData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandListLayouts})
	if err != nil {
		return nil, err
	}
	var data LayoutsData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse layouts data: %w", err)
	}
	return &data, nil
}

func (c *Client) PreviewLayout(monitorIdx, workspaceIdx int, layoutName string) (*PreviewData, error) {
	payload, err := json.Marshal(PreviewLayoutPayload{
		WorkspaceIndexPayload: WorkspaceIndexPayload{MonitorIdx: monitorIdx, WorkspaceIdx: workspaceIdx},
		LayoutName:            layoutName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal preview payload: %w", err)
	}
	resp, err := c.sendRequest(&Request{Command: CommandPreviewLayout, Payload: payload})
	if err != nil {
		return nil, err
	}
	var data PreviewData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse preview data: %w", err)
	}
	return &data, nil
}

// Ping checks whether the daemon is responding.
func (c *Client) Ping() error {
	return c.sendSimple(CommandPing, nil)
}
