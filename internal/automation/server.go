// Package automation exposes the command socket as an MCP server, so an
// LLM agent can drive window placement and layout the same way
// komotilectl does, one tool call per command.
package automation

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/komotile/internal/ipc"
)

const (
	ServerName    = "komotile"
	ServerVersion = "0.1.0"
)

// Server is the MCP server fronting the daemon's command socket.
type Server struct {
	mcpServer *mcpsdk.Server
	client    *ipc.Client
}

// NewServer builds a Server talking to the daemon over socketName's
// well-known path (empty uses the configured default).
func NewServer(socketName string) (*Server, error) {
	var client *ipc.Client
	if socketName == "" {
		client = ipc.NewDefaultClient()
	} else {
		client = ipc.NewClient(socketName)
	}

	if err := client.Ping(); err != nil {
		return nil, fmt.Errorf("komotile daemon not reachable: %w", err)
	}

	s := &Server{client: client}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s, nil
}

// Run starts the MCP server on stdio transport, blocking until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "focus_window",
		Description: "Move window focus to the neighboring container in the given direction within the focused workspace.",
	}, s.handleFocusWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "move_window",
		Description: "Move the focused container in the given direction, swapping with its neighbor; fails at the workspace edge.",
	}, s.handleMoveWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "stack_window",
		Description: "Stack the focused container onto its neighbor in the given direction, combining them into one tabbed container.",
	}, s.handleStackWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "unstack_window",
		Description: "Pop the focused window out of its stack into its own container.",
	}, s.handleUnstackWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "resize_window",
		Description: "Grow or shrink the focused container's split along the given direction by one resize step.",
	}, s.handleResizeWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "promote_window",
		Description: "Promote the focused container to the primary position of the current layout (e.g. BSP's master side).",
	}, s.handlePromote)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "toggle_float",
		Description: "Toggle the focused window between tiled and floating.",
	}, s.handleToggleFloat)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "toggle_monocle",
		Description: "Toggle monocle mode on the focused workspace, showing only the focused container full-screen.",
	}, s.handleToggleMonocle)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "toggle_maximize",
		Description: "Toggle the focused container to fill the workspace's usable area without leaving tiling mode.",
	}, s.handleToggleMaximize)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "close_window",
		Description: "Request the focused window close gracefully.",
	}, s.handleCloseWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "change_layout",
		Description: "Switch the focused workspace to the named layout.",
	}, s.handleChangeLayout)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "cycle_layout",
		Description: "Advance the focused workspace to the next built-in layout in the fixed rotation.",
	}, s.handleCycleLayout)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "flip_layout",
		Description: "Flip the focused workspace's layout orientation (horizontal/vertical).",
	}, s.handleFlipLayout)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "move_to_monitor",
		Description: "Move the focused container to the monitor at the given zero-based index.",
	}, s.handleMoveToMonitor)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "move_to_workspace",
		Description: "Move the focused container to the workspace at the given zero-based index on its current monitor.",
	}, s.handleMoveToWorkspace)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "focus_monitor",
		Description: "Move focus to the monitor at the given zero-based index.",
	}, s.handleFocusMonitor)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "focus_workspace",
		Description: "Move focus to the workspace at the given zero-based index on the focused monitor.",
	}, s.handleFocusWorkspace)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "toggle_tiling",
		Description: "Toggle automatic tiling on the focused workspace.",
	}, s.handleToggleTiling)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "retile",
		Description: "Force the focused workspace to recompute and reapply its layout immediately.",
	}, s.handleRetile)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "reload_configuration",
		Description: "Reload the daemon's configuration file from disk.",
	}, s.handleReloadConfiguration)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "float_class",
		Description: "Add a float-on-open rule matching windows by class.",
	}, s.handleFloatClass)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "float_title",
		Description: "Add a float-on-open rule matching windows by title substring.",
	}, s.handleFloatTitle)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_monitors",
		Description: "List the monitors the daemon currently knows about, with their geometry and workspace counts.",
	}, s.handleGetMonitors)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_status",
		Description: "Report the daemon's uptime and whether tiling is currently paused.",
	}, s.handleGetStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_layouts",
		Description: "List the layout names the daemon can switch to, including any configured custom layouts.",
	}, s.handleListLayouts)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "preview_layout",
		Description: "Compute the container rects a named layout would produce for a monitor/workspace without applying it.",
	}, s.handlePreviewLayout)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_state",
		Description: "Fetch the daemon's full state tree (monitors, workspaces, containers, windows) as JSON.",
	}, s.handleGetState)
}
