package ipc

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/komotile/internal/config"
	"github.com/1broseidon/komotile/internal/eventsource"
	"github.com/1broseidon/komotile/internal/layout"
	"github.com/1broseidon/komotile/internal/notify"
	"github.com/1broseidon/komotile/internal/reducer"
	"github.com/1broseidon/komotile/internal/runtimepath"
)

// Server accepts one JSON request per connection on the command socket,
// translates it into a reducer command or query, and writes back a single
// newline-terminated JSON response before closing.
type Server struct {
	socketPath string
	listener   net.Listener

	reducer *reducer.Reducer
	notify  *notify.Bus
	stop    func()

	startTime time.Time
	logger    *slog.Logger

	watchPath string
	watchStop chan struct{}

	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer builds a Server bound to the configured socket name under the
// runtime directory. stop is called once, from the STOP command's handler,
// to let the daemon shut itself down cleanly.
func NewServer(red *reducer.Reducer, nbus *notify.Bus, stop func(), logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	socketPath, err := runtimepath.SocketPath(red.Config().SocketName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve command socket path: %w", err)
	}
	os.Remove(socketPath)
	return &Server{
		socketPath: socketPath,
		reducer:    red,
		notify:     nbus,
		stop:       stop,
		startTime:  time.Now(),
		logger:     logger,
	}, nil
}

// Start begins listening for connections.
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create command socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info("command socket listening", "path", s.socketPath)
	go s.acceptLoop()
	return nil
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			down := s.shuttingDown
			s.shutdownMu.Unlock()
			if down {
				return
			}
			s.logger.Warn("command socket accept error", "error", err)
			continue
		}
		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Warn("command socket read error", "error", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("invalid request: %v", err))
		return
	}

	resp := s.handleCommand(req)
	respData, err := resp.Marshal()
	if err != nil {
		s.logger.Warn("failed to marshal response", "error", err)
		return
	}
	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		s.logger.Warn("failed to send response", "error", err)
	}
}

func (s *Server) sendError(conn net.Conn, msg string) {
	resp := NewErrorResponse(msg)
	data, err := resp.Marshal()
	if err != nil {
		return
	}
	data = append(data, '\n')
	conn.Write(data)
}

// Stop closes the listener and tears down the socket file.
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.watchStop != nil {
		close(s.watchStop)
	}
	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}

func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandFocusWindow:
		return s.handleDirectional(req.Payload, eventsource.CommandFocusDirection)
	case CommandMoveWindow:
		return s.handleDirectional(req.Payload, eventsource.CommandMoveDirection)
	case CommandStackWindow:
		return s.handleDirectional(req.Payload, eventsource.CommandStackDirection)
	case CommandUnstackWindow:
		return s.submit(eventsource.Command{Name: eventsource.CommandUnstack})
	case CommandCycleStack:
		return s.handleCycleStack(req.Payload)
	case CommandResizeWindow:
		return s.handleResize(req.Payload)
	case CommandMoveContainerToMonitorNumber:
		return s.handleIndex(req.Payload, eventsource.CommandMoveToMonitor, true)
	case CommandMoveContainerToWorkspaceNumber:
		return s.handleIndex(req.Payload, eventsource.CommandMoveToWorkspace, false)
	case CommandPromote:
		return s.submit(eventsource.Command{Name: eventsource.CommandPromote})
	case CommandToggleFloat:
		return s.submit(eventsource.Command{Name: eventsource.CommandToggleFloat})
	case CommandToggleMonocle:
		return s.submit(eventsource.Command{Name: eventsource.CommandToggleMonocle})
	case CommandToggleMaximize:
		return s.submit(eventsource.Command{Name: eventsource.CommandToggleMaximize})
	case CommandCloseWindow:
		return s.submit(eventsource.Command{Name: eventsource.CommandCloseWindow})

	case CommandAdjustContainerPadding:
		return s.handlePaddingDelta(req.Payload, eventsource.CommandAdjustContainerPad)
	case CommandAdjustWorkspacePadding:
		return s.handlePaddingDelta(req.Payload, eventsource.CommandAdjustWorkspacePad)
	case CommandChangeLayout:
		return s.handleChangeLayout(req.Payload)
	case CommandCycleLayout:
		return s.submit(eventsource.Command{Name: eventsource.CommandCycleLayout})
	case CommandFlipLayout:
		return s.submit(eventsource.Command{Name: eventsource.CommandFlipLayout})

	case CommandContainerPadding:
		return s.handleWorkspaceIndexPadding(req.Payload, eventsource.CommandSetContainerPadding)
	case CommandWorkspacePadding:
		return s.handleWorkspaceIndexPadding(req.Payload, eventsource.CommandSetWorkspacePadding)
	case CommandWorkspaceTiling:
		return s.handleWorkspaceTiling(req.Payload)
	case CommandWorkspaceName:
		return s.handleWorkspaceName(req.Payload)
	case CommandWorkspaceLayout:
		return s.handleWorkspaceLayout(req.Payload)

	case CommandEnsureWorkspaces:
		return s.handleEnsureWorkspaces(req.Payload)
	case CommandNewWorkspace:
		return s.handleNewWorkspace(req.Payload)
	case CommandToggleTiling:
		return s.submit(eventsource.Command{Name: eventsource.CommandToggleTiling})
	case CommandStop:
		return s.handleStop()
	case CommandTogglePause:
		return s.submit(eventsource.Command{Name: eventsource.CommandTogglePause})
	case CommandRetile:
		return s.submit(eventsource.Command{Name: eventsource.CommandRetile})
	case CommandFocusMonitorNumber:
		return s.handleIndex(req.Payload, eventsource.CommandFocusMonitor, true)
	case CommandFocusWorkspaceNumber:
		return s.handleIndex(req.Payload, eventsource.CommandFocusWorkspace, false)

	case CommandReloadConfiguration:
		return s.handleReloadConfiguration()
	case CommandWatchConfiguration:
		return s.handleWatchConfiguration()
	case CommandFloatClass:
		return s.handleFloatRule(req.Payload, config.MatchClass)
	case CommandFloatExe:
		return s.handleFloatRule(req.Payload, config.MatchExe)
	case CommandFloatTitle:
		return s.handleFloatRule(req.Payload, config.MatchTitle)
	case CommandFocusFollowsMouse:
		return s.handleFocusFollowsMouse(req.Payload)
	case CommandAddSubscriberSocket:
		return s.handleAddSubscriber(req.Payload)
	case CommandRemoveSubscriberSocket:
		return s.handleRemoveSubscriber(req.Payload)

	case CommandState:
		return s.handleState()
	case CommandGetMonitors:
		return s.handleGetMonitors()
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandListLayouts:
		return s.handleListLayouts()
	case CommandPreviewLayout:
		return s.handlePreviewLayout(req.Payload)
	case CommandPing:
		resp, _ := NewOKResponse(nil)
		return resp

	default:
		return NewErrorResponse(fmt.Sprintf("unknown command: %s", req.Command))
	}
}

// submit runs cmd synchronously and returns its error text, if any; a
// reducer error's text starts with its kind, so the client can tell a bad
// index from a platform failure.
func (s *Server) submit(cmd eventsource.Command) *Response {
	if err := s.reducer.Submit(cmd); err != nil {
		return NewErrorResponse(err.Error())
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

func parseDirection(s string) (layout.OperationDirection, error) {
	switch s {
	case "left":
		return layout.Left, nil
	case "right":
		return layout.Right, nil
	case "up":
		return layout.Up, nil
	case "down":
		return layout.Down, nil
	default:
		return 0, fmt.Errorf("unknown direction %q", s)
	}
}

func parseSizing(s string) (layout.Sizing, error) {
	switch s {
	case "increase":
		return layout.Increase, nil
	case "decrease":
		return layout.Decrease, nil
	default:
		return 0, fmt.Errorf("unknown sizing %q", s)
	}
}

func parseCycleDirection(s string) (layout.CycleDirection, error) {
	switch s {
	case "previous":
		return layout.Previous, nil
	case "next":
		return layout.Next, nil
	default:
		return 0, fmt.Errorf("unknown cycle direction %q", s)
	}
}
