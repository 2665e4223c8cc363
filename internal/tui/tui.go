// Package tui is a Bubble Tea dashboard fed by the notification bus: it
// renders the live monitor/workspace/container/window tree as newline-
// delimited JSON state snapshots arrive, with no polling of its own.
package tui

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/catppuccin/go"
	"github.com/dustin/go-humanize"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/1broseidon/komotile/internal/notify"
)

var flavor = catppuccin.Mocha

func hex(c catppuccin.Color) lipgloss.Color {
	return lipgloss.Color(c.Hex)
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(hex(flavor.Mauve()))
	dimStyle    = lipgloss.NewStyle().Foreground(hex(flavor.Overlay1()))
	focusStyle  = lipgloss.NewStyle().Bold(true).Foreground(hex(flavor.Green()))
	floatStyle  = lipgloss.NewStyle().Foreground(hex(flavor.Peach()))
	pausedStyle = lipgloss.NewStyle().Bold(true).Foreground(hex(flavor.Red()))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(hex(flavor.Surface2())).Padding(0, 1)
)

// pulseColor blends the palette's green toward its teal by t (0..1), giving
// the focused container's line a slow breathing highlight instead of a
// static one.
func pulseColor(t float64) lipgloss.Color {
	a, _ := colorful.Hex(flavor.Green().Hex)
	b, _ := colorful.Hex(flavor.Teal().Hex)
	return lipgloss.Color(a.BlendLuv(b, t).Hex())
}

type snapshotMsg notify.StateSnapshot

type connErrMsg struct{ err error }

type pulseTickMsg time.Time

// Model is the root Bubble Tea model for the monitor dashboard. Rendered
// content is pushed through a viewport so a tree with more containers and
// windows than fit on screen scrolls instead of getting clipped.
type Model struct {
	conn      net.Conn
	startedAt time.Time

	state      notify.StateSnapshot
	haveState  bool
	lastUpdate time.Time
	err        error

	monitorCursor int
	pulsePhase    float64

	viewport viewport.Model
	ready    bool

	quitting bool
}

// New builds a Model that reads newline-delimited notifications from conn
// until it's closed.
func New(conn net.Conn) Model {
	return Model{conn: conn, startedAt: time.Now()}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(readLine(m.conn), pulseTick())
}

func pulseTick() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(t time.Time) tea.Msg { return pulseTickMsg(t) })
}

func readLine(conn net.Conn) tea.Cmd {
	return func() tea.Msg {
		reader := bufio.NewReaderSize(conn, 64*1024)
		line, err := reader.ReadBytes('\n')
		if err != nil {
			return connErrMsg{err: err}
		}
		var n notify.Notification
		if err := json.Unmarshal(line, &n); err != nil {
			return connErrMsg{err: err}
		}
		return snapshotMsg(n.State)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-2)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 2
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "[":
			if m.monitorCursor > 0 {
				m.monitorCursor--
			}
		case "]":
			if m.monitorCursor < len(m.state.Monitors)-1 {
				m.monitorCursor++
			}
		case "y":
			m.copyFocusedTitle()
		}
	case pulseTickMsg:
		m.pulsePhase += 0.05
		if m.pulsePhase > 1 {
			m.pulsePhase -= 1
		}
		return m, pulseTick()
	case snapshotMsg:
		m.state = notify.StateSnapshot(msg)
		m.haveState = true
		m.lastUpdate = time.Now()
		if m.monitorCursor >= len(m.state.Monitors) {
			m.monitorCursor = 0
		}
		return m, readLine(m.conn)
	case connErrMsg:
		m.err = msg.err
		return m, tea.Quit
	}

	if m.ready {
		m.viewport.SetContent(m.renderTree())
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

// copyFocusedTitle copies the focused window's title on the selected
// monitor's focused workspace to the clipboard, for pasting into a bug
// report or chat without retyping it.
func (m Model) copyFocusedTitle() {
	if m.monitorCursor >= len(m.state.Monitors) {
		return
	}
	mon := m.state.Monitors[m.monitorCursor]
	if mon.FocusedWorkspace >= len(mon.Workspaces) {
		return
	}
	ws := mon.Workspaces[mon.FocusedWorkspace]
	if ws.FocusedContainer >= len(ws.Containers) {
		return
	}
	c := ws.Containers[ws.FocusedContainer]
	if c.FocusedIdx >= len(c.Windows) {
		return
	}
	_ = clipboard.WriteAll(c.Windows[c.FocusedIdx].Title)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	header := titleStyle.Render("komotile monitor") + "\n"

	if m.err != nil {
		return header + pausedStyle.Render(fmt.Sprintf("connection lost: %v", m.err)) + "\n"
	}

	if !m.haveState {
		return header + dimStyle.Render("waiting for first state update...") + "\n"
	}

	status := fmt.Sprintf("up %s  last update %s", humanize.Time(m.startedAt), humanize.Time(m.lastUpdate))
	if m.state.Paused {
		header += pausedStyle.Render("PAUSED") + "  " + dimStyle.Render(status) + "\n"
	} else {
		header += dimStyle.Render(status) + "\n"
	}

	footer := dimStyle.Render("[/] select monitor · ↑/↓ scroll · y copy focused title · q quit")

	if !m.ready {
		return boxStyle.Render(header + m.renderTree() + "\n" + footer)
	}
	return boxStyle.Render(header + m.viewport.View() + "\n" + footer)
}

// renderTree renders the monitor/workspace/container tree for the currently
// selected monitor; it is the viewport's content.
func (m Model) renderTree() string {
	var b strings.Builder

	for mi, mon := range m.state.Monitors {
		header := fmt.Sprintf("monitor %d (%s) %dx%d", mon.ID, mon.Serial, mon.Size.Right, mon.Size.Bottom)
		if mi == m.monitorCursor {
			b.WriteString(focusStyle.Render("> "+header) + "\n")
		} else {
			b.WriteString(dimStyle.Render("  "+header) + "\n")
		}
		if mi != m.monitorCursor {
			continue
		}
		for wi, ws := range mon.Workspaces {
			marker := "  "
			if wi == mon.FocusedWorkspace {
				marker = "* "
			}
			b.WriteString(fmt.Sprintf("    %sworkspace %q (%s)", marker, ws.Name, ws.Layout))
			if ws.Monocle {
				b.WriteString(" [monocle]")
			}
			if ws.Maximized {
				b.WriteString(" [maximized]")
			}
			b.WriteString("\n")
			for ci, c := range ws.Containers {
				style := dimStyle
				if wi == mon.FocusedWorkspace && ci == ws.FocusedContainer {
					style = lipgloss.NewStyle().Foreground(pulseColor(m.pulsePhase)).Bold(true)
				}
				titles := make([]string, len(c.Windows))
				for i, w := range c.Windows {
					titles[i] = w.Title
				}
				b.WriteString(style.Render(fmt.Sprintf("      [%d] %s", ci, strings.Join(titles, " | "))) + "\n")
			}
			for _, w := range ws.Floating {
				b.WriteString(floatStyle.Render(fmt.Sprintf("      (float) %s", w.Title)) + "\n")
			}
		}
	}

	return b.String()
}
