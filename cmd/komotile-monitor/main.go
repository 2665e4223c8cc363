// Command komotile-monitor is a Bubble Tea dashboard over the daemon's
// notification bus: it registers a subscriber socket, then renders the
// monitor/workspace/container/window tree live as notifications arrive.
package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/komotile/internal/ipc"
	"github.com/1broseidon/komotile/internal/runtimepath"
	"github.com/1broseidon/komotile/internal/tui"
)

func main() {
	name := flag.String("name", defaultSubscriberName(), "subscriber name registered with the daemon")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	client := ipc.NewDefaultClient()
	if err := client.AddSubscriberSocket(*name); err != nil {
		fmt.Fprintf(os.Stderr, "failed to register subscriber %q: %v\n", *name, err)
		os.Exit(1)
	}
	defer client.RemoveSubscriberSocket(*name)

	path, err := runtimepath.SubscriberSocketPath(*name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve subscriber socket path: %v\n", err)
		os.Exit(1)
	}

	conn, err := dialWithRetry(ctx, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to subscriber socket: %v\n", err)
		os.Exit(1)
	}

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	p := tea.NewProgram(tui.New(conn))
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "komotile-monitor: %v\n", err)
		os.Exit(1)
	}
}

func dialWithRetry(ctx context.Context, path string) (net.Conn, error) {
	deadline := time.Now().Add(2 * time.Second)
	var lastErr error
	for time.Now().Before(deadline) {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		conn, err := net.Dial("unix", path)
		if err == nil {
			return conn, nil
		}
		lastErr = err
		time.Sleep(50 * time.Millisecond)
	}
	return nil, lastErr
}

func defaultSubscriberName() string {
	return fmt.Sprintf("%s-%d", filepath.Base(os.Args[0]), os.Getpid())
}
