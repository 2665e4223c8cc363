// Command komotile-mcp runs an MCP server on stdio that exposes the running
// daemon's command socket as tools, for use by an LLM agent driving window
// placement directly.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/komotile/internal/automation"
)

func main() {
	socket := flag.String("socket", "", "socket name to connect to (default: configured socket_name)")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: komotile-mcp [--socket name]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Starts an MCP server on stdio, for use by any MCP-compatible client or agent.")
	}
	flag.Parse()

	server, err := automation.NewServer(*socket)
	if err != nil {
		log.Fatalf("failed to create MCP server: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := server.Run(ctx); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
}
