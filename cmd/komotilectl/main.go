package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/1broseidon/komotile/internal/ipc"
)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stdout)
		os.Exit(0)
	}

	client := ipc.NewDefaultClient()

	switch os.Args[1] {
	case "focus":
		os.Exit(runDirectional(client.FocusWindow, os.Args[2:], "focus"))
	case "move":
		os.Exit(runDirectional(client.MoveWindow, os.Args[2:], "move"))
	case "stack":
		os.Exit(runDirectional(client.StackWindow, os.Args[2:], "stack"))
	case "unstack":
		os.Exit(runSimple(client.UnstackWindow))
	case "cycle-stack":
		os.Exit(runCycleStack(client, os.Args[2:]))
	case "resize":
		os.Exit(runResize(client, os.Args[2:]))
	case "promote":
		os.Exit(runSimple(client.Promote))
	case "toggle-float":
		os.Exit(runSimple(client.ToggleFloat))
	case "toggle-monocle":
		os.Exit(runSimple(client.ToggleMonocle))
	case "toggle-maximize":
		os.Exit(runSimple(client.ToggleMaximize))
	case "close":
		os.Exit(runSimple(client.CloseWindow))
	case "cycle-layout":
		os.Exit(runSimple(client.CycleLayout))
	case "flip-layout":
		os.Exit(runSimple(client.FlipLayout))
	case "change-layout":
		os.Exit(runSingleArg(os.Args[2:], "change-layout <layout>", client.ChangeLayout))
	case "toggle-tiling":
		os.Exit(runSimple(client.ToggleTiling))
	case "toggle-pause":
		os.Exit(runSimple(client.TogglePause))
	case "retile":
		os.Exit(runSimple(client.Retile))
	case "reload-config":
		os.Exit(runSimple(client.ReloadConfiguration))
	case "watch-config":
		os.Exit(runSimple(client.WatchConfiguration))
	case "float-class":
		os.Exit(runSingleArg(os.Args[2:], "float-class <class>", client.FloatClass))
	case "float-exe":
		os.Exit(runSingleArg(os.Args[2:], "float-exe <exe>", client.FloatExe))
	case "float-title":
		os.Exit(runSingleArg(os.Args[2:], "float-title <title>", client.FloatTitle))
	case "focus-monitor":
		os.Exit(runIndexArg(os.Args[2:], "focus-monitor <index>", client.FocusMonitor))
	case "focus-workspace":
		os.Exit(runIndexArg(os.Args[2:], "focus-workspace <index>", client.FocusWorkspace))
	case "move-to-monitor":
		os.Exit(runIndexArg(os.Args[2:], "move-to-monitor <index>", client.MoveContainerToMonitor))
	case "move-to-workspace":
		os.Exit(runIndexArg(os.Args[2:], "move-to-workspace <index>", client.MoveContainerToWorkspace))
	case "status":
		os.Exit(runStatus(client))
	case "monitors":
		os.Exit(runMonitors(client))
	case "layouts":
		os.Exit(runLayouts(client))
	case "preview-layout":
		os.Exit(runPreviewLayout(client, os.Args[2:]))
	case "state":
		os.Exit(runState(client))
	case "ping":
		os.Exit(runSimple(client.Ping))
	case "stop":
		os.Exit(runSimple(client.Stop))
	case "configure":
		os.Exit(runConfigure())
	case "help", "-h", "--help":
		printUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage(os.Stderr)
		os.Exit(2)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: komotilectl <command> [args]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Window/container commands:")
	fmt.Fprintln(w, "  focus <left|right|up|down>")
	fmt.Fprintln(w, "  move <left|right|up|down>")
	fmt.Fprintln(w, "  stack <left|right|up|down>")
	fmt.Fprintln(w, "  unstack")
	fmt.Fprintln(w, "  cycle-stack <previous|next>")
	fmt.Fprintln(w, "  resize <left|right|up|down> <increase|decrease>")
	fmt.Fprintln(w, "  move-to-monitor <index>")
	fmt.Fprintln(w, "  move-to-workspace <index>")
	fmt.Fprintln(w, "  promote")
	fmt.Fprintln(w, "  toggle-float")
	fmt.Fprintln(w, "  toggle-monocle")
	fmt.Fprintln(w, "  toggle-maximize")
	fmt.Fprintln(w, "  close")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Layout commands:")
	fmt.Fprintln(w, "  change-layout <name>")
	fmt.Fprintln(w, "  cycle-layout")
	fmt.Fprintln(w, "  flip-layout")
	fmt.Fprintln(w, "  layouts")
	fmt.Fprintln(w, "  preview-layout <monitor> <workspace> <name>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Monitor/global commands:")
	fmt.Fprintln(w, "  focus-monitor <index>")
	fmt.Fprintln(w, "  focus-workspace <index>")
	fmt.Fprintln(w, "  toggle-tiling")
	fmt.Fprintln(w, "  toggle-pause")
	fmt.Fprintln(w, "  retile")
	fmt.Fprintln(w, "  stop")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Configuration commands:")
	fmt.Fprintln(w, "  reload-config")
	fmt.Fprintln(w, "  watch-config")
	fmt.Fprintln(w, "  float-class <class>")
	fmt.Fprintln(w, "  float-exe <exe>")
	fmt.Fprintln(w, "  float-title <title>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Query commands:")
	fmt.Fprintln(w, "  status")
	fmt.Fprintln(w, "  monitors")
	fmt.Fprintln(w, "  state")
	fmt.Fprintln(w, "  ping")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Setup:")
	fmt.Fprintln(w, "  configure   Interactive first-run wizard for layout/matching defaults")
}

func runSimple(fn func() error) int {
	if err := fn(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runDirectional(fn func(direction string) error, args []string, name string) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s <left|right|up|down>\n", name)
		return 2
	}
	if err := fn(args[0]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runCycleStack(client *ipc.Client, args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: cycle-stack <previous|next>")
		return 2
	}
	if err := client.CycleStack(args[0]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runResize(client *ipc.Client, args []string) int {
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: resize <left|right|up|down> <increase|decrease>")
		return 2
	}
	if err := client.ResizeWindow(args[0], args[1]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runSingleArg(args []string, usage string, fn func(string) error) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s\n", usage)
		return 2
	}
	if err := fn(args[0]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runIndexArg(args []string, usage string, fn func(int) error) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s\n", usage)
		return 2
	}
	idx, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid index %q\n", args[0])
		return 2
	}
	if err := fn(idx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runStatus(client *ipc.Client) int {
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("uptime_seconds: %d\n", status.UptimeSeconds)
	fmt.Printf("paused:         %v\n", status.Paused)
	return 0
}

func runMonitors(client *ipc.Client) int {
	data, err := client.GetMonitors()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	for _, m := range data.Monitors {
		fmt.Printf("monitor %d (%s): %dx%d at (%d,%d), %d workspaces, focused=%d\n",
			m.ID, m.Serial, m.Width, m.Height, m.Left, m.Top, m.WorkspaceCount, m.FocusedWorkspace)
	}
	return 0
}

func runLayouts(client *ipc.Client) int {
	data, err := client.ListLayouts()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	for _, name := range data.Layouts {
		fmt.Println(name)
	}
	return 0
}

func runPreviewLayout(client *ipc.Client, args []string) int {
	if len(args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: preview-layout <monitor> <workspace> <layout>")
		return 2
	}
	monitorIdx, err1 := strconv.Atoi(args[0])
	workspaceIdx, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		fmt.Fprintln(os.Stderr, "monitor and workspace must be integers")
		return 2
	}
	data, err := client.PreviewLayout(monitorIdx, workspaceIdx, args[2])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	for i, r := range data.Rects {
		fmt.Printf("%d: left=%d top=%d width=%d height=%d\n", i, r.Left, r.Top, r.Right, r.Bottom)
	}
	return 0
}

func runState(client *ipc.Client) int {
	raw, err := client.State()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	var pretty interface{}
	if err := json.Unmarshal(raw, &pretty); err != nil {
		fmt.Fprintln(os.Stdout, string(raw))
		return 0
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(pretty)
	return 0
}
