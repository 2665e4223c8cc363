package config

import (
	"fmt"
	"io"
	"sort"
)

// Explain writes a human-readable dump of the effective configuration to
// w, grouping application rules and monitors.
func Explain(w io.Writer, res *LoadResult) {
	cfg := res.Config

	fmt.Fprintf(w, "socket_name: %s\n", cfg.SocketName)
	fmt.Fprintf(w, "log_level: %s\n", cfg.LogLevel)
	fmt.Fprintf(w, "default_layout: %s\n", cfg.DefaultLayout)
	fmt.Fprintf(w, "animation: enabled=%v duration_ms=%d fps=%d style=%s\n",
		cfg.Animation.Enabled, cfg.Animation.DurationMs, cfg.Animation.FPS, cfg.Animation.Style)
	fmt.Fprintf(w, "border: enabled=%v width=%d\n", cfg.Border.Enabled, cfg.Border.Width)
	fmt.Fprintf(w, "padding: workspace=%d container=%d\n", cfg.DefaultWorkspacePadding, cfg.DefaultContainerPadding)

	if len(cfg.CustomLayouts) > 0 {
		names := make([]string, 0, len(cfg.CustomLayouts))
		for name := range cfg.CustomLayouts {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Fprintln(w, "custom_layouts:")
		for _, name := range names {
			fmt.Fprintf(w, "  - %s (%d columns)\n", name, len(cfg.CustomLayouts[name]))
		}
	}

	if len(cfg.ApplicationRules) > 0 {
		fmt.Fprintln(w, "application_rules:")
		for _, r := range cfg.ApplicationRules {
			fmt.Fprintf(w, "  - %s: %d clause(s), ignore=%v manage=%v floating=%v\n",
				ruleLabel(r), len(r.Matches), r.Ignore, r.Manage, r.Floating)
		}
	}

	if len(cfg.Monitors) > 0 {
		fmt.Fprintln(w, "monitors:")
		for i, m := range cfg.Monitors {
			fmt.Fprintf(w, "  - [%d] serial=%q workspaces=%d\n", i, m.Serial, len(m.Workspaces))
		}
	}

	if len(res.Files) > 0 {
		fmt.Fprintln(w, "sources:")
		for _, f := range res.Files {
			fmt.Fprintf(w, "  - %s\n", f)
		}
	}
}

func ruleLabel(r ApplicationRule) string {
	if r.Name != "" {
		return r.Name
	}
	return "(unnamed)"
}
