// Package config loads and validates the engine's YAML configuration:
// application matching rules, per-monitor/workspace layout preferences,
// animation and border settings, and custom layout definitions.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/komotile/internal/geometry"
	"github.com/1broseidon/komotile/internal/layout"
)

// MatchKind names the window attribute a MatchRule compares against.
type MatchKind string

const (
	MatchExe   MatchKind = "exe"
	MatchClass MatchKind = "class"
	MatchTitle MatchKind = "title"
	MatchPath  MatchKind = "path"
)

// MatchRule is one clause of an ApplicationRule. Regex selects between a
// literal substring comparison and a regular expression.
type MatchRule struct {
	Kind  MatchKind `yaml:"kind"`
	Value string    `yaml:"value"`
	Regex bool      `yaml:"regex,omitempty"`
}

// ApplicationRule is the configuration-file form of a manageability
// predicate: every clause in Matches must hold (logical AND) for the rule
// to apply to a window.
type ApplicationRule struct {
	Name    string      `yaml:"name,omitempty"`
	Matches []MatchRule `yaml:"matches"`

	Ignore             bool `yaml:"ignore,omitempty"`
	Manage             bool `yaml:"manage,omitempty"`
	Floating           bool `yaml:"floating,omitempty"`
	TrayAndMultiWindow bool `yaml:"tray_and_multi_window,omitempty"`
	Layered            bool `yaml:"layered,omitempty"`
	ObjectNameChange   bool `yaml:"object_name_change,omitempty"`
	SlowApplication    bool `yaml:"slow_application,omitempty"`
	TransparencyIgnore bool `yaml:"transparency_ignore,omitempty"`
	BorderOverflow     bool `yaml:"border_overflow,omitempty"`
}

// AnimationConfig controls the animation engine (internal/animation).
type AnimationConfig struct {
	Enabled    bool   `yaml:"enabled"`
	DurationMs int    `yaml:"duration_ms"`
	FPS        int    `yaml:"fps"`
	Style      string `yaml:"style"` // matches an animation.Style name, e.g. "ease_in_out_quad"
}

// BorderConfig controls the focused-window border overlay (internal/border).
// Colours are plain hex strings; palette/theme selection is out of scope.
type BorderConfig struct {
	Enabled        bool   `yaml:"enabled"`
	Width          int    `yaml:"width"`
	ColorFocused   string `yaml:"color_focused"`
	ColorUnfocused string `yaml:"color_unfocused"`
	ColorMonocle   string `yaml:"color_monocle"`
}

// WorkspaceConfig names a workspace slot on a monitor and its layout
// preferences.
type WorkspaceConfig struct {
	Name             string `yaml:"name"`
	Layout           string `yaml:"layout,omitempty"`       // one of the built-in DefaultLayout names
	CustomLayout     string `yaml:"custom_layout,omitempty"` // key into Config.CustomLayouts; overrides Layout
	ContainerPadding *int   `yaml:"container_padding,omitempty"`
	WorkspacePadding *int   `yaml:"workspace_padding,omitempty"`
	TilingDisabled   bool   `yaml:"tiling_disabled,omitempty"`
}

// MonitorConfig configures the workspaces attached to one physical monitor,
// identified positionally (index into the platform's monitor list) or by a
// serial/name hint resolved by the daemon at startup.
type MonitorConfig struct {
	Serial        string            `yaml:"serial,omitempty"`
	WorkAreaLeft  int               `yaml:"work_area_offset_left,omitempty"`
	WorkAreaTop   int               `yaml:"work_area_offset_top,omitempty"`
	WorkAreaRight int               `yaml:"work_area_offset_right,omitempty"`
	WorkAreaBot   int               `yaml:"work_area_offset_bottom,omitempty"`
	Workspaces    []WorkspaceConfig `yaml:"workspaces"`
}

// WorkAreaOffset converts the flat offset fields into a geometry.Rect, or
// the zero Rect if none are set.
func (m MonitorConfig) WorkAreaOffset() geometry.Rect {
	return geometry.Rect{Left: m.WorkAreaLeft, Top: m.WorkAreaTop, Right: m.WorkAreaRight, Bottom: m.WorkAreaBot}
}

// CustomLayoutColumn is the YAML form of layout.Column.
type CustomLayoutColumn struct {
	Kind     string `yaml:"kind"` // "primary", "secondary", "tertiary"
	Split    string `yaml:"split,omitempty"` // "horizontal" (default) or "vertical"
	Capacity int    `yaml:"capacity,omitempty"`
}

// ToLayoutColumn converts the YAML column description into layout.Column.
func (c CustomLayoutColumn) ToLayoutColumn() layout.Column {
	col := layout.Column{Capacity: c.Capacity}
	switch c.Kind {
	case "primary":
		col.Kind = layout.ColumnPrimary
	case "secondary":
		col.Kind = layout.ColumnSecondary
	default:
		col.Kind = layout.ColumnTertiary
	}
	if c.Split == "vertical" {
		col.Split = layout.SplitVertical
	}
	return col
}

// Config is the fully-resolved engine configuration.
type Config struct {
	SocketName string `yaml:"socket_name"`
	LogLevel   string `yaml:"log_level"`
	LogFile    string `yaml:"log_file,omitempty"`

	Animation AnimationConfig `yaml:"animation"`
	Border    BorderConfig    `yaml:"border"`

	DefaultLayout           string                         `yaml:"default_layout"`
	CustomLayouts           map[string][]CustomLayoutColumn `yaml:"custom_layouts,omitempty"`
	DefaultWorkspacePadding int                            `yaml:"default_workspace_padding"`
	DefaultContainerPadding int                            `yaml:"default_container_padding"`

	ApplicationRules []ApplicationRule `yaml:"application_rules,omitempty"`
	Monitors         []MonitorConfig   `yaml:"monitors,omitempty"`

	FocusFollowsMouse            bool `yaml:"focus_follows_mouse"`
	MouseFollowsFocus            bool `yaml:"mouse_follows_focus"`
	AltTabReconciliationWindowMs int  `yaml:"alt_tab_reconciliation_window_ms"`
}

// DefaultConfig returns the built-in defaults applied before any file is
// merged in.
func DefaultConfig() *Config {
	return &Config{
		SocketName: "komotiled.sock",
		LogLevel:   "info",
		Animation: AnimationConfig{
			Enabled:    true,
			DurationMs: 250,
			FPS:        60,
			Style:      "ease_in_out_quad",
		},
		Border: BorderConfig{
			Enabled:        true,
			Width:          4,
			ColorFocused:   "#89b4fa",
			ColorUnfocused: "#6c7086",
			ColorMonocle:   "#f9e2af",
		},
		DefaultLayout:                "bsp",
		CustomLayouts:                map[string][]CustomLayoutColumn{},
		DefaultWorkspacePadding:      8,
		DefaultContainerPadding:      4,
		ApplicationRules:             defaultApplicationRules(),
		AltTabReconciliationWindowMs: 1000,
	}
}

func defaultApplicationRules() []ApplicationRule {
	return []ApplicationRule{
		{Name: "panels-and-docks", Matches: []MatchRule{{Kind: MatchClass, Value: "Polybar"}}, Ignore: true},
		{Name: "launchers", Matches: []MatchRule{{Kind: MatchClass, Value: "rofi"}}, Floating: true},
	}
}

// ResolveLayout returns the named layout.Layout, checking custom layouts
// first, falling back to a built-in DefaultLayout by name.
func (c *Config) ResolveLayout(name string) (layout.Layout, error) {
	if cols, ok := c.CustomLayouts[name]; ok {
		lc := make([]layout.Column, len(cols))
		for i, col := range cols {
			lc[i] = col.ToLayoutColumn()
		}
		cl := layout.CustomLayout{LayoutName: name, Columns: lc}
		if !cl.IsValid() {
			return nil, fmt.Errorf("custom layout %q is invalid: exactly one primary and one trailing tertiary column required", name)
		}
		return cl, nil
	}
	if dl, ok := builtinLayoutByName(name); ok {
		return dl, nil
	}
	return nil, fmt.Errorf("layout %q not found", name)
}

// ValidationError reports a configuration problem at a specific YAML path.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	if c.SocketName == "" {
		return &ValidationError{Path: "socket_name", Err: fmt.Errorf("socket_name is required")}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warn, error")}
	}
	if c.Animation.DurationMs < 0 {
		return &ValidationError{Path: "animation.duration_ms", Err: fmt.Errorf("must be >= 0")}
	}
	if c.Animation.FPS <= 0 {
		return &ValidationError{Path: "animation.fps", Err: fmt.Errorf("must be > 0")}
	}
	if c.Border.Width < 0 {
		return &ValidationError{Path: "border.width", Err: fmt.Errorf("must be >= 0")}
	}
	if c.DefaultWorkspacePadding < 0 || c.DefaultContainerPadding < 0 {
		return &ValidationError{Path: "default_workspace_padding", Err: fmt.Errorf("padding must be >= 0")}
	}
	if c.AltTabReconciliationWindowMs < 0 {
		return &ValidationError{Path: "alt_tab_reconciliation_window_ms", Err: fmt.Errorf("must be >= 0")}
	}
	if _, err := c.ResolveLayout(c.DefaultLayout); err != nil {
		return &ValidationError{Path: "default_layout", Err: err}
	}
	for name, cols := range c.CustomLayouts {
		lc := make([]layout.Column, len(cols))
		for i, col := range cols {
			lc[i] = col.ToLayoutColumn()
		}
		if !(layout.CustomLayout{LayoutName: name, Columns: lc}).IsValid() {
			return &ValidationError{Path: "custom_layouts." + name, Err: fmt.Errorf("invalid column arrangement")}
		}
	}
	for i, rule := range c.ApplicationRules {
		if len(rule.Matches) == 0 {
			return &ValidationError{Path: fmt.Sprintf("application_rules[%d].matches", i), Err: fmt.Errorf("at least one match clause is required")}
		}
		for _, m := range rule.Matches {
			switch m.Kind {
			case MatchExe, MatchClass, MatchTitle, MatchPath:
			default:
				return &ValidationError{Path: fmt.Sprintf("application_rules[%d].matches", i), Err: fmt.Errorf("unknown match kind %q", m.Kind)}
			}
		}
	}
	return nil
}

// DefaultConfigPath returns the standard location for the user's config
// file, $XDG_CONFIG_HOME/komotile/config.yaml (or ~/.config/komotile).
func DefaultConfigPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "komotile", "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "komotile", "config.yaml"), nil
}

// Save writes the configuration to the standard location.
func (c *Config) Save() error {
	if err := c.Validate(); err != nil {
		return err
	}
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// AppliesTo reports whether every clause of the rule holds against the
// given window attributes (logical AND).
func (r ApplicationRule) AppliesTo(exe, class, title, path string) bool {
	for _, m := range r.Matches {
		var subject string
		switch m.Kind {
		case MatchExe:
			subject = exe
		case MatchClass:
			subject = class
		case MatchTitle:
			subject = title
		case MatchPath:
			subject = path
		}
		if !matchOne(m, subject) {
			return false
		}
	}
	return true
}

func matchOne(m MatchRule, subject string) bool {
	if m.Regex {
		re, err := compiledRegex(m.Value)
		if err != nil {
			return false
		}
		return re.MatchString(subject)
	}
	return strings.Contains(subject, m.Value)
}
