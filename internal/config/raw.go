package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/other.yaml"
//
// Each entry names a single YAML file.
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawAnimationConfig struct {
	Enabled    *bool   `yaml:"enabled"`
	DurationMs *int    `yaml:"duration_ms"`
	FPS        *int    `yaml:"fps"`
	Style      *string `yaml:"style"`
}

type RawBorderConfig struct {
	Enabled        *bool   `yaml:"enabled"`
	Width          *int    `yaml:"width"`
	ColorFocused   *string `yaml:"color_focused"`
	ColorUnfocused *string `yaml:"color_unfocused"`
	ColorMonocle   *string `yaml:"color_monocle"`
}

// RawConfig is the pointer-field overlay form of Config: every field is
// optional so that a file only needs to mention what it overrides. Later
// includes win over earlier ones; the user's own file wins over every
// include (see loader.go's load order).
type RawConfig struct {
	Include IncludeList `yaml:"include"`

	SocketName *string `yaml:"socket_name"`
	LogLevel   *string `yaml:"log_level"`
	LogFile    *string `yaml:"log_file"`

	Animation *RawAnimationConfig `yaml:"animation"`
	Border    *RawBorderConfig    `yaml:"border"`

	DefaultLayout           *string                          `yaml:"default_layout"`
	CustomLayouts           map[string][]CustomLayoutColumn `yaml:"custom_layouts"`
	DefaultWorkspacePadding *int                             `yaml:"default_workspace_padding"`
	DefaultContainerPadding *int                             `yaml:"default_container_padding"`

	ApplicationRules []ApplicationRule `yaml:"application_rules"`
	Monitors         []MonitorConfig   `yaml:"monitors"`

	FocusFollowsMouse            *bool `yaml:"focus_follows_mouse"`
	MouseFollowsFocus            *bool `yaml:"mouse_follows_focus"`
	AltTabReconciliationWindowMs *int  `yaml:"alt_tab_reconciliation_window_ms"`
}

// merge applies overlay on top of c, overlay winning wherever it sets a
// field. The slice fields (application_rules, monitors) are replaced
// wholesale rather than deep-merged per entry, so one file can own the
// monitor list and another the shared application rules; custom_layouts
// are merged by name, an overlay entry replacing a same-named one.
func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	if overlay.SocketName != nil {
		out.SocketName = overlay.SocketName
	}
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}
	if overlay.LogFile != nil {
		out.LogFile = overlay.LogFile
	}
	if overlay.Animation != nil {
		if out.Animation == nil {
			out.Animation = &RawAnimationConfig{}
		}
		if overlay.Animation.Enabled != nil {
			out.Animation.Enabled = overlay.Animation.Enabled
		}
		if overlay.Animation.DurationMs != nil {
			out.Animation.DurationMs = overlay.Animation.DurationMs
		}
		if overlay.Animation.FPS != nil {
			out.Animation.FPS = overlay.Animation.FPS
		}
		if overlay.Animation.Style != nil {
			out.Animation.Style = overlay.Animation.Style
		}
	}
	if overlay.Border != nil {
		if out.Border == nil {
			out.Border = &RawBorderConfig{}
		}
		if overlay.Border.Enabled != nil {
			out.Border.Enabled = overlay.Border.Enabled
		}
		if overlay.Border.Width != nil {
			out.Border.Width = overlay.Border.Width
		}
		if overlay.Border.ColorFocused != nil {
			out.Border.ColorFocused = overlay.Border.ColorFocused
		}
		if overlay.Border.ColorUnfocused != nil {
			out.Border.ColorUnfocused = overlay.Border.ColorUnfocused
		}
		if overlay.Border.ColorMonocle != nil {
			out.Border.ColorMonocle = overlay.Border.ColorMonocle
		}
	}
	if overlay.DefaultLayout != nil {
		out.DefaultLayout = overlay.DefaultLayout
	}
	if overlay.CustomLayouts != nil {
		if out.CustomLayouts == nil {
			out.CustomLayouts = make(map[string][]CustomLayoutColumn, len(overlay.CustomLayouts))
		}
		for name, cols := range overlay.CustomLayouts {
			out.CustomLayouts[name] = cols
		}
	}
	if overlay.DefaultWorkspacePadding != nil {
		out.DefaultWorkspacePadding = overlay.DefaultWorkspacePadding
	}
	if overlay.DefaultContainerPadding != nil {
		out.DefaultContainerPadding = overlay.DefaultContainerPadding
	}
	if overlay.ApplicationRules != nil {
		out.ApplicationRules = overlay.ApplicationRules
	}
	if overlay.Monitors != nil {
		out.Monitors = overlay.Monitors
	}
	if overlay.FocusFollowsMouse != nil {
		out.FocusFollowsMouse = overlay.FocusFollowsMouse
	}
	if overlay.MouseFollowsFocus != nil {
		out.MouseFollowsFocus = overlay.MouseFollowsFocus
	}
	if overlay.AltTabReconciliationWindowMs != nil {
		out.AltTabReconciliationWindowMs = overlay.AltTabReconciliationWindowMs
	}
	return out
}
