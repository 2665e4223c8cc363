package config

// toEffective applies a merged RawConfig on top of the built-in defaults,
// producing a fully-populated Config.
func (c RawConfig) toEffective() *Config {
	cfg := DefaultConfig()

	if c.SocketName != nil {
		cfg.SocketName = *c.SocketName
	}
	if c.LogLevel != nil {
		cfg.LogLevel = *c.LogLevel
	}
	if c.LogFile != nil {
		cfg.LogFile = *c.LogFile
	}
	if c.Animation != nil {
		if c.Animation.Enabled != nil {
			cfg.Animation.Enabled = *c.Animation.Enabled
		}
		if c.Animation.DurationMs != nil {
			cfg.Animation.DurationMs = *c.Animation.DurationMs
		}
		if c.Animation.FPS != nil {
			cfg.Animation.FPS = *c.Animation.FPS
		}
		if c.Animation.Style != nil {
			cfg.Animation.Style = *c.Animation.Style
		}
	}
	if c.Border != nil {
		if c.Border.Enabled != nil {
			cfg.Border.Enabled = *c.Border.Enabled
		}
		if c.Border.Width != nil {
			cfg.Border.Width = *c.Border.Width
		}
		if c.Border.ColorFocused != nil {
			cfg.Border.ColorFocused = *c.Border.ColorFocused
		}
		if c.Border.ColorUnfocused != nil {
			cfg.Border.ColorUnfocused = *c.Border.ColorUnfocused
		}
		if c.Border.ColorMonocle != nil {
			cfg.Border.ColorMonocle = *c.Border.ColorMonocle
		}
	}
	if c.DefaultLayout != nil {
		cfg.DefaultLayout = *c.DefaultLayout
	}
	if c.CustomLayouts != nil {
		cfg.CustomLayouts = c.CustomLayouts
	}
	if c.DefaultWorkspacePadding != nil {
		cfg.DefaultWorkspacePadding = *c.DefaultWorkspacePadding
	}
	if c.DefaultContainerPadding != nil {
		cfg.DefaultContainerPadding = *c.DefaultContainerPadding
	}
	if c.ApplicationRules != nil {
		cfg.ApplicationRules = c.ApplicationRules
	}
	if c.Monitors != nil {
		cfg.Monitors = c.Monitors
	}
	if c.FocusFollowsMouse != nil {
		cfg.FocusFollowsMouse = *c.FocusFollowsMouse
	}
	if c.MouseFollowsFocus != nil {
		cfg.MouseFollowsFocus = *c.MouseFollowsFocus
	}
	if c.AltTabReconciliationWindowMs != nil {
		cfg.AltTabReconciliationWindowMs = *c.AltTabReconciliationWindowMs
	}
	return cfg
}
