package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestValidateRejectsUnknownDefaultLayout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultLayout = "does-not-exist"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error for unknown default_layout")
	}
}

func TestValidateRejectsInvalidCustomLayout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CustomLayouts["broken"] = []CustomLayoutColumn{{Kind: "secondary"}, {Kind: "secondary"}}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error for a custom layout with no primary/tertiary column")
	}
}

func TestResolveLayoutPrefersCustomOverBuiltin(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CustomLayouts["bsp"] = []CustomLayoutColumn{
		{Kind: "primary"},
		{Kind: "tertiary"},
	}
	l, err := cfg.ResolveLayout("bsp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Name() != "bsp" {
		t.Fatalf("expected custom layout named bsp, got %s", l.Name())
	}
}

func TestApplicationRuleAppliesToRequiresAllClauses(t *testing.T) {
	rule := ApplicationRule{
		Matches: []MatchRule{
			{Kind: MatchClass, Value: "firefox"},
			{Kind: MatchTitle, Value: "Picture-in-Picture"},
		},
		Floating: true,
	}
	if rule.AppliesTo("firefox-bin", "firefox", "Mozilla Firefox", "/usr/bin/firefox") {
		t.Fatalf("expected no match when only one clause holds")
	}
	if !rule.AppliesTo("firefox-bin", "firefox", "Picture-in-Picture", "/usr/bin/firefox") {
		t.Fatalf("expected match when every clause holds")
	}
}

func TestApplicationRuleRegexMatch(t *testing.T) {
	rule := ApplicationRule{Matches: []MatchRule{{Kind: MatchTitle, Value: `^Untitled \d+$`, Regex: true}}}
	if !rule.AppliesTo("", "", "Untitled 4", "") {
		t.Fatalf("expected regex match")
	}
	if rule.AppliesTo("", "", "Untitled", "") {
		t.Fatalf("expected regex not to match without a trailing number")
	}
}

func TestLoadFromPathMissingFileReturnsDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Config.SocketName != DefaultConfig().SocketName {
		t.Fatalf("expected defaults when config file is absent")
	}
}

func TestLoadFromPathResolvesIncludes(t *testing.T) {
	dir := t.TempDir()
	basePath := filepath.Join(dir, "base.yaml")
	mainPath := filepath.Join(dir, "config.yaml")

	if err := os.WriteFile(basePath, []byte("default_layout: columns\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(mainPath, []byte("include: base.yaml\nlog_level: debug\n"), 0644); err != nil {
		t.Fatal(err)
	}

	res, err := LoadFromPath(mainPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Config.DefaultLayout != "columns" {
		t.Errorf("expected included default_layout to apply, got %s", res.Config.DefaultLayout)
	}
	if res.Config.LogLevel != "debug" {
		t.Errorf("expected main file's log_level to apply, got %s", res.Config.LogLevel)
	}
	if len(res.Files) != 2 {
		t.Errorf("expected 2 files loaded, got %d: %v", len(res.Files), res.Files)
	}
}

func TestLoadFromPathDetectsCircularInclude(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yaml")
	b := filepath.Join(dir, "b.yaml")
	if err := os.WriteFile(a, []byte("include: b.yaml\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte("include: a.yaml\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromPath(a); err == nil {
		t.Fatalf("expected circular include to be detected")
	}
}
