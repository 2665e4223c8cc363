package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadResult carries the effective config plus the list of files that
// contributed to it, in load order, for Explain.
type LoadResult struct {
	Config *Config
	Files  []string
}

// Load reads the merged configuration from the standard location and
// returns an effective config ready for use by the daemon. A missing file
// is not an error: the built-in defaults are used as-is.
func Load() (*Config, error) {
	res, err := LoadWithSources()
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

// LoadWithSources loads config from the standard location and also
// returns the list of files that were read.
func LoadWithSources() (*LoadResult, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads a configuration rooted at path, recursively resolving
// any `include` directives relative to the including file's directory.
func LoadFromPath(path string) (*LoadResult, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()
		return &LoadResult{Config: cfg, Files: nil}, nil
	}

	visited := make(map[string]bool)
	var files []string

	merged, err := loadRecursive(path, visited, &files)
	if err != nil {
		return nil, err
	}

	cfg := merged.toEffective()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &LoadResult{Config: cfg, Files: files}, nil
}

func loadRecursive(path string, visited map[string]bool, files *[]string) (RawConfig, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return RawConfig{}, fmt.Errorf("resolving %s: %w", path, err)
	}
	if visited[abs] {
		return RawConfig{}, fmt.Errorf("circular include detected at %s", abs)
	}
	visited[abs] = true

	data, err := os.ReadFile(abs)
	if err != nil {
		return RawConfig{}, fmt.Errorf("reading %s: %w", abs, err)
	}

	var raw RawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return RawConfig{}, fmt.Errorf("parsing %s: %w", abs, err)
	}

	base := RawConfig{}
	dir := filepath.Dir(abs)
	for _, inc := range raw.Include {
		incPath := inc
		if !filepath.IsAbs(incPath) {
			incPath = filepath.Join(dir, incPath)
		}
		included, err := loadRecursive(incPath, visited, files)
		if err != nil {
			return RawConfig{}, err
		}
		base = base.merge(included)
	}

	*files = append(*files, abs)
	return base.merge(raw), nil
}
