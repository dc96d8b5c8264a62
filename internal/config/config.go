// Package config loads marklink's YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Completion controls the path-completion engine.
type Completion struct {
	// Enabled turns link completion off entirely when false.
	Enabled bool `yaml:"enabled"`
}

// Config is the full configuration file.
type Config struct {
	// Root is the workspace root; defaults to the directory the server is
	// started in (or the client's rootUri when provided).
	Root string `yaml:"root"`

	// StorePath locates the sqlite index. Empty means in-memory only.
	StorePath string `yaml:"store_path"`

	// Extensions lists the file extensions treated as markdown.
	Extensions []string `yaml:"extensions"`

	// IgnoreDirs names directories excluded from listings and scans.
	IgnoreDirs []string `yaml:"ignore_dirs"`

	Completion Completion `yaml:"completion"`

	// Messages overrides user-visible strings by stable key.
	Messages map[string]string `yaml:"messages"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Extensions: []string{".md", ".markdown"},
		IgnoreDirs: []string{"node_modules", "vendor"},
		Completion: Completion{Enabled: true},
	}
}

// Load reads a config file and fills unset fields from the defaults. A
// missing file yields the defaults without error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Root != "" {
		if abs, err := filepath.Abs(cfg.Root); err == nil {
			cfg.Root = abs
		}
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = Default().Extensions
	}
	return cfg, nil
}
