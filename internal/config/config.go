// Package config loads chatmd defaults from an optional TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds defaults for the CLI; flags override these.
type Config struct {
	OutputDir   string `toml:"output_dir"`
	Organize    string `toml:"organize"`
	MaxFileSize int    `toml:"max_file_size"`
	Frontmatter bool   `toml:"frontmatter"`
	ServeHost   string `toml:"serve_host"`
	ServePort   int    `toml:"serve_port"`
}

// Load returns built-in defaults merged with
// ~/.config/chatmd/config.toml when that file exists.
func Load() (*Config, error) {
	cfg := &Config{
		OutputDir:   "./output",
		Organize:    "monthly",
		MaxFileSize: 90000,
		Frontmatter: true,
		ServeHost:   "127.0.0.1",
		ServePort:   5000,
	}

	home, err := os.UserHomeDir()
	if err != nil {
		// No home directory, run with defaults.
		return cfg, nil
	}

	cfgPath := filepath.Join(home, ".config", "chatmd", "config.toml")
	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	cfg.OutputDir = expandHome(cfg.OutputDir, home)
	return cfg, nil
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
