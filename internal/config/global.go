// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// GlobalConfigDir returns the directory for global riskboard configuration.
// It uses $XDG_CONFIG_HOME/riskboard if set, otherwise ~/.config/riskboard.
func GlobalConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "riskboard")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "riskboard")
}

// GlobalConfigPath returns the path to the global config file.
func GlobalConfigPath() string {
	return filepath.Join(GlobalConfigDir(), "config.yaml")
}

// LoadGlobal loads the global config file.
// If the file does not exist, it returns a zero-value Config and nil error.
func LoadGlobal() (*Config, error) {
	cfg, err := loadYAML(GlobalConfigPath())
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}
	return cfg, err
}

// LoadAll loads the global config and the config in dir and returns them
// merged, dir's values taking precedence. The merged result is validated so
// a repo config may use presets declared globally.
func LoadAll(dir string) (*Config, error) {
	global, err := LoadGlobal()
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", GlobalConfigPath(), err)
	}
	repo, err := Load(dir)
	if err != nil {
		return nil, err
	}
	merged := Merge(global, repo)
	if err := Validate(merged); err != nil {
		return nil, err
	}
	return merged, nil
}
