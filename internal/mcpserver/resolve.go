// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes riskboard's generate and report operations as tools over
// stdio transport.
package mcpserver

import (
	"fmt"
	"os"
	"path/filepath"
)

// ResolveDir resolves the directory whose config applies to a tool call to
// an absolute, symlink-free path. Empty means the current directory.
func ResolveDir(path string) (string, error) {
	if path == "" {
		path = "."
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("cannot resolve path %q: %w", path, err)
	}
	absPath, err = filepath.EvalSymlinks(absPath)
	if err != nil {
		return "", fmt.Errorf("cannot resolve path %q: %w", path, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return "", fmt.Errorf("path %q does not exist", path)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%q is not a directory", path)
	}
	return absPath, nil
}
