// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

// Package output defines the Formatter interface for writing incident rows
// in various formats.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/davetashner/riskboard/internal/incident"
)

// Formatter writes incident rows to the given writer in a specific format.
// Only the columns of the dataset schema are written.
type Formatter interface {
	// Name returns the format name (e.g., "csv", "json", "markdown").
	Name() string

	// Format writes rows to w.
	Format(rows incident.Rows, w io.Writer) error
}

var (
	fmtMu       sync.RWMutex
	fmtRegistry = make(map[string]Formatter)
)

// RegisterFormatter adds a formatter to the global registry.
func RegisterFormatter(f Formatter) {
	fmtMu.Lock()
	defer fmtMu.Unlock()
	fmtRegistry[f.Name()] = f
}

// GetFormatter returns the formatter with the given name, or an error
// wrapping incident.ErrInvalidArgument if none is registered.
func GetFormatter(name string) (Formatter, error) {
	fmtMu.RLock()
	defer fmtMu.RUnlock()
	f, ok := fmtRegistry[name]
	if !ok {
		return nil, fmt.Errorf("unknown format: %q (available: %s): %w",
			name, strings.Join(formatNames(), ", "), incident.ErrInvalidArgument)
	}
	return f, nil
}

// FormatNames returns the registered format names, sorted.
func FormatNames() []string {
	fmtMu.RLock()
	defer fmtMu.RUnlock()
	return formatNames()
}

// resetFmtForTesting clears the formatter registry. Only for use in tests.
func resetFmtForTesting() {
	fmtMu.Lock()
	defer fmtMu.Unlock()
	fmtRegistry = make(map[string]Formatter)
}

func formatNames() []string {
	names := make([]string, 0, len(fmtRegistry))
	for name := range fmtRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
