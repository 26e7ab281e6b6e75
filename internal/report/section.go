// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

// Package report provides a pluggable section registry for riskboard report.
// Each section consumes one view of a pipeline result and renders it as a
// focused text segment.
package report

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/davetashner/riskboard/internal/pipeline"
)

// ErrViewNotAvailable indicates a section's view is missing, because the
// preset lacks the column or no incidents matched the filter.
var ErrViewNotAvailable = errors.New("view not available")

// Section is a pluggable report section that analyzes a pipeline result and
// renders a focused report segment.
type Section interface {
	// Name returns the unique identifier for this section (e.g., "loss-by-attack").
	Name() string

	// Description returns a human-readable description of what this section reports.
	Description() string

	// Analyze picks the section's view out of result and prepares it for
	// rendering. Returns ErrViewNotAvailable (wrapped) if the view is missing.
	Analyze(result *pipeline.Result) error

	// Render writes the section output to w.
	Render(w io.Writer) error
}

var (
	mu       sync.RWMutex
	registry = make(map[string]Section)
	order    []string // insertion order for deterministic listing
)

func init() {
	registerDefaults()
}

func registerDefaults() {
	Register(&overviewSection{})
	Register(&riskDistributionSection{})
	Register(&lossByAttackSection{})
	Register(&fixTimeSection{})
	Register(&deviceTypesSection{})
	Register(&timelineSection{})
	Register(&summarySection{})
	Register(&narrativeSection{})
}

// Register adds a section to the global registry.
// It panics if a section with the same name is already registered.
func Register(s Section) {
	mu.Lock()
	defer mu.Unlock()
	name := s.Name()
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("report section already registered: %s", name))
	}
	registry[name] = s
	order = append(order, name)
}

// Get returns the section with the given name, or nil if not found.
func Get(name string) Section {
	mu.RLock()
	defer mu.RUnlock()
	return registry[name]
}

// List returns the names of all registered sections in registration order.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, len(order))
	copy(out, order)
	return out
}

// resetForTesting clears the registry. Only for use in tests.
func resetForTesting() {
	mu.Lock()
	defer mu.Unlock()
	registry = make(map[string]Section)
	order = nil
}
