// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"time"

	"github.com/davetashner/riskboard/internal/filter"
	"github.com/davetashner/riskboard/internal/generator"
	"github.com/davetashner/riskboard/internal/incident"
)

// Plan is a fully resolved run: what to generate and how to select from it.
type Plan struct {
	Preset        incident.Preset
	Options       generator.Options
	Criteria      filter.Criteria
	TimelineGroup incident.Column
	Narrate       bool
}

// Plan resolves c against the preset defaults. asOf anchors relative windows.
func (c *Config) Plan(asOf time.Time) (*Plan, error) {
	preset, err := c.ResolvePreset(c.PresetName())
	if err != nil {
		return nil, err
	}

	seed := generator.DefaultSeed
	if c.Seed != nil {
		seed = *c.Seed
	}
	count := generator.DefaultCount
	if c.Count != nil {
		count = *c.Count
	}

	window, err := c.Window.Resolve(preset, count, asOf)
	if err != nil {
		return nil, err
	}

	crit, err := c.Filter.Criteria(preset)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}

	return &Plan{
		Preset: preset,
		Options: generator.Options{
			Seed:   seed,
			Count:  count,
			Window: window,
			Preset: preset,
		},
		Criteria:      crit,
		TimelineGroup: incident.Column(c.TimelineGroup),
		Narrate:       c.Narrate != nil && *c.Narrate,
	}, nil
}

// Resolve turns the configured window into dates. A missing end keeps the
// preset's default length after the start, and a missing start keeps it
// before the end. An unset window falls back to generator.DefaultWindow.
func (w WindowConfig) Resolve(p incident.Preset, count int, asOf time.Time) (incident.Window, error) {
	if w.LastDays != nil {
		if w.Start != "" || w.End != "" {
			return incident.Window{}, fmt.Errorf("window: last_days cannot be combined with start or end: %w",
				incident.ErrInvalidArgument)
		}
		return incident.LastNDays(asOf, *w.LastDays)
	}

	def := generator.DefaultWindow(p, count, asOf)
	if w.Start == "" && w.End == "" {
		return def, nil
	}

	start, end := def.Start, def.End
	if w.Start != "" {
		t, err := incident.ParseDate(w.Start)
		if err != nil {
			return incident.Window{}, fmt.Errorf("window.start: %w", err)
		}
		start = t
		end = t.AddDate(0, 0, def.Days())
	}
	if w.End != "" {
		t, err := incident.ParseDate(w.End)
		if err != nil {
			return incident.Window{}, fmt.Errorf("window.end: %w", err)
		}
		end = t
		if w.Start == "" {
			start = t.AddDate(0, 0, -def.Days())
		}
	}
	return incident.NewWindow(start, end)
}
