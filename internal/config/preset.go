// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/davetashner/riskboard/internal/incident"
)

// Build turns the declaration into a validated preset called name.
func (pc PresetConfig) Build(name string) (incident.Preset, error) {
	p := incident.Preset{DateMode: incident.DateSequential}
	if pc.Base != "" {
		base, err := incident.LookupPreset(pc.Base)
		if err != nil {
			return incident.Preset{}, fmt.Errorf("preset %q: base: %w", name, err)
		}
		p = base
	}
	p.Name = name

	if pc.Description != "" {
		p.Description = pc.Description
	}
	if pc.AttackTypes != nil {
		p.AttackTypes = slices.Clone(pc.AttackTypes)
	}
	if pc.RiskWeights != nil {
		weights, err := riskWeights(pc.RiskWeights)
		if err != nil {
			return incident.Preset{}, fmt.Errorf("preset %q: %w", name, err)
		}
		p.RiskWeights = weights
	}
	if pc.Statuses != nil {
		p.Statuses = slices.Clone(pc.Statuses)
	}
	if pc.DeviceTypes != nil {
		p.DeviceTypes = slices.Clone(pc.DeviceTypes)
	}
	if pc.LossAmount != nil {
		r := *pc.LossAmount
		p.LossAmount = &r
	}
	if pc.FixHours != nil {
		r := *pc.FixHours
		p.FixHours = &r
	}
	if pc.DateMode != "" {
		p.DateMode = incident.DateMode(pc.DateMode)
	}
	if pc.SortByDate != nil {
		p.SortByDate = *pc.SortByDate
	}
	if pc.DefaultDays != nil {
		p.DefaultDays = *pc.DefaultDays
	}

	if err := p.Validate(); err != nil {
		return incident.Preset{}, err
	}
	return p, nil
}

// riskWeights orders the weights Low, Medium, High so sampling does not
// depend on map iteration order.
func riskWeights(m map[string]float64) ([]incident.Weighted, error) {
	byLevel := make(map[incident.RiskLevel]float64, len(m))
	for k, w := range m {
		level, err := incident.ParseRiskLevel(k)
		if err != nil {
			return nil, fmt.Errorf("risk_weights: %w", err)
		}
		byLevel[level] = w
	}
	var out []incident.Weighted
	for _, level := range incident.RiskLevels {
		if w, ok := byLevel[level]; ok {
			out = append(out, incident.Weighted{Level: level, Weight: w})
		}
	}
	return out, nil
}

// PresetName returns the configured preset, or incident.DefaultPreset.
func (c *Config) PresetName() string {
	if c.Preset != "" {
		return c.Preset
	}
	return incident.DefaultPreset
}

// ResolvePreset returns the named preset. Presets declared in the config
// shadow built-ins of the same name.
func (c *Config) ResolvePreset(name string) (incident.Preset, error) {
	if pc, ok := c.Presets[name]; ok {
		return pc.Build(name)
	}
	p, err := incident.LookupPreset(name)
	if err != nil {
		if len(c.Presets) == 0 {
			return incident.Preset{}, err
		}
		return incident.Preset{}, fmt.Errorf("unknown preset %q (available: %s): %w",
			name, strings.Join(c.presetNames(), ", "), incident.ErrInvalidArgument)
	}
	return p, nil
}

// AllPresets returns the built-in presets followed by the configured ones
// sorted by name. A configured preset hides the built-in of the same name.
func (c *Config) AllPresets() ([]incident.Preset, error) {
	var out []incident.Preset
	for _, p := range incident.Presets() {
		if _, ok := c.Presets[p.Name]; ok {
			continue
		}
		out = append(out, p)
	}

	names := make([]string, 0, len(c.Presets))
	for name := range c.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		p, err := c.Presets[name].Build(name)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (c *Config) presetNames() []string {
	var names []string
	for _, p := range incident.Presets() {
		names = append(names, p.Name)
	}
	for name := range c.Presets {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
