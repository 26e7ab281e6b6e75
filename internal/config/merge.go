// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package config

import "maps"

// Merge combines two configs. Fields set in over take precedence; unset
// fields fall through to base. Presets merge by name. Neither input is
// modified.
func Merge(base, over *Config) *Config {
	result := *base

	if over.Preset != "" {
		result.Preset = over.Preset
	}
	if over.Seed != nil {
		result.Seed = over.Seed
	}
	if over.Count != nil {
		result.Count = over.Count
	}

	// Window: either form in over replaces the whole window.
	if over.Window.Start != "" || over.Window.End != "" || over.Window.LastDays != nil {
		result.Window = over.Window
	}

	if over.OutputFormat != "" {
		result.OutputFormat = over.OutputFormat
	}

	if over.Filter.RiskLevels != nil {
		result.Filter.RiskLevels = over.Filter.RiskLevels
	}
	if over.Filter.AttackTypes != nil {
		result.Filter.AttackTypes = over.Filter.AttackTypes
	}
	if over.Filter.Since != "" {
		result.Filter.Since = over.Filter.Since
	}
	if over.Filter.Where != "" {
		result.Filter.Where = over.Filter.Where
	}

	if over.Narrate != nil {
		result.Narrate = over.Narrate
	}
	if over.TimelineGroup != "" {
		result.TimelineGroup = over.TimelineGroup
	}

	if len(over.Presets) > 0 {
		result.Presets = make(map[string]PresetConfig, len(base.Presets)+len(over.Presets))
		maps.Copy(result.Presets, base.Presets)
		maps.Copy(result.Presets, over.Presets)
	}

	return &result
}
