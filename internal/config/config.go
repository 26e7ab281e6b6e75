// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

// Package config handles .riskboard.yaml (or .riskboard.toml) configuration
// files.
package config

import "github.com/davetashner/riskboard/internal/incident"

// Config represents the contents of a riskboard config file. Pointer fields
// distinguish "unset" from a legitimate zero value.
type Config struct {
	Preset        string                  `yaml:"preset,omitempty" toml:"preset,omitempty"`
	Seed          *int64                  `yaml:"seed,omitempty" toml:"seed,omitempty"`
	Count         *int                    `yaml:"count,omitempty" toml:"count,omitempty"`
	Window        WindowConfig            `yaml:"window,omitempty" toml:"window,omitempty"`
	OutputFormat  string                  `yaml:"output_format,omitempty" toml:"output_format,omitempty"`
	Filter        FilterConfig            `yaml:"filter,omitempty" toml:"filter,omitempty"`
	Narrate       *bool                   `yaml:"narrate,omitempty" toml:"narrate,omitempty"`
	TimelineGroup string                  `yaml:"timeline_group,omitempty" toml:"timeline_group,omitempty"`
	Presets       map[string]PresetConfig `yaml:"presets,omitempty" toml:"presets,omitempty"`
}

// WindowConfig selects the date window. LastDays and Start/End are mutually
// exclusive.
type WindowConfig struct {
	Start    string `yaml:"start,omitempty" toml:"start,omitempty"`
	End      string `yaml:"end,omitempty" toml:"end,omitempty"`
	LastDays *int   `yaml:"last_days,omitempty" toml:"last_days,omitempty"`
}

// FilterConfig is the default filter. A nil list selects everything; an
// explicit empty list selects nothing.
type FilterConfig struct {
	RiskLevels  []string `yaml:"risk_levels,omitempty" toml:"risk_levels,omitempty"`
	AttackTypes []string `yaml:"attack_types,omitempty" toml:"attack_types,omitempty"`
	Since       string   `yaml:"since,omitempty" toml:"since,omitempty"`
	Where       string   `yaml:"where,omitempty" toml:"where,omitempty"`
}

// PresetConfig declares a custom generation preset. Fields left unset are
// inherited from Base, or from an empty preset when Base is empty.
type PresetConfig struct {
	Base        string             `yaml:"base,omitempty" toml:"base,omitempty"`
	Description string             `yaml:"description,omitempty" toml:"description,omitempty"`
	AttackTypes []string           `yaml:"attack_types,omitempty" toml:"attack_types,omitempty"`
	RiskWeights map[string]float64 `yaml:"risk_weights,omitempty" toml:"risk_weights,omitempty"`
	Statuses    []string           `yaml:"statuses,omitempty" toml:"statuses,omitempty"`
	DeviceTypes []string           `yaml:"device_types,omitempty" toml:"device_types,omitempty"`
	LossAmount  *incident.IntRange `yaml:"loss_amount,omitempty" toml:"loss_amount,omitempty"`
	FixHours    *incident.IntRange `yaml:"time_to_fix_hours,omitempty" toml:"time_to_fix_hours,omitempty"`
	DateMode    string             `yaml:"date_mode,omitempty" toml:"date_mode,omitempty"`
	SortByDate  *bool              `yaml:"sort_by_date,omitempty" toml:"sort_by_date,omitempty"`
	DefaultDays *int               `yaml:"default_days,omitempty" toml:"default_days,omitempty"`
}

// FileName is the expected config file name in a working directory.
const FileName = ".riskboard.yaml"

// TOMLFileName is read when FileName does not exist.
const TOMLFileName = ".riskboard.toml"
