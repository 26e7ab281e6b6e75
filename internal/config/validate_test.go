// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/riskboard/internal/incident"
)

func TestValidate_Empty(t *testing.T) {
	assert.NoError(t, Validate(&Config{}))
}

func TestValidate_FullValid(t *testing.T) {
	cfg := &Config{
		Preset:        "enriched",
		Seed:          ptr(int64(42)),
		Count:         ptr(0),
		Window:        WindowConfig{Start: "2024-01-01", End: "2024-01-01"},
		OutputFormat:  "markdown",
		TimelineGroup: "device_type",
		Filter: FilterConfig{
			RiskLevels:  []string{"high", "Medium"},
			AttackTypes: []string{"SQL Injection"},
			Since:       "2024-01-01",
			Where:       `status != "Resolved"`,
		},
	}
	assert.NoError(t, Validate(cfg))
}

func TestValidate_Problems(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"unknown preset", Config{Preset: "nope"}, "preset:"},
		{"negative count", Config{Count: ptr(-1)}, "count: must be non-negative"},
		{"bad start", Config{Window: WindowConfig{Start: "01/02/2024"}}, "window.start:"},
		{"bad end", Config{Window: WindowConfig{End: "tomorrow"}}, "window.end:"},
		{"end before start", Config{Window: WindowConfig{Start: "2024-02-01", End: "2024-01-01"}}, "is before start"},
		{"negative last_days", Config{Window: WindowConfig{LastDays: ptr(-3)}}, "window.last_days"},
		{"last_days with start", Config{Window: WindowConfig{Start: "2024-01-01", LastDays: ptr(3)}}, "cannot be combined"},
		{"bad format", Config{OutputFormat: "xml"}, "output_format:"},
		{"bad since", Config{Filter: FilterConfig{Since: "March"}}, "filter.since:"},
		{"bad where", Config{Filter: FilterConfig{Where: "loss_amount >"}}, "filter.where:"},
		{"where column not in preset", Config{Preset: "enriched", Filter: FilterConfig{Where: "loss_amount > 20000"}}, "filter.where:"},
		{"bad timeline group", Config{TimelineGroup: "loss_amount"}, "timeline_group:"},
		{"bad declared preset", Config{Presets: map[string]PresetConfig{"x": {}}}, "presets.x:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, incident.ErrInvalidArgument)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	cfg := &Config{
		Count:        ptr(-1),
		OutputFormat: "xml",
		Filter:       FilterConfig{Since: "nope"},
	}
	err := Validate(cfg)
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Problems, 3)
	assert.Contains(t, err.Error(), "config validation failed:\n  count:")
}

func TestValidate_DeclaredPresetVocabulary(t *testing.T) {
	cfg := &Config{
		Preset: "retail",
		Presets: map[string]PresetConfig{
			"retail": {Base: "basic", AttackTypes: []string{"Skimming"}},
		},
		Filter: FilterConfig{AttackTypes: []string{"Skimming"}},
	}
	assert.NoError(t, Validate(cfg))

	cfg.Filter.AttackTypes = []string{"Phishing"}
	assert.NoError(t, Validate(cfg), "values outside the vocabulary select nothing")

	cfg.Filter.Where = "time_to_fix_hours > 4"
	err := Validate(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, incident.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "filter.where:")
}
