// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetValue(t *testing.T) {
	cfg := &Config{
		Preset: "enriched",
		Seed:   ptr(int64(5)),
		Window: WindowConfig{LastDays: ptr(14)},
		Filter: FilterConfig{RiskLevels: []string{"High"}},
		Presets: map[string]PresetConfig{
			"lab": {Base: "basic"},
		},
	}

	tests := []struct {
		key  string
		want any
	}{
		{"preset", "enriched"},
		{"seed", 5},
		{"window.last_days", 14},
		{"filter.risk_levels", []any{"High"}},
		{"presets.lab.base", "basic"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := GetValue(cfg, tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetValue_Missing(t *testing.T) {
	_, err := GetValue(&Config{}, "preset")
	assert.Error(t, err)

	_, err = GetValue(&Config{Preset: "basic"}, "preset.name")
	assert.Error(t, err)
}

func TestSetValue(t *testing.T) {
	data := map[string]any{"preset": "basic"}

	require.NoError(t, SetValue(data, "seed", "42"))
	require.NoError(t, SetValue(data, "window.last_days", "7"))
	require.NoError(t, SetValue(data, "filter.risk_levels", "[High, Medium]"))
	require.NoError(t, SetValue(data, "presets.lab.loss_amount.max", "900"))
	require.NoError(t, SetValue(data, "narrate", "true"))

	assert.Equal(t, 42, data["seed"])
	assert.Equal(t, true, data["narrate"])
	assert.Equal(t, 7, data["window"].(map[string]any)["last_days"])
	assert.Equal(t, []any{"High", "Medium"}, data["filter"].(map[string]any)["risk_levels"])

	flat := FlattenMap(data, "")
	assert.Equal(t, 900, flat["presets.lab.loss_amount.max"])
	assert.Equal(t, "basic", flat["preset"])
}

func TestSetValue_Errors(t *testing.T) {
	assert.Error(t, SetValue(map[string]any{}, "", "x"))
	assert.Error(t, SetValue(map[string]any{"preset": "basic"}, "preset.name", "x"))
}

func TestValidateKeyPath(t *testing.T) {
	valid := []string{
		"preset", "seed", "count", "output_format", "narrate", "timeline_group",
		"window", "window.start", "window.last_days",
		"filter", "filter.where", "filter.attack_types",
		"presets.retail", "presets.retail.base", "presets.retail.loss_amount.min",
		"presets.retail.time_to_fix_hours.max", "presets.retail.risk_weights.high",
	}
	for _, key := range valid {
		assert.NoError(t, ValidateKeyPath(key), key)
	}

	invalid := map[string]string{
		"":                               "empty key path",
		"colour":                         "unknown key",
		"seed.value":                     "is a scalar",
		"window.days":                    "unknown window field",
		"filter.where.x":                 "too deep",
		"presets":                        "requires a preset name",
		"presets.retail.color":           "unknown preset field",
		"presets.retail.loss_amount.avg": "unknown range field",
		"presets.retail.risk_weights.x":  "risk_weights",
		"presets.retail.base.x":          "is a scalar",
		"presets.a.loss_amount.min.x":    "too deep",
	}
	for key, want := range invalid {
		err := ValidateKeyPath(key)
		require.Error(t, err, key)
		assert.Contains(t, err.Error(), want, key)
	}
}

func TestCoerceValue(t *testing.T) {
	assert.Equal(t, true, coerceValue("true"))
	assert.Equal(t, false, coerceValue("false"))
	assert.Equal(t, 12, coerceValue("12"))
	assert.Equal(t, 0.25, coerceValue("0.25"))
	assert.Equal(t, []any{}, coerceValue("[]"))
	assert.Equal(t, []any{"Phishing", "DDoS"}, coerceValue("[Phishing, DDoS]"))
	assert.Equal(t, "loss_amount > 10", coerceValue("loss_amount > 10"))
	assert.Equal(t, "[unterminated", coerceValue("[unterminated"))
}
