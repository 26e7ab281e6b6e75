// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package incident

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinPresets_Valid(t *testing.T) {
	for _, p := range []Preset{Basic(), Enriched()} {
		t.Run(p.Name, func(t *testing.T) {
			require.NoError(t, p.Validate())
		})
	}
}

func TestPreset_ValidateCollectsErrors(t *testing.T) {
	p := Preset{
		Name:        "broken",
		RiskWeights: []Weighted{{Level: "Critical", Weight: -1}},
		LossAmount:  &IntRange{Min: 10, Max: 10},
		DateMode:    "weekly",
		DefaultDays: -3,
	}
	err := p.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	msg := err.Error()
	assert.Contains(t, msg, "attack_types")
	assert.Contains(t, msg, `unknown level "Critical"`)
	assert.Contains(t, msg, "must be non-negative")
	assert.Contains(t, msg, "positive value")
	assert.Contains(t, msg, "loss_amount: min 10")
	assert.Contains(t, msg, `date_mode: invalid value "weekly"`)
	assert.Contains(t, msg, "default_days")
}

func TestLookupPreset(t *testing.T) {
	p, err := LookupPreset("enriched")
	require.NoError(t, err)
	assert.Equal(t, "enriched", p.Name)

	_, err = LookupPreset("nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Contains(t, err.Error(), "basic, enriched")
}

func TestRegisterPreset(t *testing.T) {
	defer resetPresetsForTesting()

	custom := Basic()
	custom.Name = "custom"
	RegisterPreset(custom)

	names := make([]string, 0)
	for _, p := range Presets() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"basic", "enriched", "custom"}, names)

	// Re-registering replaces without duplicating.
	custom.Description = "changed"
	RegisterPreset(custom)
	assert.Len(t, Presets(), 3)
	got, err := LookupPreset("custom")
	require.NoError(t, err)
	assert.Equal(t, "changed", got.Description)
}

func TestLookupPreset_ReturnsCopy(t *testing.T) {
	p, err := LookupPreset("basic")
	require.NoError(t, err)
	p.AttackTypes[0] = "changed"
	p.LossAmount.Max = 1

	again, err := LookupPreset("basic")
	require.NoError(t, err)
	assert.Equal(t, Basic(), again)
}
