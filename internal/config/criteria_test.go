// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/riskboard/internal/filter"
	"github.com/davetashner/riskboard/internal/incident"
)

func TestFilterConfig_CriteriaDefaults(t *testing.T) {
	crit, err := FilterConfig{}.Criteria(incident.Basic())
	require.NoError(t, err)
	assert.Equal(t, filter.All(incident.Basic()), crit)
}

func TestFilterConfig_Criteria(t *testing.T) {
	fc := FilterConfig{
		RiskLevels:  []string{"high", "", "High", "low"},
		AttackTypes: []string{"Phishing"},
		Since:       "2024-03-05",
		Where:       "  loss_amount > 5000 ",
	}
	crit, err := fc.Criteria(incident.Basic())
	require.NoError(t, err)
	assert.Equal(t, []incident.RiskLevel{incident.RiskHigh, incident.RiskLow}, crit.RiskLevels)
	assert.Equal(t, []string{"Phishing"}, crit.AttackTypes)
	require.NotNil(t, crit.Since)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), *crit.Since)
	assert.Equal(t, "loss_amount > 5000", crit.Where)
}

func TestFilterConfig_ExplicitEmptySelectsNothing(t *testing.T) {
	crit, err := FilterConfig{RiskLevels: []string{}}.Criteria(incident.Basic())
	require.NoError(t, err)
	assert.NotNil(t, crit.RiskLevels)
	assert.Empty(t, crit.RiskLevels)
	assert.Equal(t, incident.Basic().AttackTypes, crit.AttackTypes)
}

func TestFilterConfig_UnknownValuesSelectNothing(t *testing.T) {
	fc := FilterConfig{
		RiskLevels:  []string{"Critical", "high"},
		AttackTypes: []string{"SQL Injection"},
	}
	crit, err := fc.Criteria(incident.Basic())
	require.NoError(t, err)
	assert.Equal(t, []incident.RiskLevel{"Critical", incident.RiskHigh}, crit.RiskLevels)
	assert.Equal(t, []string{"SQL Injection"}, crit.AttackTypes)

	pred, err := filter.Compile(crit)
	require.NoError(t, err)
	assert.False(t, pred.Match(incident.Record{RiskLevel: incident.RiskHigh, AttackType: "Phishing"}))
}

func TestFilterConfig_CriteriaErrors(t *testing.T) {
	_, err := FilterConfig{Since: "2024/03/05"}.Criteria(incident.Basic())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "since")
}

func TestParseRiskLevels(t *testing.T) {
	got := ParseRiskLevels(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got = ParseRiskLevels([]string{" medium ", "MEDIUM", "High"})
	assert.Equal(t, []incident.RiskLevel{incident.RiskMedium, incident.RiskHigh}, got)

	got = ParseRiskLevels([]string{" Critical ", "Critical"})
	assert.Equal(t, []incident.RiskLevel{"Critical"}, got)
}
