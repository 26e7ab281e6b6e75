// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/davetashner/riskboard/internal/filter"
	"github.com/davetashner/riskboard/internal/incident"
)

// Criteria builds the filter for preset p. Unset lists select the whole
// vocabulary of p. Values outside the vocabulary are kept and select nothing.
func (fc FilterConfig) Criteria(p incident.Preset) (filter.Criteria, error) {
	crit := filter.All(p)

	if fc.RiskLevels != nil {
		crit.RiskLevels = ParseRiskLevels(fc.RiskLevels)
	}
	if fc.AttackTypes != nil {
		crit.AttackTypes = slices.Clone(fc.AttackTypes)
	}
	if fc.Since != "" {
		since, err := incident.ParseDate(fc.Since)
		if err != nil {
			return filter.Criteria{}, fmt.Errorf("since: %w", err)
		}
		crit.Since = &since
	}
	crit.Where = strings.TrimSpace(fc.Where)
	return crit, nil
}

// ParseRiskLevels parses level names case-insensitively, dropping blanks and
// duplicates. A name that is not a known level is kept as written; no
// record carries it, so it narrows the selection to nothing.
func ParseRiskLevels(names []string) []incident.RiskLevel {
	out := []incident.RiskLevel{}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		level, err := incident.ParseRiskLevel(n)
		if err != nil {
			level = incident.RiskLevel(n)
		}
		if !slices.Contains(out, level) {
			out = append(out, level)
		}
	}
	return out
}
