// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package incident

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
)

// DateMode controls how record dates are drawn from the window.
type DateMode string

const (
	// DateSequential assigns one day per record from the window start,
	// wrapping when the window is exhausted.
	DateSequential DateMode = "sequential"
	// DateRandom draws each date uniformly from the window.
	DateRandom DateMode = "random"
)

// IntRange is a half-open integer range [Min, Max).
type IntRange struct {
	Min int `json:"min" yaml:"min" toml:"min"`
	Max int `json:"max" yaml:"max" toml:"max"`
}

// Weighted pairs a risk level with its sampling weight.
type Weighted struct {
	Level  RiskLevel `json:"level"`
	Weight float64   `json:"weight"`
}

// Preset is a named generation schema: vocabularies, weights and ranges.
type Preset struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	AttackTypes []string   `json:"attack_types"`
	RiskWeights []Weighted `json:"risk_weights"`
	Statuses    []string   `json:"statuses,omitempty"`
	DeviceTypes []string   `json:"device_types,omitempty"`
	LossAmount  *IntRange  `json:"loss_amount,omitempty"`
	FixHours    *IntRange  `json:"time_to_fix_hours,omitempty"`
	DateMode    DateMode   `json:"date_mode"`
	SortByDate  bool       `json:"sort_by_date"`

	// DefaultDays is the window length used when no window is given.
	// Zero means "one day per record".
	DefaultDays int `json:"default_days,omitempty"`
}

// Schema returns the columns this preset produces.
func (p Preset) Schema() Schema {
	cols := []Column{ColID, ColDate, ColAttackType, ColRiskLevel}
	if len(p.Statuses) > 0 {
		cols = append(cols, ColStatus)
	}
	if len(p.DeviceTypes) > 0 {
		cols = append(cols, ColDeviceType)
	}
	if p.LossAmount != nil {
		cols = append(cols, ColLossAmount)
	}
	if p.FixHours != nil {
		cols = append(cols, ColTimeToFixHours)
	}
	return Schema{Preset: p.Name, Columns: cols}
}

// Validate checks the preset and returns every problem at once, wrapped in
// ErrInvalidArgument.
func (p Preset) Validate() error {
	var errs []string
	if p.Name == "" {
		errs = append(errs, "name: must not be empty")
	}
	if len(p.AttackTypes) == 0 {
		errs = append(errs, "attack_types: must not be empty")
	}
	if len(p.RiskWeights) == 0 {
		errs = append(errs, "risk_weights: must not be empty")
	}
	var total float64
	for _, w := range p.RiskWeights {
		if w.Level.Rank() == 0 {
			errs = append(errs, fmt.Sprintf("risk_weights: unknown level %q", w.Level))
		}
		if w.Weight < 0 {
			errs = append(errs, fmt.Sprintf("risk_weights.%s: must be non-negative, got %g", w.Level, w.Weight))
		}
		total += w.Weight
	}
	if len(p.RiskWeights) > 0 && total <= 0 {
		errs = append(errs, "risk_weights: must sum to a positive value")
	}
	for name, r := range map[string]*IntRange{"loss_amount": p.LossAmount, "time_to_fix_hours": p.FixHours} {
		if r != nil && r.Min >= r.Max {
			errs = append(errs, fmt.Sprintf("%s: min %d must be less than max %d", name, r.Min, r.Max))
		}
	}
	switch p.DateMode {
	case DateSequential, DateRandom:
	default:
		errs = append(errs, fmt.Sprintf("date_mode: invalid value %q (must be sequential or random)", p.DateMode))
	}
	if p.DefaultDays < 0 {
		errs = append(errs, fmt.Sprintf("default_days: must be non-negative, got %d", p.DefaultDays))
	}

	if len(errs) > 0 {
		sort.Strings(errs)
		return fmt.Errorf("preset %q: %s: %w", p.Name, strings.Join(errs, "; "), ErrInvalidArgument)
	}
	return nil
}

// Clone returns a deep copy of p.
func (p Preset) Clone() Preset {
	p.AttackTypes = slices.Clone(p.AttackTypes)
	p.RiskWeights = slices.Clone(p.RiskWeights)
	p.Statuses = slices.Clone(p.Statuses)
	p.DeviceTypes = slices.Clone(p.DeviceTypes)
	if p.LossAmount != nil {
		r := *p.LossAmount
		p.LossAmount = &r
	}
	if p.FixHours != nil {
		r := *p.FixHours
		p.FixHours = &r
	}
	return p
}

// Basic is the risk-assessment dataset: four attack types,
// a loss amount column, and one incident per day.
func Basic() Preset {
	return Preset{
		Name:        "basic",
		Description: "Risk assessment: loss amounts, one incident per day",
		AttackTypes: []string{"Phishing", "Malware", "DDoS", "Ransomware"},
		RiskWeights: []Weighted{
			{Level: RiskLow, Weight: 0.2},
			{Level: RiskMedium, Weight: 0.5},
			{Level: RiskHigh, Weight: 0.3},
		},
		LossAmount: &IntRange{Min: 1000, Max: 50000},
		DateMode:   DateSequential,
	}
}

// Enriched adds status, device type and time-to-fix columns with dates drawn
// from the last 30 days.
func Enriched() Preset {
	return Preset{
		Name:        "enriched",
		Description: "Incident monitoring: status, devices, time to fix, last 30 days",
		AttackTypes: []string{"Phishing", "Malware", "DDoS", "Ransomware", "SQL Injection", "Insider Threat"},
		RiskWeights: []Weighted{
			{Level: RiskLow, Weight: 0.5},
			{Level: RiskMedium, Weight: 0.3},
			{Level: RiskHigh, Weight: 0.2},
		},
		Statuses:    []string{"Open", "Investigating", "Resolved"},
		DeviceTypes: []string{"Laptop", "Server", "Mobile", "Workstation", "IoT"},
		FixHours:    &IntRange{Min: 1, Max: 73},
		DateMode:    DateRandom,
		SortByDate:  true,
		DefaultDays: 30,
	}
}

// DefaultPreset is used when no preset is configured.
const DefaultPreset = "basic"

var (
	mu      sync.RWMutex
	presets = map[string]Preset{}
	order   []string
)

func init() {
	RegisterPreset(Basic())
	RegisterPreset(Enriched())
}

// RegisterPreset adds or replaces a named preset.
func RegisterPreset(p Preset) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := presets[p.Name]; !exists {
		order = append(order, p.Name)
	}
	presets[p.Name] = p
}

// LookupPreset returns the named preset.
func LookupPreset(name string) (Preset, error) {
	mu.RLock()
	defer mu.RUnlock()
	p, ok := presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("unknown preset %q (available: %s): %w",
			name, strings.Join(order, ", "), ErrInvalidArgument)
	}
	return p.Clone(), nil
}

// Presets returns all registered presets in registration order.
func Presets() []Preset {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Preset, 0, len(order))
	for _, name := range order {
		out = append(out, presets[name].Clone())
	}
	return out
}

// resetPresetsForTesting restores the built-in presets only.
func resetPresetsForTesting() {
	mu.Lock()
	presets = map[string]Preset{}
	order = nil
	mu.Unlock()
	RegisterPreset(Basic())
	RegisterPreset(Enriched())
}
