// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

// Package filter selects incident rows by risk level, attack type, cutoff
// date and an optional CEL expression.
package filter

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/cel-go/cel"

	"github.com/davetashner/riskboard/internal/incident"
)

// Criteria is the serializable description of a filter. An empty selection list
// matches nothing; use All for the "everything selected" default.
type Criteria struct {
	RiskLevels  []incident.RiskLevel `json:"risk_levels"`
	AttackTypes []string             `json:"attack_types"`
	Since       *time.Time           `json:"since,omitempty"`
	Where       string               `json:"where,omitempty"`

	// Columns are the variables Where may reference. Empty declares every
	// known column.
	Columns []incident.Column `json:"-"`
}

// All selects every risk level and every attack type of the preset, and
// scopes Where to the preset's columns.
func All(p incident.Preset) Criteria {
	return Criteria{
		RiskLevels:  slices.Clone(incident.RiskLevels),
		AttackTypes: slices.Clone(p.AttackTypes),
		Columns:     p.Schema().Columns,
	}
}

// String renders the criteria for report headers and logs.
func (s Criteria) String() string {
	risks := make([]string, len(s.RiskLevels))
	for i, r := range s.RiskLevels {
		risks[i] = string(r)
	}
	parts := []string{
		"risk in [" + strings.Join(risks, ", ") + "]",
		"attack in [" + strings.Join(s.AttackTypes, ", ") + "]",
	}
	if s.Since != nil {
		parts = append(parts, "date >= "+s.Since.Format(incident.DateLayout))
	}
	if s.Where != "" {
		parts = append(parts, "where "+s.Where)
	}
	return strings.Join(parts, "; ")
}

// Predicate is a compiled Criteria.
type Predicate struct {
	crit    Criteria
	risks   map[incident.RiskLevel]bool
	attacks map[string]bool
	since   time.Time
	program cel.Program
}

// Compile validates c and prepares it for matching. CEL syntax or
// type errors, including references to columns outside c.Columns, are
// reported as incident.ErrInvalidArgument.
func Compile(c Criteria) (*Predicate, error) {
	p := &Predicate{
		crit:    c,
		risks:   make(map[incident.RiskLevel]bool, len(c.RiskLevels)),
		attacks: make(map[string]bool, len(c.AttackTypes)),
	}
	for _, r := range c.RiskLevels {
		p.risks[r] = true
	}
	for _, a := range c.AttackTypes {
		p.attacks[a] = true
	}
	if c.Since != nil {
		p.since = incident.Day(*c.Since)
	}
	if strings.TrimSpace(c.Where) != "" {
		prg, err := compileWhere(c.Where, c.Columns)
		if err != nil {
			return nil, err
		}
		p.program = prg
	}
	return p, nil
}

// Criteria returns the description the predicate was compiled from.
func (p *Predicate) Criteria() Criteria { return p.crit }

// Match reports whether r passes every condition.
func (p *Predicate) Match(r incident.Record) bool {
	if !p.risks[r.RiskLevel] || !p.attacks[r.AttackType] {
		return false
	}
	if !p.since.IsZero() && r.Date.Before(p.since) {
		return false
	}
	if p.program == nil {
		return true
	}
	out, _, err := p.program.Eval(activation(r))
	if err != nil {
		slog.Debug("where expression failed", "id", r.ID, "error", err)
		return false
	}
	match, ok := out.Value().(bool)
	return ok && match
}

// Apply returns the view of t selected by p.
func Apply(t *incident.Table, p *Predicate) *incident.View {
	return t.Select(p.Match)
}

var celTypes = map[incident.Column]*cel.Type{
	incident.ColID:             cel.IntType,
	incident.ColDate:           cel.TimestampType,
	incident.ColAttackType:     cel.StringType,
	incident.ColRiskLevel:      cel.StringType,
	incident.ColStatus:         cel.StringType,
	incident.ColDeviceType:     cel.StringType,
	incident.ColLossAmount:     cel.IntType,
	incident.ColTimeToFixHours: cel.IntType,
}

// envs caches one CEL environment per declared column set.
var envs sync.Map

func celEnv(cols []incident.Column) (*cel.Env, error) {
	if len(cols) == 0 {
		cols = incident.AllColumns
	}
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = string(c)
	}
	key := strings.Join(names, ",")
	if env, ok := envs.Load(key); ok {
		return env.(*cel.Env), nil
	}

	opts := make([]cel.EnvOption, 0, len(cols))
	for _, c := range cols {
		typ, ok := celTypes[c]
		if !ok {
			return nil, fmt.Errorf("unknown column %q", c)
		}
		opts = append(opts, cel.Variable(string(c), typ))
	}
	env, err := cel.NewEnv(opts...)
	if err != nil {
		return nil, err
	}
	actual, _ := envs.LoadOrStore(key, env)
	return actual.(*cel.Env), nil
}

func compileWhere(expr string, cols []incident.Column) (cel.Program, error) {
	env, err := celEnv(cols)
	if err != nil {
		return nil, fmt.Errorf("where: create CEL env: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("where: %v: %w", issues.Err(), incident.ErrInvalidArgument)
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("where: expression must evaluate to bool, got %s: %w",
			ast.OutputType(), incident.ErrInvalidArgument)
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("where: %v: %w", err, incident.ErrInvalidArgument)
	}
	return prg, nil
}

func activation(r incident.Record) map[string]any {
	return map[string]any{
		"id":                int64(r.ID),
		"date":              r.Date,
		"attack_type":       r.AttackType,
		"risk_level":        string(r.RiskLevel),
		"status":            r.Status,
		"device_type":       r.DeviceType,
		"loss_amount":       int64(r.LossAmount),
		"time_to_fix_hours": int64(r.TimeToFixHours),
	}
}
