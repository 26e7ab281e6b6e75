// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

// Package pipeline derives every reporting view from a filtered incident
// table in one pass.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/davetashner/riskboard/internal/aggregate"
	"github.com/davetashner/riskboard/internal/incident"
)

// DefaultTimelineGroup is the column the timeline is split by when none is
// configured.
const DefaultTimelineGroup = incident.ColRiskLevel

// Config tunes view construction.
type Config struct {
	// TimelineGroup splits the timeline. Empty means DefaultTimelineGroup.
	TimelineGroup incident.Column

	// Filter describes how the rows were selected, for report headers.
	Filter string
}

// RiskShare is one risk level's share of the matched rows.
type RiskShare struct {
	Level   incident.RiskLevel `json:"level"`
	Count   int                `json:"count"`
	Percent float64            `json:"percent"`
}

// Result holds the views built from one set of rows. Views whose column is
// absent from the dataset schema are nil.
type Result struct {
	Info       incident.Info `json:"dataset"`
	Window     string        `json:"window"`
	Filter     string        `json:"filter,omitempty"`
	Matched    int           `json:"matched"`
	Total      int           `json:"total"`
	MatchedPct float64       `json:"matched_pct"`

	RiskDistribution []RiskShare               `json:"risk_distribution"`
	LossByAttack     map[string]float64        `json:"loss_by_attack,omitempty"`
	FixTimeByAttack  map[string]float64        `json:"fix_time_by_attack,omitempty"`
	DeviceTypes      []aggregate.Count         `json:"device_types,omitempty"`
	TimelineGroup    incident.Column           `json:"timeline_group"`
	Timeline         []aggregate.TimelinePoint `json:"timeline"`
	Summary          []aggregate.ColumnSummary `json:"summary"`

	Narrative string        `json:"narrative,omitempty"`
	Duration  time.Duration `json:"-"`
}

// Pipeline builds Results.
type Pipeline struct {
	config Config
}

// New validates cfg and returns a Pipeline.
func New(cfg Config) (*Pipeline, error) {
	if cfg.TimelineGroup == "" {
		cfg.TimelineGroup = DefaultTimelineGroup
	}
	if _, err := incident.ParseColumn(string(cfg.TimelineGroup)); err != nil {
		return nil, fmt.Errorf("timeline group: %w", err)
	}
	if cfg.TimelineGroup.Numeric() || cfg.TimelineGroup == incident.ColDate {
		return nil, fmt.Errorf("timeline group must be a categorical column, got %q: %w",
			cfg.TimelineGroup, incident.ErrInvalidArgument)
	}
	return &Pipeline{config: cfg}, nil
}

// Run builds every view the schema of rows supports. The views are computed
// concurrently over the same read-only rows.
func (p *Pipeline) Run(ctx context.Context, rows incident.Rows) (*Result, error) {
	start := time.Now()
	info := rows.Info()
	schema := info.Schema

	if !schema.Has(p.config.TimelineGroup) {
		return nil, fmt.Errorf("timeline group %q is not a column of preset %q: %w",
			p.config.TimelineGroup, schema.Preset, incident.ErrInvalidArgument)
	}

	res := &Result{
		Info:          info,
		Window:        info.Window.String(),
		Filter:        p.config.Filter,
		Matched:       rows.Len(),
		Total:         info.Total,
		MatchedPct:    aggregate.Percentage(float64(rows.Len()), float64(info.Total)),
		TimelineGroup: p.config.TimelineGroup,
	}

	g, ctx := errgroup.WithContext(ctx)
	build := func(name string, fn func()) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			fn()
			return nil
		})
	}

	build("risk distribution", func() {
		res.RiskDistribution = riskDistribution(rows)
	})
	if schema.Has(incident.ColLossAmount) {
		build("loss by attack", func() {
			res.LossByAttack = aggregate.SumBy(rows, incident.ColAttackType, incident.ColLossAmount)
		})
	}
	if schema.Has(incident.ColTimeToFixHours) {
		build("fix time by attack", func() {
			res.FixTimeByAttack = aggregate.MeanBy(rows, incident.ColAttackType, incident.ColTimeToFixHours)
		})
	}
	if schema.Has(incident.ColDeviceType) {
		build("device types", func() {
			res.DeviceTypes = aggregate.CountBy(rows, incident.ColDeviceType)
		})
	}
	build("timeline", func() {
		res.Timeline = aggregate.Timeline(rows, p.config.TimelineGroup)
	})
	build("summary", func() {
		res.Summary = aggregate.Describe(rows, numericColumns(schema)...)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	res.Duration = time.Since(start)
	slog.Debug("views built", "matched", res.Matched, "total", res.Total, "duration", res.Duration)
	return res, nil
}

func riskDistribution(rows incident.Rows) []RiskShare {
	counts := aggregate.CountBy(rows, incident.ColRiskLevel)
	out := make([]RiskShare, len(counts))
	for i, c := range counts {
		out[i] = RiskShare{
			Level:   incident.RiskLevel(c.Category),
			Count:   c.Count,
			Percent: aggregate.Percentage(float64(c.Count), float64(rows.Len())),
		}
	}
	return out
}

func numericColumns(s incident.Schema) []incident.Column {
	var cols []incident.Column
	for _, c := range s.Columns {
		if c.Numeric() && c != incident.ColID {
			cols = append(cols, c)
		}
	}
	return cols
}
