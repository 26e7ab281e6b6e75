// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/davetashner/riskboard/internal/aggregate"
	"github.com/davetashner/riskboard/internal/incident"
	"github.com/davetashner/riskboard/internal/pipeline"
)

// timelineSection reports daily incident counts split by the timeline group.
type timelineSection struct {
	group  incident.Column
	points []aggregate.TimelinePoint
}

func (s *timelineSection) Name() string        { return "timeline" }
func (s *timelineSection) Description() string { return "Daily incident counts over the window" }

func (s *timelineSection) Analyze(result *pipeline.Result) error {
	if len(result.Timeline) == 0 {
		return fmt.Errorf("timeline: no matching incidents: %w", ErrViewNotAvailable)
	}
	s.group = result.TimelineGroup
	s.points = result.Timeline
	return nil
}

// Render pivots the sparse points into one row per date and one column per
// group. Dates without incidents are not listed.
func (s *timelineSection) Render(w io.Writer) error {
	writeTitle(w, fmt.Sprintf("Incident Timeline by %s", s.group))

	groups := s.groups()
	cols := []Column{{Header: "Date"}}
	for _, g := range groups {
		cols = append(cols, Column{Header: g, Align: AlignRight})
	}
	cols = append(cols, Column{Header: "Total", Align: AlignRight})
	tbl := NewTable(cols...)

	col := make(map[string]int, len(groups))
	for i, g := range groups {
		col[g] = i + 1
	}
	totals := make([]int, len(groups)+1)

	var row []string
	var rowTotal int
	flush := func() {
		if row == nil {
			return
		}
		row[len(row)-1] = itoa(rowTotal)
		tbl.AddRow(row...)
	}
	var day string
	for _, p := range s.points {
		d := p.Date.Format(incident.DateLayout)
		if d != day {
			flush()
			day = d
			row = make([]string, len(cols))
			row[0] = d
			for i := 1; i < len(cols)-1; i++ {
				row[i] = "-"
			}
			rowTotal = 0
		}
		row[col[p.Group]] = itoa(p.Count)
		rowTotal += p.Count
		totals[col[p.Group]-1] += p.Count
		totals[len(groups)] += p.Count
	}
	flush()

	footer := []string{"Total"}
	for _, n := range totals {
		footer = append(footer, itoa(n))
	}
	tbl.SetFooter(footer...)

	if err := tbl.Render(w); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "\n")
	return nil
}

func (s *timelineSection) groups() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range s.points {
		if !seen[p.Group] {
			seen[p.Group] = true
			out = append(out, p.Group)
		}
	}
	if s.group == incident.ColRiskLevel {
		sort.SliceStable(out, func(i, j int) bool {
			return incident.RiskLevel(out[i]).Rank() < incident.RiskLevel(out[j]).Rank()
		})
	} else {
		sort.Strings(out)
	}
	return out
}
