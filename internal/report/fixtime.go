// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"

	"github.com/davetashner/riskboard/internal/aggregate"
	"github.com/davetashner/riskboard/internal/pipeline"
)

// fixTimeSection reports the mean time to fix per attack type.
type fixTimeSection struct {
	hours map[string]float64
}

func (s *fixTimeSection) Name() string        { return "fix-time" }
func (s *fixTimeSection) Description() string { return "Mean time to fix (hours) per attack type" }

func (s *fixTimeSection) Analyze(result *pipeline.Result) error {
	if result.FixTimeByAttack == nil {
		return fmt.Errorf("fix time: preset %q has no time_to_fix_hours column: %w",
			result.Info.Schema.Preset, ErrViewNotAvailable)
	}
	if len(result.FixTimeByAttack) == 0 {
		return fmt.Errorf("fix time: no matching incidents: %w", ErrViewNotAvailable)
	}
	s.hours = result.FixTimeByAttack
	return nil
}

func (s *fixTimeSection) Render(w io.Writer) error {
	writeTitle(w, "Average Time to Fix by Attack Type")

	tbl := NewTable(
		Column{Header: "Attack Type"},
		Column{Header: "Mean Hours", Align: AlignRight},
	)
	for _, k := range aggregate.SortedKeys(s.hours) {
		tbl.AddRow(k, formatFloat(s.hours[k]))
	}

	if err := tbl.Render(w); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "\n")
	return nil
}
