// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"

	"github.com/davetashner/riskboard/internal/aggregate"
	"github.com/davetashner/riskboard/internal/pipeline"
)

// deviceTypesSection reports which device types were affected.
type deviceTypesSection struct {
	counts  []aggregate.Count
	matched int
}

func (s *deviceTypesSection) Name() string        { return "device-types" }
func (s *deviceTypesSection) Description() string { return "Incident count per affected device type" }

func (s *deviceTypesSection) Analyze(result *pipeline.Result) error {
	if result.DeviceTypes == nil {
		return fmt.Errorf("device types: preset %q has no device_type column: %w",
			result.Info.Schema.Preset, ErrViewNotAvailable)
	}
	if len(result.DeviceTypes) == 0 {
		return fmt.Errorf("device types: no matching incidents: %w", ErrViewNotAvailable)
	}
	s.counts = result.DeviceTypes
	s.matched = result.Matched
	return nil
}

func (s *deviceTypesSection) Render(w io.Writer) error {
	writeTitle(w, "Affected Device Types")

	tbl := NewTable(
		Column{Header: "Device Type"},
		Column{Header: "Incidents", Align: AlignRight},
		Column{Header: "Share", Align: AlignRight},
	)
	for _, c := range s.counts {
		tbl.AddRow(c.Category, itoa(c.Count), formatPct(aggregate.Percentage(float64(c.Count), float64(s.matched))))
	}

	if err := tbl.Render(w); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "\n")
	return nil
}
