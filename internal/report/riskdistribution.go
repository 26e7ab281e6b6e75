// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"

	"github.com/davetashner/riskboard/internal/pipeline"
)

// riskDistributionSection reports how matched incidents split across risk
// levels.
type riskDistributionSection struct {
	shares []pipeline.RiskShare
}

func (s *riskDistributionSection) Name() string { return "risk-distribution" }
func (s *riskDistributionSection) Description() string {
	return "Incident count and share per risk level"
}

func (s *riskDistributionSection) Analyze(result *pipeline.Result) error {
	if len(result.RiskDistribution) == 0 {
		return fmt.Errorf("risk distribution: no matching incidents: %w", ErrViewNotAvailable)
	}
	s.shares = result.RiskDistribution
	return nil
}

func (s *riskDistributionSection) Render(w io.Writer) error {
	writeTitle(w, "Risk Level Distribution")

	tbl := NewTable(
		Column{Header: "Risk Level", Color: ColorRiskLevel},
		Column{Header: "Incidents", Align: AlignRight},
		Column{Header: "Share", Align: AlignRight},
	)
	total := 0
	for _, r := range s.shares {
		tbl.AddRow(string(r.Level), itoa(r.Count), formatPct(r.Percent))
		total += r.Count
	}
	tbl.SetFooter("Total", itoa(total), formatPct(100))

	if err := tbl.Render(w); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "\n")
	return nil
}
