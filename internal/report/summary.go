// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"

	"github.com/davetashner/riskboard/internal/aggregate"
	"github.com/davetashner/riskboard/internal/pipeline"
)

// summarySection reports descriptive statistics of the numeric columns.
type summarySection struct {
	stats []aggregate.ColumnSummary
}

func (s *summarySection) Name() string        { return "summary-statistics" }
func (s *summarySection) Description() string { return "Descriptive statistics of numeric columns" }

func (s *summarySection) Analyze(result *pipeline.Result) error {
	if len(result.Summary) == 0 {
		return fmt.Errorf("summary statistics: no numeric values: %w", ErrViewNotAvailable)
	}
	s.stats = result.Summary
	return nil
}

func (s *summarySection) Render(w io.Writer) error {
	writeTitle(w, "Summary Statistics")

	tbl := NewTable(
		Column{Header: "Column"},
		Column{Header: "Count", Align: AlignRight},
		Column{Header: "Mean", Align: AlignRight},
		Column{Header: "Std", Align: AlignRight},
		Column{Header: "Min", Align: AlignRight},
		Column{Header: "25%", Align: AlignRight},
		Column{Header: "50%", Align: AlignRight},
		Column{Header: "75%", Align: AlignRight},
		Column{Header: "Max", Align: AlignRight},
	)
	for _, c := range s.stats {
		tbl.AddRow(string(c.Column), itoa(c.Count),
			formatFloat(c.Mean), formatFloat(c.Std),
			formatFloat(c.Min), formatFloat(c.Q1), formatFloat(c.Median), formatFloat(c.Q3),
			formatFloat(c.Max))
	}

	if err := tbl.Render(w); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "\n")
	return nil
}
