// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"

	"github.com/davetashner/riskboard/internal/pipeline"
)

// overviewSection reports the dataset provenance and how much of it matched.
type overviewSection struct {
	result *pipeline.Result
}

func (s *overviewSection) Name() string        { return "overview" }
func (s *overviewSection) Description() string { return "Dataset provenance and filter match rate" }

func (s *overviewSection) Analyze(result *pipeline.Result) error {
	s.result = result
	return nil
}

func (s *overviewSection) Render(w io.Writer) error {
	r := s.result
	writeTitle(w, "Overview")
	_, _ = fmt.Fprintf(w, "  Dataset:  %s\n", r.Info.ID)
	_, _ = fmt.Fprintf(w, "  Preset:   %s\n", r.Info.Schema.Preset)
	_, _ = fmt.Fprintf(w, "  Seed:     %d\n", r.Info.Seed)
	_, _ = fmt.Fprintf(w, "  Window:   %s\n", r.Window)
	if r.Filter != "" {
		_, _ = fmt.Fprintf(w, "  Filter:   %s\n", r.Filter)
	}
	_, _ = fmt.Fprintf(w, "  Matched:  %d of %d incidents (%s)\n\n", r.Matched, r.Total, formatPct(r.MatchedPct))
	return nil
}
