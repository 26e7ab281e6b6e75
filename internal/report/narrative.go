// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/davetashner/riskboard/internal/pipeline"
)

// narrativeWidth is the column at which narrative paragraphs wrap.
const narrativeWidth = 78

// narrativeSection renders the optional executive summary.
type narrativeSection struct {
	text string
}

func (s *narrativeSection) Name() string        { return "narrative" }
func (s *narrativeSection) Description() string { return "Executive summary written by an LLM" }

func (s *narrativeSection) Analyze(result *pipeline.Result) error {
	if strings.TrimSpace(result.Narrative) == "" {
		return fmt.Errorf("narrative: not requested: %w", ErrViewNotAvailable)
	}
	s.text = result.Narrative
	return nil
}

func (s *narrativeSection) Render(w io.Writer) error {
	writeTitle(w, "Executive Summary")
	for _, para := range strings.Split(strings.TrimSpace(s.text), "\n\n") {
		for _, line := range wrap(para, narrativeWidth-2) {
			_, _ = fmt.Fprintf(w, "  %s\n", line)
		}
		_, _ = fmt.Fprintf(w, "\n")
	}
	return nil
}

// wrap breaks text into lines of at most width bytes at word boundaries.
// A single word longer than width gets its own line.
func wrap(text string, width int) []string {
	var lines []string
	var cur strings.Builder
	for _, word := range strings.Fields(text) {
		if cur.Len() > 0 && cur.Len()+1+len(word) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
