// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/davetashner/riskboard/internal/pipeline"
)

// nowFunc is replaced in tests for deterministic timestamps.
var nowFunc = time.Now

// renderMu serializes rendering, since registered sections keep the state
// of their last Analyze call.
var renderMu sync.Mutex

// ReportJSON is the top-level JSON structure for --format json output. The
// pipeline result's views are inlined.
type ReportJSON struct {
	Generated string `json:"generated"`
	Duration  string `json:"duration"`
	*pipeline.Result
	Sections []SectionJSON `json:"sections,omitempty"`
}

// SectionJSON is the JSON representation of a single report section.
type SectionJSON struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`            // "ok", "skipped"
	Reason      string `json:"reason,omitempty"`  // why the section was skipped
	Content     string `json:"content,omitempty"` // rendered text
}

// Render writes the terminal report: a header followed by every resolved
// section. Sections whose view is unavailable are listed at the end.
func Render(result *pipeline.Result, sections []string, w io.Writer) error {
	renderMu.Lock()
	defer renderMu.Unlock()

	_, _ = fmt.Fprintf(w, "Riskboard Report\n")
	_, _ = fmt.Fprintf(w, "================\n\n")
	_, _ = fmt.Fprintf(w, "Generated: %s\n", nowFunc().UTC().Format(time.RFC3339))
	_, _ = fmt.Fprintf(w, "Duration:  %s\n\n", result.Duration.Round(time.Microsecond))

	var skipped []string
	for _, name := range ResolveSections(sections) {
		sec := Get(name)
		if err := sec.Analyze(result); err != nil {
			if errors.Is(err, ErrViewNotAvailable) {
				slog.Debug("section skipped", "section", name, "reason", err)
				skipped = append(skipped, name)
				continue
			}
			return fmt.Errorf("section %s: %w", name, err)
		}
		if err := sec.Render(w); err != nil {
			return fmt.Errorf("section %s render: %w", name, err)
		}
	}

	if len(skipped) > 0 {
		_, _ = fmt.Fprintf(w, "Skipped sections (no data): %s\n", strings.Join(skipped, ", "))
	}
	return nil
}

// RenderJSON writes the report as machine-readable JSON.
func RenderJSON(result *pipeline.Result, sections []string, w io.Writer) error {
	renderMu.Lock()
	defer renderMu.Unlock()

	out := ReportJSON{
		Generated: nowFunc().UTC().Format(time.RFC3339),
		Duration:  result.Duration.Round(time.Microsecond).String(),
		Result:    result,
	}

	for _, name := range ResolveSections(sections) {
		sec := Get(name)
		sj := SectionJSON{
			Name:        sec.Name(),
			Description: sec.Description(),
		}

		if err := sec.Analyze(result); err != nil {
			if errors.Is(err, ErrViewNotAvailable) {
				sj.Status = "skipped"
				sj.Reason = err.Error()
				out.Sections = append(out.Sections, sj)
				continue
			}
			return fmt.Errorf("section %s: %w", name, err)
		}

		sj.Status = "ok"
		var buf bytes.Buffer
		if err := sec.Render(&buf); err != nil {
			return fmt.Errorf("section %s render: %w", name, err)
		}
		sj.Content = buf.String()
		out.Sections = append(out.Sections, sj)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("JSON marshal: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// ResolveSections determines which sections to run. If names is empty, all
// registered sections are used. Unknown names are dropped.
func ResolveSections(names []string) []string {
	if len(names) == 0 {
		return List()
	}

	var out []string
	for _, name := range names {
		name = strings.TrimSpace(name)
		if Get(name) != nil {
			out = append(out, name)
		}
	}
	return out
}

// UnknownSections returns the names that do not match a registered section.
func UnknownSections(names []string) []string {
	var out []string
	for _, name := range names {
		if Get(strings.TrimSpace(name)) == nil {
			out = append(out, name)
		}
	}
	return out
}
