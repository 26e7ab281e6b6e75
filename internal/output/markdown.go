// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/davetashner/riskboard/internal/incident"
)

func init() {
	RegisterFormatter(NewMarkdownFormatter())
}

// MarkdownFormatter writes rows as a GitHub-flavored Markdown pipe table.
type MarkdownFormatter struct{}

// Compile-time interface check.
var _ Formatter = (*MarkdownFormatter)(nil)

// NewMarkdownFormatter returns a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Name returns the format name.
func (m *MarkdownFormatter) Name() string {
	return "markdown"
}

// Format writes a heading, a one-line dataset summary and the table.
// Numeric columns are right-aligned.
func (m *MarkdownFormatter) Format(rows incident.Rows, w io.Writer) error {
	info := rows.Info()
	cols := info.Schema.Columns

	if _, err := fmt.Fprintf(w, "# Incidents\n\n"); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	_, _ = fmt.Fprintf(w, "**%d of %d incidents** | preset `%s` | seed %d | %s\n\n",
		rows.Len(), info.Total, info.Schema.Preset, info.Seed, info.Window)

	if rows.Len() == 0 {
		_, err := fmt.Fprintf(w, "_No incidents match the filter._\n")
		return err
	}

	header := make([]string, len(cols))
	align := make([]string, len(cols))
	for i, c := range cols {
		header[i] = string(c)
		align[i] = "---"
		if c.Numeric() {
			align[i] = "---:"
		}
	}
	if err := writeRow(w, header); err != nil {
		return err
	}
	if err := writeRow(w, align); err != nil {
		return err
	}

	cells := make([]string, len(cols))
	for i := range rows.Len() {
		r := rows.At(i)
		for j, c := range cols {
			cells[j] = escapeCell(r.Value(c))
		}
		if err := writeRow(w, cells); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(w io.Writer, cells []string) error {
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(cells, " | ")); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// escapeCell keeps custom vocabulary values from breaking the table.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
