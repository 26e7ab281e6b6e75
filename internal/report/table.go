// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// Alignment controls how a column's content is justified.
type Alignment int

const (
	// AlignLeft pads on the right (default).
	AlignLeft Alignment = iota
	// AlignRight pads on the left.
	AlignRight
)

// ColorFunc maps a cell value to a colored string. If nil, no color is applied.
type ColorFunc func(value string) string

// Column describes a single table column.
type Column struct {
	Header string
	Align  Alignment
	Color  ColorFunc // optional per-cell color function
}

// Table renders aligned text tables to an io.Writer.
type Table struct {
	columns []Column
	rows    [][]string
	footer  []string
}

// NewTable creates a table with the given column definitions.
func NewTable(columns ...Column) *Table {
	return &Table{columns: columns}
}

// AddRow appends a row. Values beyond the column count are ignored;
// missing values render empty.
func (t *Table) AddRow(values ...string) {
	t.rows = append(t.rows, t.fit(values))
}

// SetFooter sets a bold totals row rendered below a second separator.
func (t *Table) SetFooter(values ...string) {
	t.footer = t.fit(values)
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

func (t *Table) fit(values []string) []string {
	row := make([]string, len(t.columns))
	copy(row, values)
	return row
}

// Render writes the table to w with computed column widths.
func (t *Table) Render(w io.Writer) error {
	if len(t.columns) == 0 {
		return nil
	}

	widths := make([]int, len(t.columns))
	for i, col := range t.columns {
		widths[i] = utf8.RuneCountInString(col.Header)
	}
	for _, row := range append(t.rows, t.footer) {
		for i, cell := range row {
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
	}

	bold := color.New(color.Bold)
	headers := make([]string, len(t.columns))
	for i, col := range t.columns {
		headers[i] = col.Header
	}
	if err := t.renderLine(w, headers, widths, bold.Sprint, false); err != nil {
		return err
	}
	if err := t.renderSeparator(w, widths); err != nil {
		return err
	}
	for _, row := range t.rows {
		if err := t.renderLine(w, row, widths, nil, true); err != nil {
			return err
		}
	}
	if t.footer != nil {
		if err := t.renderSeparator(w, widths); err != nil {
			return err
		}
		if err := t.renderLine(w, t.footer, widths, bold.Sprint, false); err != nil {
			return err
		}
	}
	return nil
}

func (t *Table) renderSeparator(w io.Writer, widths []int) error {
	parts := make([]string, len(widths))
	for i, width := range widths {
		parts[i] = strings.Repeat("-", width)
	}
	if _, err := fmt.Fprintf(w, "  %s\n", strings.Join(parts, "  ")); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}

// renderLine pads each cell to its column width. Padding is computed from
// the raw value so ANSI sequences do not skew alignment.
func (t *Table) renderLine(w io.Writer, values []string, widths []int, style func(...any) string, cellColor bool) error {
	parts := make([]string, len(t.columns))
	for i, col := range t.columns {
		val := values[i]
		display := val
		switch {
		case style != nil:
			display = style(val)
		case cellColor && col.Color != nil:
			display = col.Color(val)
		}
		pad := strings.Repeat(" ", max(widths[i]-utf8.RuneCountInString(val), 0))
		if col.Align == AlignRight {
			parts[i] = pad + display
		} else {
			parts[i] = display + pad
		}
	}
	line := strings.TrimRight(strings.Join(parts, "  "), " ")
	if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}
