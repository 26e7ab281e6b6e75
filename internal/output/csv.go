// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/davetashner/riskboard/internal/incident"
)

func init() {
	RegisterFormatter(NewCSVFormatter())
}

// DefaultCSVFile is the file name export writes when no path is given.
const DefaultCSVFile = "filtered_cybersecurity_data.csv"

// CSVFormatter writes rows as RFC 4180 CSV with a header of column names.
type CSVFormatter struct{}

// Compile-time interface check.
var _ Formatter = (*CSVFormatter)(nil)

// NewCSVFormatter returns a new CSVFormatter.
func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

// Name returns the format name.
func (f *CSVFormatter) Name() string {
	return "csv"
}

// Format writes the header row followed by one line per record. An empty
// selection still produces the header.
func (f *CSVFormatter) Format(rows incident.Rows, w io.Writer) error {
	cols := rows.Info().Schema.Columns

	cw := csv.NewWriter(w)
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = string(c)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	record := make([]string, len(cols))
	for i := range rows.Len() {
		r := rows.At(i)
		for j, c := range cols {
			record[j] = r.Value(c)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", r.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
