// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package incident

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Window is an inclusive range of calendar dates.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow truncates both ends to UTC midnight and rejects an end that
// precedes the start.
func NewWindow(start, end time.Time) (Window, error) {
	w := Window{Start: Day(start), End: Day(end)}
	if w.End.Before(w.Start) {
		return Window{}, fmt.Errorf("window end %s is before start %s: %w",
			w.End.Format(DateLayout), w.Start.Format(DateLayout), ErrInvalidArgument)
	}
	return w, nil
}

// LastNDays returns the window covering the n days up to and including asOf.
// n = 0 collapses the window to asOf alone.
func LastNDays(asOf time.Time, n int) (Window, error) {
	if n < 0 {
		return Window{}, fmt.Errorf("last days must be non-negative, got %d: %w", n, ErrInvalidArgument)
	}
	end := Day(asOf)
	return Window{Start: end.AddDate(0, 0, -n), End: end}, nil
}

// Days returns the number of whole days between Start and End.
func (w Window) Days() int {
	return int(w.End.Sub(w.Start).Hours() / 24)
}

// String renders the window as "start..end".
func (w Window) String() string {
	return w.Start.Format(DateLayout) + ".." + w.End.Format(DateLayout)
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, ErrInvalidArgument)
	}
	return t, nil
}

// Schema describes the columns present in a generated table.
type Schema struct {
	Preset  string   `json:"preset"`
	Columns []Column `json:"columns"`
}

// Has reports whether the schema includes c.
func (s Schema) Has(c Column) bool {
	return slices.Contains(s.Columns, c)
}

// Info is the provenance of a generated dataset.
type Info struct {
	ID     uuid.UUID `json:"id"`
	Seed   int64     `json:"seed"`
	Window Window    `json:"-"`
	Total  int       `json:"total"`
	Schema Schema    `json:"schema"`
}

// datasetNamespace scopes dataset fingerprints.
var datasetNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/davetashner/riskboard/dataset"))

// DatasetID derives a stable identifier from the inputs that fully determine
// a generated table.
func DatasetID(preset string, seed int64, count int, w Window) uuid.UUID {
	key := fmt.Sprintf("%s|%d|%d|%s", preset, seed, count, w)
	return uuid.NewSHA1(datasetNamespace, []byte(key))
}

// Rows is a read-only sequence of records. Both *Table and *View implement it.
type Rows interface {
	Len() int
	At(i int) Record
	Info() Info
}

// Table is an immutable, generated set of incident records.
type Table struct {
	info    Info
	records []Record
}

// NewTable wraps records. The slice is owned by the table afterwards.
func NewTable(info Info, records []Record) *Table {
	info.Total = len(records)
	return &Table{info: info, records: records}
}

// Len returns the number of records.
func (t *Table) Len() int { return len(t.records) }

// At returns the i-th record.
func (t *Table) At(i int) Record { return t.records[i] }

// Info returns the dataset provenance.
func (t *Table) Info() Info { return t.info }

// Select returns a view over the records that satisfy keep. The table is
// not modified.
func (t *Table) Select(keep func(Record) bool) *View {
	idx := make([]int, 0, len(t.records))
	for i := range t.records {
		if keep(t.records[i]) {
			idx = append(idx, i)
		}
	}
	return &View{table: t, index: idx}
}

// View is a subset of a table's rows, addressed by index.
type View struct {
	table *Table
	index []int
}

// Len returns the number of selected records.
func (v *View) Len() int { return len(v.index) }

// At returns the i-th selected record.
func (v *View) At(i int) Record { return v.table.records[v.index[i]] }

// Info returns the parent dataset's provenance.
func (v *View) Info() Info { return v.table.info }

// Collect copies all rows into a slice.
func Collect(rows Rows) []Record {
	out := make([]Record, rows.Len())
	for i := range out {
		out[i] = rows.At(i)
	}
	return out
}
