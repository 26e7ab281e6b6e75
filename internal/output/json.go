// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/davetashner/riskboard/internal/incident"
)

func init() {
	RegisterFormatter(NewJSONFormatter())
}

// JSONEnvelope is the decoded form of the JSON output format: records with a
// metadata envelope. Decoding loses the column order of each record object.
type JSONEnvelope struct {
	Records  []map[string]any `json:"records"`
	Metadata JSONMetadata     `json:"metadata"`
}

// jsonEnvelope is the encoded form of JSONEnvelope.
type jsonEnvelope struct {
	Records  []jsonRecord `json:"records"`
	Metadata JSONMetadata `json:"metadata"`
}

// JSONMetadata describes the dataset the records were selected from.
type JSONMetadata struct {
	DatasetID   string            `json:"dataset_id"`
	Preset      string            `json:"preset"`
	Seed        int64             `json:"seed"`
	Window      string            `json:"window"`
	Columns     []incident.Column `json:"columns"`
	TotalCount  int               `json:"total_count"`
	Matched     int               `json:"matched"`
	GeneratedAt string            `json:"generated_at,omitempty"`
}

// JSONFormatter writes records as a JSON object with metadata envelope.
type JSONFormatter struct {
	// Compact controls whether output is compact (single line) or pretty-printed.
	// When false (default), output is indented with two spaces.
	Compact bool

	// Timestamp adds metadata.generated_at. Without it the same rows always
	// encode to the same bytes.
	Timestamp bool

	// nowFunc is used for testing to override the current time.
	nowFunc func() time.Time
}

// Compile-time interface check.
var _ Formatter = (*JSONFormatter)(nil)

// NewJSONFormatter returns a new JSONFormatter with default settings.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format writes every row as an object whose keys follow the schema's column
// order. Numeric columns are JSON numbers; dates are YYYY-MM-DD strings.
func (f *JSONFormatter) Format(rows incident.Rows, w io.Writer) error {
	info := rows.Info()
	cols := info.Schema.Columns

	records := make([]jsonRecord, rows.Len())
	for i := range records {
		records[i] = jsonRecord{rec: rows.At(i), cols: cols}
	}

	envelope := jsonEnvelope{
		Records: records,
		Metadata: JSONMetadata{
			DatasetID:  info.ID.String(),
			Preset:     info.Schema.Preset,
			Seed:       info.Seed,
			Window:     info.Window.String(),
			Columns:    cols,
			TotalCount: info.Total,
			Matched:    rows.Len(),
		},
	}
	if f.Timestamp {
		now := time.Now()
		if f.nowFunc != nil {
			now = f.nowFunc()
		}
		envelope.Metadata.GeneratedAt = now.UTC().Format(time.RFC3339)
	}

	var data []byte
	var err error
	if f.shouldCompact(w) {
		data, err = json.Marshal(envelope)
	} else {
		data, err = json.MarshalIndent(envelope, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		return fmt.Errorf("write json trailing newline: %w", err)
	}
	return nil
}

// jsonRecord encodes one record as an object with keys in column order.
type jsonRecord struct {
	rec  incident.Record
	cols []incident.Column
}

func (j jsonRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range j.cols {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(c))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		var val any = j.rec.Value(c)
		if n, ok := j.rec.Number(c); ok {
			val = int64(n)
		}
		data, err := json.Marshal(val)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", c, err)
		}
		buf.Write(data)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// shouldCompact determines whether to use compact mode. An explicit Compact
// wins; otherwise terminals get pretty output and pipes or files compact.
func (f *JSONFormatter) shouldCompact(w io.Writer) bool {
	if f.Compact {
		return true
	}
	if file, ok := w.(*os.File); ok {
		fi, err := file.Stat()
		if err != nil {
			return false
		}
		return fi.Mode()&os.ModeCharDevice == 0
	}
	// For non-file writers (e.g., bytes.Buffer in tests), default to pretty.
	return false
}
