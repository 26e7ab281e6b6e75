// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package aggregate

import (
	"math"
	"sort"

	"github.com/davetashner/riskboard/internal/incident"
)

// ColumnSummary holds descriptive statistics for one numeric column.
type ColumnSummary struct {
	Column incident.Column `json:"column"`
	Count  int             `json:"count"`
	Mean   float64         `json:"mean"`
	Std    float64         `json:"std"` // sample standard deviation; 0 for a single value
	Min    float64         `json:"min"`
	Q1     float64         `json:"p25"`
	Median float64         `json:"p50"`
	Q3     float64         `json:"p75"`
	Max    float64         `json:"max"`
}

// Describe summarizes each numeric column in cols. Non-numeric columns,
// columns outside the schema and columns without any value are left out, so
// empty rows give an empty slice.
func Describe(rows incident.Rows, cols ...incident.Column) []ColumnSummary {
	out := []ColumnSummary{}
	for _, c := range cols {
		if !c.Numeric() || !inSchema(rows, c) || rows.Len() == 0 {
			continue
		}
		vals := make([]float64, 0, rows.Len())
		for i := range rows.Len() {
			if v, ok := rows.At(i).Number(c); ok {
				vals = append(vals, v)
			}
		}
		if len(vals) == 0 {
			continue
		}
		out = append(out, summarize(c, vals))
	}
	return out
}

func summarize(c incident.Column, vals []float64) ColumnSummary {
	sort.Float64s(vals)
	n := float64(len(vals))

	var sum float64
	for _, v := range vals {
		sum += v
	}
	mean := sum / n

	var std float64
	if len(vals) > 1 {
		var ss float64
		for _, v := range vals {
			ss += (v - mean) * (v - mean)
		}
		std = math.Sqrt(ss / (n - 1))
	}

	return ColumnSummary{
		Column: c,
		Count:  len(vals),
		Mean:   mean,
		Std:    std,
		Min:    vals[0],
		Q1:     quantile(vals, 0.25),
		Median: quantile(vals, 0.5),
		Q3:     quantile(vals, 0.75),
		Max:    vals[len(vals)-1],
	}
}

// quantile interpolates linearly between the closest ranks of sorted.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
