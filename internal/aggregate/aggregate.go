// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

// Package aggregate derives reporting views from incident rows. Every
// function is pure and total: empty input yields empty output, never an
// error. Columns outside the rows' schema are treated like empty input.
package aggregate

import (
	"sort"
	"time"

	"github.com/davetashner/riskboard/internal/incident"
)

// Count is one entry of a frequency table.
type Count struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// CountBy returns the frequency of each distinct value of col, most frequent
// first. Ties keep the order in which categories first appear in rows.
func CountBy(rows incident.Rows, col incident.Column) []Count {
	if !inSchema(rows, col) {
		return []Count{}
	}
	index := make(map[string]int)
	var out []Count
	for i := range rows.Len() {
		v := rows.At(i).Value(col)
		if j, ok := index[v]; ok {
			out[j].Count++
			continue
		}
		index[v] = len(out)
		out = append(out, Count{Category: v, Count: 1})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if out == nil {
		out = []Count{}
	}
	return out
}

// SumBy totals value per distinct group. Groups with no rows have no key.
func SumBy(rows incident.Rows, group, value incident.Column) map[string]float64 {
	out := make(map[string]float64)
	if !inSchema(rows, group, value) {
		return out
	}
	for i := range rows.Len() {
		r := rows.At(i)
		v, ok := r.Number(value)
		if !ok {
			continue
		}
		out[r.Value(group)] += v
	}
	return out
}

// MeanBy averages value per distinct group. Groups with no numeric values
// have no key.
func MeanBy(rows incident.Rows, group, value incident.Column) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	if !inSchema(rows, group, value) {
		return map[string]float64{}
	}
	for i := range rows.Len() {
		r := rows.At(i)
		v, ok := r.Number(value)
		if !ok {
			continue
		}
		g := r.Value(group)
		sums[g] += v
		counts[g]++
	}
	out := make(map[string]float64, len(sums))
	for g, s := range sums {
		out[g] = s / float64(counts[g])
	}
	return out
}

// TimelinePoint counts records of one group on one calendar date.
type TimelinePoint struct {
	Date  time.Time `json:"date"`
	Group string    `json:"group"`
	Count int       `json:"count"`
}

// Timeline buckets rows by calendar date and group. Only (date, group) pairs
// that occur are returned, ordered by date then group.
func Timeline(rows incident.Rows, group incident.Column) []TimelinePoint {
	type key struct {
		day   time.Time
		group string
	}
	counts := make(map[key]int)
	if !inSchema(rows, group) {
		return []TimelinePoint{}
	}
	for i := range rows.Len() {
		r := rows.At(i)
		counts[key{day: incident.Day(r.Date), group: r.Value(group)}]++
	}

	out := make([]TimelinePoint, 0, len(counts))
	for k, n := range counts {
		out = append(out, TimelinePoint{Date: k.day, Group: k.group, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Group < out[j].Group
	})
	return out
}

// inSchema reports whether every col is a column of rows. A record renders
// and measures every column, so values of absent columns are zero values
// that must not reach a view.
func inSchema(rows incident.Rows, cols ...incident.Column) bool {
	schema := rows.Info().Schema
	for _, c := range cols {
		if !schema.Has(c) {
			return false
		}
	}
	return true
}

// Percentage returns part as a percentage of whole, or 0 when whole is 0.
func Percentage(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
