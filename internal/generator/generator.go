// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

// Package generator produces reproducible synthetic incident tables.
package generator

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/davetashner/riskboard/internal/incident"
)

const (
	// DefaultCount is the number of records generated when none is requested.
	DefaultCount = 100

	// DefaultSeed is used when the caller does not choose a seed.
	DefaultSeed int64 = 42
)

// Options fully determine a generated table.
type Options struct {
	Seed   int64
	Count  int
	Window incident.Window
	Preset incident.Preset
}

// Generate builds a table of opts.Count records. The same options always
// produce the same records in the same order.
func Generate(opts Options) (*incident.Table, error) {
	if opts.Count < 0 {
		return nil, fmt.Errorf("generate: count must be non-negative, got %d: %w", opts.Count, incident.ErrInvalidArgument)
	}
	win, err := incident.NewWindow(opts.Window.Start, opts.Window.End)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	if err := opts.Preset.Validate(); err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	p := opts.Preset
	s := newSampler(opts.Seed, p)
	span := win.Days() + 1

	records := make([]incident.Record, opts.Count)
	for i := range records {
		r := incident.Record{
			ID:         i + 1,
			RiskLevel:  s.risk(),
			AttackType: s.pick(p.AttackTypes),
		}
		if len(p.Statuses) > 0 {
			r.Status = s.pick(p.Statuses)
		}
		if len(p.DeviceTypes) > 0 {
			r.DeviceType = s.pick(p.DeviceTypes)
		}
		if p.LossAmount != nil {
			r.LossAmount = s.between(*p.LossAmount)
		}
		if p.FixHours != nil {
			r.TimeToFixHours = s.between(*p.FixHours)
		}

		offset := i % span
		if p.DateMode == incident.DateRandom {
			offset = s.rng.IntN(span)
		}
		r.Date = win.Start.AddDate(0, 0, offset)

		records[i] = r
	}

	if p.SortByDate {
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Date.Before(records[j].Date)
		})
	}

	info := incident.Info{
		ID:     incident.DatasetID(p.Name, opts.Seed, opts.Count, win),
		Seed:   opts.Seed,
		Window: win,
		Schema: p.Schema(),
	}
	return incident.NewTable(info, records), nil
}

// DefaultStart anchors windows for presets without a default length.
var DefaultStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// DefaultWindow returns the window a preset uses when the caller gives none.
// Presets with DefaultDays cover that many days up to asOf; the rest start
// at DefaultStart with one day per record.
func DefaultWindow(p incident.Preset, count int, asOf time.Time) incident.Window {
	if p.DefaultDays > 0 {
		end := incident.Day(asOf)
		return incident.Window{Start: end.AddDate(0, 0, -p.DefaultDays), End: end}
	}
	days := max(count-1, 0)
	return incident.Window{Start: DefaultStart, End: DefaultStart.AddDate(0, 0, days)}
}

// sampler draws values from a single seeded source.
type sampler struct {
	rng     *rand.Rand
	levels  []incident.RiskLevel
	cumul   []float64
	weights float64
}

func newSampler(seed int64, p incident.Preset) *sampler {
	s := &sampler{
		rng: rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)),
	}
	for _, w := range p.RiskWeights {
		s.weights += w.Weight
		s.levels = append(s.levels, w.Level)
		s.cumul = append(s.cumul, s.weights)
	}
	return s
}

func (s *sampler) risk() incident.RiskLevel {
	x := s.rng.Float64() * s.weights
	for i, c := range s.cumul {
		if x < c {
			return s.levels[i]
		}
	}
	return s.levels[len(s.levels)-1]
}

func (s *sampler) pick(vocab []string) string {
	return vocab[s.rng.IntN(len(vocab))]
}

func (s *sampler) between(r incident.IntRange) int {
	return r.Min + s.rng.IntN(r.Max-r.Min)
}
