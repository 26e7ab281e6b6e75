// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/davetashner/riskboard/internal/filter"
	"github.com/davetashner/riskboard/internal/incident"
	"github.com/davetashner/riskboard/internal/output"
	"github.com/davetashner/riskboard/internal/pipeline"
)

// Validate checks all fields in the config and returns all errors at once,
// wrapped in incident.ErrInvalidArgument.
func Validate(cfg *Config) error {
	var errs []string

	names := make([]string, 0, len(cfg.Presets))
	for name := range cfg.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := cfg.Presets[name].Build(name); err != nil {
			errs = append(errs, fmt.Sprintf("presets.%s: %v", name, err))
		}
	}

	preset, presetErr := cfg.ResolvePreset(cfg.PresetName())
	if cfg.Preset != "" && presetErr != nil {
		errs = append(errs, fmt.Sprintf("preset: %v", presetErr))
	}

	if cfg.Count != nil && *cfg.Count < 0 {
		errs = append(errs, fmt.Sprintf("count: must be non-negative, got %d", *cfg.Count))
	}

	errs = append(errs, validateWindow(cfg.Window)...)

	if cfg.OutputFormat != "" {
		if _, err := output.GetFormatter(cfg.OutputFormat); err != nil {
			errs = append(errs, fmt.Sprintf("output_format: %v", err))
		}
	}

	if cfg.Filter.Since != "" {
		if _, err := incident.ParseDate(cfg.Filter.Since); err != nil {
			errs = append(errs, fmt.Sprintf("filter.since: %v", err))
		}
	}
	if strings.TrimSpace(cfg.Filter.Where) != "" {
		crit := filter.Criteria{Where: cfg.Filter.Where}
		if presetErr == nil {
			crit.Columns = preset.Schema().Columns
		}
		if _, err := filter.Compile(crit); err != nil {
			errs = append(errs, fmt.Sprintf("filter.where: %v", err))
		}
	}

	if cfg.TimelineGroup != "" {
		if _, err := pipeline.New(pipeline.Config{TimelineGroup: incident.Column(cfg.TimelineGroup)}); err != nil {
			errs = append(errs, fmt.Sprintf("timeline_group: %v", err))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Problems: errs}
	}
	return nil
}

// ValidationError lists every problem found in a config. It unwraps to
// incident.ErrInvalidArgument.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "config validation failed:\n  " + strings.Join(e.Problems, "\n  ")
}

func (e *ValidationError) Unwrap() error { return incident.ErrInvalidArgument }

func validateWindow(w WindowConfig) []string {
	var errs []string
	var start, end string
	if w.Start != "" {
		if _, err := incident.ParseDate(w.Start); err != nil {
			errs = append(errs, fmt.Sprintf("window.start: %v", err))
		} else {
			start = w.Start
		}
	}
	if w.End != "" {
		if _, err := incident.ParseDate(w.End); err != nil {
			errs = append(errs, fmt.Sprintf("window.end: %v", err))
		} else {
			end = w.End
		}
	}
	if start != "" && end != "" && end < start {
		errs = append(errs, fmt.Sprintf("window: end %s is before start %s", end, start))
	}
	if w.LastDays != nil {
		if *w.LastDays < 0 {
			errs = append(errs, fmt.Sprintf("window.last_days: must be non-negative, got %d", *w.LastDays))
		}
		if w.Start != "" || w.End != "" {
			errs = append(errs, "window: last_days cannot be combined with start or end")
		}
	}
	return errs
}
