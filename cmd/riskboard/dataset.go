// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/davetashner/riskboard/internal/config"
	"github.com/davetashner/riskboard/internal/filter"
	"github.com/davetashner/riskboard/internal/generator"
	"github.com/davetashner/riskboard/internal/incident"
)

// datasetFlags holds the dataset and filter flags shared by generate, report
// and export. Each command owns its own instance.
type datasetFlags struct {
	preset   string
	seed     int64
	count    int
	start    string
	end      string
	lastDays int
	asOf     string

	risk   string
	attack string
	since  string
	where  string
}

func (f *datasetFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.preset, "preset", "", "dataset preset: basic, enriched, or one declared in config (default basic)")
	fs.Int64Var(&f.seed, "seed", generator.DefaultSeed, "random seed")
	fs.IntVar(&f.count, "count", generator.DefaultCount, "number of incidents to generate")
	fs.StringVar(&f.start, "start", "", "first date of the window (YYYY-MM-DD)")
	fs.StringVar(&f.end, "end", "", "last date of the window (YYYY-MM-DD)")
	fs.IntVar(&f.lastDays, "last-days", 0, "use the last N days up to --as-of as the window")
	fs.StringVar(&f.asOf, "as-of", "", "reference date for relative windows (YYYY-MM-DD, default today)")

	fs.StringVar(&f.risk, "risk", "", "comma-separated risk levels to keep; an empty value keeps none (default all)")
	fs.StringVar(&f.attack, "attack", "", "comma-separated attack types to keep; an empty value keeps none (default all)")
	fs.StringVar(&f.since, "since", "", "keep incidents dated on or after this date (YYYY-MM-DD)")
	fs.StringVar(&f.where, "where", "", `CEL expression over incident columns, e.g. "loss_amount > 20000"`)
}

// overlay expresses the flags the user set as a config layered over the
// files. Flags left at their defaults stay unset so config values apply.
func (f *datasetFlags) overlay(fs *pflag.FlagSet) *config.Config {
	over := &config.Config{
		Preset: f.preset,
		Window: config.WindowConfig{Start: f.start, End: f.end},
		Filter: config.FilterConfig{Since: f.since, Where: f.where},
	}
	if fs.Changed("seed") {
		seed := f.seed
		over.Seed = &seed
	}
	if fs.Changed("count") {
		count := f.count
		over.Count = &count
	}
	if fs.Changed("last-days") {
		days := f.lastDays
		over.Window.LastDays = &days
	}
	if fs.Changed("risk") {
		over.Filter.RiskLevels = splitAndTrim(f.risk)
	}
	if fs.Changed("attack") {
		over.Filter.AttackTypes = splitAndTrim(f.attack)
	}
	return over
}

// loadConfig merges the global and repo config with over and validates the
// result.
func loadConfig(over *config.Config) (*config.Config, error) {
	fileCfg, err := config.LoadAll(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg := config.Merge(fileCfg, over)
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// selection is a generated dataset and the rows the filter kept.
type selection struct {
	plan  *config.Plan
	table *incident.Table
	view  *incident.View
}

// selectRows resolves cfg into a plan, generates the dataset and applies
// the filter.
func (f *datasetFlags) selectRows(cfg *config.Config) (*selection, error) {
	asOf := time.Now()
	if f.asOf != "" {
		t, err := incident.ParseDate(f.asOf)
		if err != nil {
			return nil, fmt.Errorf("--as-of: %w", err)
		}
		asOf = t
	}

	plan, err := cfg.Plan(asOf)
	if err != nil {
		return nil, err
	}
	pred, err := filter.Compile(plan.Criteria)
	if err != nil {
		return nil, err
	}

	tbl, err := generator.Generate(plan.Options)
	if err != nil {
		return nil, err
	}
	info := tbl.Info()
	slog.Info("dataset generated", "id", info.ID, "preset", plan.Preset.Name, "rows", tbl.Len(), "window", info.Window)

	view := filter.Apply(tbl, pred)
	slog.Info("filter applied", "criteria", plan.Criteria.String(), "matched", view.Len())
	return &selection{plan: plan, table: tbl, view: view}, nil
}

// openOutput returns the writer for path. An empty path or "-" means the
// command's stdout.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path) //nolint:gosec // user-specified output path
	if err != nil {
		return nil, nil, fmt.Errorf("cannot create output file %q: %w", path, err)
	}
	return f, f.Close, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace from
// each element. The result is never nil, so an empty flag selects nothing.
func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
