// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/davetashner/riskboard/internal/config"
	"github.com/davetashner/riskboard/internal/incident"
	"github.com/davetashner/riskboard/internal/report"
)

// Presets command flags.
var presetsFormat string

// presetsCmd lists the built-in and configured dataset presets.
var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List dataset presets",
	Long: `List the dataset presets available to generate, report and export: the
built-in basic and enriched presets and any declared under presets: in the
repo or global config.`,
	Args: cobra.NoArgs,
	RunE: runPresets,
}

func init() {
	presetsCmd.Flags().StringVarP(&presetsFormat, "format", "f", "text", "output format: text, json")
}

func runPresets(cmd *cobra.Command, _ []string) error {
	if presetsFormat != "text" && presetsFormat != "json" {
		return exitError(ExitInvalidArgs, "riskboard: unsupported presets format %q (supported: text, json)", presetsFormat)
	}

	cfg, err := config.LoadAll(".")
	if err != nil {
		return fail(fmt.Errorf("failed to load config: %w", err))
	}
	presets, err := cfg.AllPresets()
	if err != nil {
		return fail(err)
	}

	w := cmd.OutOrStdout()
	if presetsFormat == "json" {
		data, err := json.MarshalIndent(presets, "", "  ")
		if err != nil {
			return fail(fmt.Errorf("encoding presets: %w", err))
		}
		_, err = fmt.Fprintln(w, string(data))
		return fail(err)
	}

	tbl := report.NewTable(
		report.Column{Header: "Name"},
		report.Column{Header: "Columns"},
		report.Column{Header: "Dates"},
		report.Column{Header: "Description"},
	)
	for _, p := range presets {
		tbl.AddRow(p.Name, presetColumns(p), presetDates(p), p.Description)
	}
	return fail(tbl.Render(w))
}

// presetColumns lists the optional columns a preset adds to the core four.
func presetColumns(p incident.Preset) string {
	var extra []string
	for _, c := range p.Schema().Columns {
		switch c {
		case incident.ColID, incident.ColDate, incident.ColAttackType, incident.ColRiskLevel:
			continue
		}
		extra = append(extra, string(c))
	}
	if len(extra) == 0 {
		return "-"
	}
	return strings.Join(extra, ", ")
}

func presetDates(p incident.Preset) string {
	if p.DefaultDays > 0 {
		return fmt.Sprintf("%s, %dd", p.DateMode, p.DefaultDays)
	}
	return string(p.DateMode)
}
