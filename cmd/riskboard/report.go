// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/davetashner/riskboard/internal/narrate"
	"github.com/davetashner/riskboard/internal/pipeline"
	"github.com/davetashner/riskboard/internal/report"
)

// narrateTimeout bounds the executive summary request.
const narrateTimeout = 60 * time.Second

// newNarrator builds the provider for --narrate. Replaced in tests.
var newNarrator = func() (narrate.Provider, error) {
	return narrate.NewAnthropicProvider()
}

// Report command flags.
var (
	reportData          datasetFlags
	reportSections      string
	reportFormat        string
	reportOutput        string
	reportTimelineGroup string
	reportNarrate       bool
)

// reportCmd runs the aggregation pipeline and renders the report.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Report risk views over the filtered dataset",
	Long: `Generate the dataset, apply the filter and report on the selection: risk
level distribution, financial loss or mean time to fix by attack type,
incidents per device type, the incident timeline and summary statistics.

Sections whose columns the preset does not produce are skipped.
--narrate adds an LLM-written executive summary (needs ANTHROPIC_API_KEY).

Examples:
  riskboard report
  riskboard report --preset enriched --timeline-group attack_type
  riskboard report --sections risk-distribution,timeline --format json
  riskboard report --risk High --narrate`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	reportData.register(reportCmd.Flags())
	reportCmd.Flags().StringVar(&reportSections, "sections", "",
		fmt.Sprintf("comma-separated report sections to include (default all: %s)", strings.Join(report.List(), ", ")))
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "text", "output format: text, json")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "output file path (default: stdout)")
	reportCmd.Flags().StringVar(&reportTimelineGroup, "timeline-group", "",
		"column splitting the timeline: risk_level, attack_type, status, device_type (default risk_level)")
	reportCmd.Flags().BoolVar(&reportNarrate, "narrate", false, "add an LLM-written executive summary")
}

func runReport(cmd *cobra.Command, _ []string) error {
	if reportFormat != "text" && reportFormat != "json" {
		return exitError(ExitInvalidArgs, "riskboard: unsupported report format %q (supported: text, json)", reportFormat)
	}

	var sections []string
	if reportSections != "" {
		sections = splitAndTrim(reportSections)
		if unknown := report.UnknownSections(sections); len(unknown) > 0 {
			slog.Warn("ignoring unknown report sections",
				"sections", strings.Join(unknown, ", "), "available", strings.Join(report.List(), ", "))
		}
	}

	over := reportData.overlay(cmd.Flags())
	over.TimelineGroup = reportTimelineGroup
	if cmd.Flags().Changed("narrate") {
		n := reportNarrate
		over.Narrate = &n
	}
	cfg, err := loadConfig(over)
	if err != nil {
		return fail(err)
	}
	sel, err := reportData.selectRows(cfg)
	if err != nil {
		return fail(err)
	}

	p, err := pipeline.New(pipeline.Config{
		TimelineGroup: sel.plan.TimelineGroup,
		Filter:        sel.plan.Criteria.String(),
	})
	if err != nil {
		return fail(err)
	}
	result, err := p.Run(cmd.Context(), sel.view)
	if err != nil {
		return fail(fmt.Errorf("report failed: %w", err))
	}

	if sel.plan.Narrate {
		result.Narrative = narrative(cmd.Context(), result)
	}

	w, closeOut, err := openOutput(cmd, reportOutput)
	if err != nil {
		return fail(err)
	}
	render := report.Render
	if reportFormat == "json" {
		render = report.RenderJSON
	}
	if err := render(result, sections, w); err != nil {
		_ = closeOut()
		return fail(fmt.Errorf("rendering failed: %w", err))
	}
	if err := closeOut(); err != nil {
		return fail(fmt.Errorf("closing output: %w", err))
	}

	slog.Info("report complete", "matched", result.Matched, "total", result.Total, "duration", result.Duration)
	return nil
}

// narrative asks the provider for an executive summary. Failures are logged
// and leave the report without one.
func narrative(ctx context.Context, result *pipeline.Result) string {
	provider, err := newNarrator()
	if err != nil {
		slog.Warn("narrative skipped", "error", err)
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, narrateTimeout)
	defer cancel()

	text, err := narrate.Summarize(ctx, provider, result)
	if err != nil {
		slog.Warn("narrative skipped", "error", err)
		return ""
	}
	return text
}
