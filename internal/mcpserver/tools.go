// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/davetashner/riskboard/internal/config"
	"github.com/davetashner/riskboard/internal/filter"
	"github.com/davetashner/riskboard/internal/generator"
	"github.com/davetashner/riskboard/internal/incident"
	"github.com/davetashner/riskboard/internal/output"
	"github.com/davetashner/riskboard/internal/pipeline"
	"github.com/davetashner/riskboard/internal/report"
)

// GenerateInput is the input schema for the generate tool.
type GenerateInput struct {
	Path        string   `json:"path,omitempty" jsonschema:"Directory whose .riskboard.yaml applies (defaults to current directory)"`
	Preset      string   `json:"preset,omitempty" jsonschema:"Dataset preset: basic, enriched, or a configured preset"`
	Seed        *int64   `json:"seed,omitempty" jsonschema:"Random seed (default 42)"`
	Count       *int     `json:"count,omitempty" jsonschema:"Number of incidents to generate (default 100)"`
	Start       string   `json:"start,omitempty" jsonschema:"First date of the window (YYYY-MM-DD)"`
	End         string   `json:"end,omitempty" jsonschema:"Last date of the window (YYYY-MM-DD)"`
	LastDays    *int     `json:"last_days,omitempty" jsonschema:"Use the window of the last N days up to as_of instead of start/end"`
	AsOf        string   `json:"as_of,omitempty" jsonschema:"Reference date for relative windows (YYYY-MM-DD, default today)"`
	RiskLevels  []string `json:"risk_levels,omitempty" jsonschema:"Risk levels to keep: Low, Medium, High (default all)"`
	AttackTypes []string `json:"attack_types,omitempty" jsonschema:"Attack types to keep (default all of the preset)"`
	Since       string   `json:"since,omitempty" jsonschema:"Keep incidents dated on or after this date (YYYY-MM-DD)"`
	Where       string   `json:"where,omitempty" jsonschema:"CEL expression over incident columns, e.g. loss_amount > 20000"`
	Format      string   `json:"format,omitempty" jsonschema:"Output format: json, markdown, csv (default: json)"`
}

// ReportInput is the input schema for the report tool.
type ReportInput struct {
	Path          string   `json:"path,omitempty" jsonschema:"Directory whose .riskboard.yaml applies (defaults to current directory)"`
	Preset        string   `json:"preset,omitempty" jsonschema:"Dataset preset: basic, enriched, or a configured preset"`
	Seed          *int64   `json:"seed,omitempty" jsonschema:"Random seed (default 42)"`
	Count         *int     `json:"count,omitempty" jsonschema:"Number of incidents to generate (default 100)"`
	Start         string   `json:"start,omitempty" jsonschema:"First date of the window (YYYY-MM-DD)"`
	End           string   `json:"end,omitempty" jsonschema:"Last date of the window (YYYY-MM-DD)"`
	LastDays      *int     `json:"last_days,omitempty" jsonschema:"Use the window of the last N days up to as_of instead of start/end"`
	AsOf          string   `json:"as_of,omitempty" jsonschema:"Reference date for relative windows (YYYY-MM-DD, default today)"`
	RiskLevels    []string `json:"risk_levels,omitempty" jsonschema:"Risk levels to keep: Low, Medium, High (default all)"`
	AttackTypes   []string `json:"attack_types,omitempty" jsonschema:"Attack types to keep (default all of the preset)"`
	Since         string   `json:"since,omitempty" jsonschema:"Keep incidents dated on or after this date (YYYY-MM-DD)"`
	Where         string   `json:"where,omitempty" jsonschema:"CEL expression over incident columns, e.g. loss_amount > 20000"`
	Sections      string   `json:"sections,omitempty" jsonschema:"Comma-separated list of report sections to include (default all)"`
	TimelineGroup string   `json:"timeline_group,omitempty" jsonschema:"Column splitting the timeline: risk_level, attack_type, status, device_type"`
}

// PresetsInput is the input schema for the presets tool.
type PresetsInput struct {
	Path string `json:"path,omitempty" jsonschema:"Directory whose .riskboard.yaml applies (defaults to current directory)"`
}

// dataset holds the tool inputs shared by generate and report.
type dataset struct {
	path          string
	preset        string
	seed          *int64
	count         *int
	start, end    string
	lastDays      *int
	asOf          string
	riskLevels    []string
	attacks       []string
	since, where  string
	timelineGroup string
}

func (in GenerateInput) dataset() dataset {
	return dataset{
		path: in.Path, preset: in.Preset, seed: in.Seed, count: in.Count,
		start: in.Start, end: in.End, lastDays: in.LastDays, asOf: in.AsOf,
		riskLevels: in.RiskLevels, attacks: in.AttackTypes, since: in.Since, where: in.Where,
	}
}

func (in ReportInput) dataset() dataset {
	return dataset{
		path: in.Path, preset: in.Preset, seed: in.Seed, count: in.Count,
		start: in.Start, end: in.End, lastDays: in.LastDays, asOf: in.AsOf,
		riskLevels: in.RiskLevels, attacks: in.AttackTypes, since: in.Since, where: in.Where,
		timelineGroup: in.TimelineGroup,
	}
}

// overlay expresses the inputs as a config layered over the directory's.
func (d dataset) overlay() *config.Config {
	return &config.Config{
		Preset: d.preset,
		Seed:   d.seed,
		Count:  d.count,
		Window: config.WindowConfig{Start: d.start, End: d.end, LastDays: d.lastDays},
		Filter: config.FilterConfig{
			RiskLevels:  d.riskLevels,
			AttackTypes: d.attacks,
			Since:       d.since,
			Where:       d.where,
		},
		TimelineGroup: d.timelineGroup,
	}
}

// selection is a generated table and the rows the filter kept.
type selection struct {
	plan  *config.Plan
	table *incident.Table
	view  *incident.View
}

func (d dataset) load() (*config.Config, error) {
	dir, err := ResolveDir(d.path)
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadAll(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func (d dataset) selectRows() (*selection, error) {
	fileCfg, err := d.load()
	if err != nil {
		return nil, err
	}
	cfg := config.Merge(fileCfg, d.overlay())
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	asOf := time.Now()
	if d.asOf != "" {
		asOf, err = incident.ParseDate(d.asOf)
		if err != nil {
			return nil, fmt.Errorf("as_of: %w", err)
		}
	}
	plan, err := cfg.Plan(asOf)
	if err != nil {
		return nil, err
	}

	tbl, err := generator.Generate(plan.Options)
	if err != nil {
		return nil, err
	}
	pred, err := filter.Compile(plan.Criteria)
	if err != nil {
		return nil, err
	}
	view := filter.Apply(tbl, pred)
	slog.Debug("mcp dataset selected", "id", tbl.Info().ID, "rows", tbl.Len(), "matched", view.Len())
	return &selection{plan: plan, table: tbl, view: view}, nil
}

// boolPtr returns a pointer to a bool.
func boolPtr(b bool) *bool { return &b }

func readOnly() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:    true,
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}
}

// registerTools adds all riskboard tools to the MCP server.
func registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate",
		Description: "Generate a reproducible synthetic cybersecurity incident dataset, optionally filtered by risk level, attack type, date or a CEL expression. Returns the incidents as json, markdown or csv.",
		Annotations: readOnly(),
	}, handleGenerate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "report",
		Description: "Build a JSON risk report over a synthetic incident dataset: risk distribution, loss or fix time by attack type, device counts, timeline and summary statistics.",
		Annotations: readOnly(),
	}, handleReport)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "presets",
		Description: "List the dataset presets available for generate and report, including presets declared in the directory's config.",
		Annotations: readOnly(),
	}, handlePresets)
}

func handleGenerate(_ context.Context, _ *mcp.CallToolRequest, input GenerateInput) (*mcp.CallToolResult, any, error) {
	format := "json"
	if input.Format != "" {
		format = input.Format
	}
	formatter, err := output.GetFormatter(format)
	if err != nil {
		return nil, nil, err
	}

	sel, err := input.dataset().selectRows()
	if err != nil {
		return nil, nil, err
	}

	var buf bytes.Buffer
	if err := formatter.Format(sel.view, &buf); err != nil {
		return nil, nil, fmt.Errorf("formatting failed: %w", err)
	}
	return textResult(buf.String()), nil, nil
}

func handleReport(ctx context.Context, _ *mcp.CallToolRequest, input ReportInput) (*mcp.CallToolResult, any, error) {
	var sections []string
	if input.Sections != "" {
		names := splitAndTrim(input.Sections)
		if unknown := report.UnknownSections(names); len(unknown) > 0 {
			return nil, nil, fmt.Errorf("unknown sections: %s (available: %s): %w",
				strings.Join(unknown, ", "), strings.Join(report.List(), ", "), incident.ErrInvalidArgument)
		}
		sections = report.ResolveSections(names)
	}

	sel, err := input.dataset().selectRows()
	if err != nil {
		return nil, nil, err
	}

	p, err := pipeline.New(pipeline.Config{
		TimelineGroup: sel.plan.TimelineGroup,
		Filter:        sel.plan.Criteria.String(),
	})
	if err != nil {
		return nil, nil, err
	}
	result, err := p.Run(ctx, sel.view)
	if err != nil {
		return nil, nil, fmt.Errorf("report failed: %w", err)
	}

	var buf bytes.Buffer
	if err := report.RenderJSON(result, sections, &buf); err != nil {
		return nil, nil, fmt.Errorf("rendering failed: %w", err)
	}
	return textResult(buf.String()), nil, nil
}

func handlePresets(_ context.Context, _ *mcp.CallToolRequest, input PresetsInput) (*mcp.CallToolResult, any, error) {
	cfg, err := dataset{path: input.Path}.load()
	if err != nil {
		return nil, nil, err
	}
	presets, err := cfg.AllPresets()
	if err != nil {
		return nil, nil, err
	}

	data, err := json.MarshalIndent(presets, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("encoding presets: %w", err)
	}
	return textResult(string(data)), nil, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// splitAndTrim splits a comma-separated string and trims whitespace from each element.
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
