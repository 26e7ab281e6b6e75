// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package narrate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/davetashner/riskboard/internal/aggregate"
	"github.com/davetashner/riskboard/internal/incident"
	"github.com/davetashner/riskboard/internal/pipeline"
)

// SystemPrompt frames every narrative request.
const SystemPrompt = `You are a security operations analyst writing for executives.
Summarize the incident statistics you are given in two or three short
paragraphs of plain prose. Call out the riskiest attack types, costly or slow
areas, and any trend over time. Use only the numbers provided. Do not use
headings, bullet points or markdown.`

const (
	maxTokens   = 600
	temperature = 0.2
)

// ErrNoIncidents is returned by Summarize when no incidents matched.
var ErrNoIncidents = errors.New("narrate: no incidents to summarize")

// Summarize asks p for an executive summary of result. Only aggregated views
// are sent, never individual incidents.
func Summarize(ctx context.Context, p Provider, result *pipeline.Result) (string, error) {
	if result.Matched == 0 {
		return "", ErrNoIncidents
	}

	temp := temperature
	start := time.Now()
	resp, err := p.Complete(ctx, Request{
		Prompt:       BuildPrompt(result),
		SystemPrompt: SystemPrompt,
		MaxTokens:    maxTokens,
		Temperature:  &temp,
	})
	if err != nil {
		return "", fmt.Errorf("narrate: %w", err)
	}
	slog.Debug("narrative generated",
		"model", resp.Model,
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens,
		"duration", time.Since(start))
	if resp.Truncated {
		slog.Warn("narrative truncated at token limit", "max_tokens", maxTokens)
	}

	text := strings.TrimSpace(resp.Content)
	if text == "" {
		return "", errors.New("narrate: provider returned an empty summary")
	}
	return text, nil
}

// BuildPrompt renders the views of result as a plain-text brief.
func BuildPrompt(result *pipeline.Result) string {
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	line("Dataset: preset %s, window %s.", result.Info.Schema.Preset, result.Window)
	if result.Filter != "" {
		line("Selection: %s.", result.Filter)
	}
	line("Matched incidents: %d of %d (%.1f%%).", result.Matched, result.Total, result.MatchedPct)

	if len(result.RiskDistribution) > 0 {
		parts := make([]string, len(result.RiskDistribution))
		for i, s := range result.RiskDistribution {
			parts[i] = fmt.Sprintf("%s %d (%.1f%%)", s.Level, s.Count, s.Percent)
		}
		line("Risk levels: %s.", strings.Join(parts, ", "))
	}

	if len(result.LossByAttack) > 0 {
		line("Total financial loss by attack type: %s.", joinByValue(result.LossByAttack, func(v float64) string {
			return "$" + strconv.FormatFloat(v, 'f', 0, 64)
		}))
	}
	if len(result.FixTimeByAttack) > 0 {
		line("Mean time to fix by attack type: %s.", joinByValue(result.FixTimeByAttack, func(v float64) string {
			return strconv.FormatFloat(v, 'f', 1, 64) + "h"
		}))
	}

	if len(result.DeviceTypes) > 0 {
		parts := make([]string, len(result.DeviceTypes))
		for i, c := range result.DeviceTypes {
			parts[i] = fmt.Sprintf("%s %d", c.Category, c.Count)
		}
		line("Incidents by device type: %s.", strings.Join(parts, ", "))
	}

	if trend := describeTimeline(result.Timeline); trend != "" {
		line("Timeline: %s.", trend)
	}

	for _, s := range result.Summary {
		line("%s: mean %.2f, std %.2f, min %.0f, median %.2f, max %.0f.",
			s.Column, s.Mean, s.Std, s.Min, s.Median, s.Max)
	}
	return b.String()
}

// joinByValue lists m largest value first, ties by key.
func joinByValue(m map[string]float64, format func(float64) string) string {
	keys := aggregate.SortedKeys(m)
	sort.SliceStable(keys, func(i, j int) bool { return m[keys[i]] > m[keys[j]] })
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + " " + format(m[k])
	}
	return strings.Join(parts, ", ")
}

// describeTimeline reports the active days, the busiest day, and how the
// first half of the active days compares with the second.
func describeTimeline(points []aggregate.TimelinePoint) string {
	if len(points) == 0 {
		return ""
	}
	var days []time.Time
	perDay := make(map[time.Time]int)
	for _, pt := range points {
		if _, ok := perDay[pt.Date]; !ok {
			days = append(days, pt.Date)
		}
		perDay[pt.Date] += pt.Count
	}

	peak := days[0]
	for _, d := range days[1:] {
		if perDay[d] > perDay[peak] {
			peak = d
		}
	}

	half := len(days) / 2
	var early, late int
	for i, d := range days {
		if i < half {
			early += perDay[d]
		} else {
			late += perDay[d]
		}
	}

	s := fmt.Sprintf("%d active days, busiest %s with %d incidents",
		len(days), peak.Format(incident.DateLayout), perDay[peak])
	if half > 0 {
		s += fmt.Sprintf("; %d incidents in the first half of the period and %d in the second", early, late)
	}
	return s
}
