// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package report

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/riskboard/internal/filter"
	"github.com/davetashner/riskboard/internal/generator"
	"github.com/davetashner/riskboard/internal/incident"
	"github.com/davetashner/riskboard/internal/pipeline"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func freezeTime(t *testing.T) {
	t.Helper()
	old := nowFunc
	nowFunc = func() time.Time { return fixedNow }
	t.Cleanup(func() { nowFunc = old })
}

func buildResult(t *testing.T, p incident.Preset, crit *filter.Criteria) *pipeline.Result {
	t.Helper()
	tbl, err := generator.Generate(generator.Options{
		Seed:   42,
		Count:  100,
		Window: generator.DefaultWindow(p, 100, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)),
		Preset: p,
	})
	require.NoError(t, err)

	s := filter.All(p)
	if crit != nil {
		s = *crit
	}
	pred, err := filter.Compile(s)
	require.NoError(t, err)

	pl, err := pipeline.New(pipeline.Config{Filter: s.String()})
	require.NoError(t, err)
	res, err := pl.Run(context.Background(), filter.Apply(tbl, pred))
	require.NoError(t, err)
	return res
}

func TestRender_Basic(t *testing.T) {
	freezeTime(t)
	res := buildResult(t, incident.Basic(), nil)

	var buf bytes.Buffer
	require.NoError(t, Render(res, nil, &buf))
	out := buf.String()

	assert.Contains(t, out, "Riskboard Report")
	assert.Contains(t, out, "Generated: 2026-03-01T12:00:00Z")
	assert.Contains(t, out, "Risk Level Distribution")
	assert.Contains(t, out, "Financial Loss by Attack Type")
	assert.Contains(t, out, "Incident Timeline by risk_level")
	assert.Contains(t, out, "Summary Statistics")
	assert.NotContains(t, out, "Average Time to Fix")
	assert.Contains(t, out, "Skipped sections (no data): fix-time, device-types, narrative")
}

func TestRender_SelectedSections(t *testing.T) {
	res := buildResult(t, incident.Enriched(), nil)

	var buf bytes.Buffer
	require.NoError(t, Render(res, []string{"fix-time", "bogus", " device-types "}, &buf))
	out := buf.String()

	assert.Contains(t, out, "Average Time to Fix by Attack Type")
	assert.Contains(t, out, "Affected Device Types")
	assert.NotContains(t, out, "Overview")
	assert.NotContains(t, out, "Skipped sections")
}

func TestRender_EmptySelection(t *testing.T) {
	res := buildResult(t, incident.Basic(), &filter.Criteria{})

	var buf bytes.Buffer
	require.NoError(t, Render(res, nil, &buf))
	out := buf.String()

	assert.Contains(t, out, "Matched:  0 of 100 incidents (0.0%)")
	assert.Contains(t, out, "Skipped sections (no data): risk-distribution, loss-by-attack, fix-time, device-types, timeline, summary-statistics, narrative")
}

func TestRenderJSON(t *testing.T) {
	freezeTime(t)
	res := buildResult(t, incident.Enriched(), nil)
	res.Narrative = "Risk is concentrated in low-severity phishing."

	var buf bytes.Buffer
	require.NoError(t, RenderJSON(res, nil, &buf))

	var parsed ReportJSON
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	require.NotNil(t, parsed.Result)
	assert.Equal(t, "2026-03-01T12:00:00Z", parsed.Generated)
	assert.Equal(t, 100, parsed.Matched)
	assert.Equal(t, "enriched", parsed.Info.Schema.Preset)
	assert.Equal(t, res.Info.ID, parsed.Info.ID)
	assert.Equal(t, "2024-05-31..2024-06-30", parsed.Window)
	assert.Equal(t, res.FixTimeByAttack, parsed.FixTimeByAttack)
	assert.Nil(t, parsed.LossByAttack)

	status := make(map[string]string)
	for _, s := range parsed.Sections {
		status[s.Name] = s.Status
		if s.Status == "ok" {
			assert.NotEmpty(t, s.Content, s.Name)
		} else {
			assert.NotEmpty(t, s.Reason, s.Name)
		}
	}
	assert.Equal(t, "skipped", status["loss-by-attack"])
	assert.Equal(t, "ok", status["fix-time"])
	assert.Equal(t, "ok", status["device-types"])
	assert.Equal(t, "ok", status["narrative"])
	assert.Len(t, parsed.Sections, len(List()))
}

func TestRenderJSON_RawFields(t *testing.T) {
	res := buildResult(t, incident.Basic(), nil)

	var buf bytes.Buffer
	require.NoError(t, RenderJSON(res, []string{"overview"}, &buf))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	for _, key := range []string{"generated", "duration", "dataset", "window", "matched", "total", "risk_distribution", "loss_by_attack", "timeline", "summary", "sections"} {
		assert.Contains(t, raw, key)
	}
	assert.NotContains(t, raw, "fix_time_by_attack")
	assert.NotContains(t, raw, "narrative")
}

func TestResolveSections(t *testing.T) {
	assert.Equal(t, List(), ResolveSections(nil))
	assert.Equal(t, []string{"timeline", "overview"}, ResolveSections([]string{"timeline", "nope", "overview"}))
	assert.Empty(t, ResolveSections([]string{"nope"}))
}

func TestUnknownSections(t *testing.T) {
	assert.Equal(t, []string{"nope"}, UnknownSections([]string{"timeline", "nope"}))
	assert.Empty(t, UnknownSections(List()))
}
