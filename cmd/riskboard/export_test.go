// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/riskboard/internal/output"
)

func readCSV(t *testing.T, data string) [][]string {
	t.Helper()
	records, err := csv.NewReader(strings.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestExport_DefaultFile(t *testing.T) {
	dir := isolate(t)
	out, err := run(t, exportCmd, "export", "--risk", "High")
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(filepath.Join(dir, "filtered_cybersecurity_data.csv"))
	require.NoError(t, err)
	records := readCSV(t, string(data))
	require.NotEmpty(t, records)
	assert.Equal(t, []string{"id", "date", "attack_type", "risk_level", "loss_amount"}, records[0])
	for _, r := range records[1:] {
		assert.Equal(t, "High", r[3])
	}
}

func TestExport_Stdout(t *testing.T) {
	isolate(t)
	out, err := run(t, exportCmd, "export", "--preset", "enriched", "--count", "10", "--as-of", "2024-06-30", "-o", "-")
	require.NoError(t, err)

	records := readCSV(t, out)
	require.Len(t, records, 11)
	assert.Equal(t,
		[]string{"id", "date", "attack_type", "risk_level", "status", "device_type", "time_to_fix_hours"},
		records[0])
	_, err = os.Stat(output.DefaultCSVFile)
	assert.True(t, os.IsNotExist(err), "stdout export must not create %s", output.DefaultCSVFile)
}

func TestExport_EmptySelectionKeepsHeader(t *testing.T) {
	isolate(t)
	out, err := run(t, exportCmd, "export", "--attack", "", "-o", "-")
	require.NoError(t, err)
	assert.Equal(t, "id,date,attack_type,risk_level,loss_amount\n", out)
}

func TestExport_MatchesGenerateCSV(t *testing.T) {
	isolate(t)
	exported, err := run(t, exportCmd, "export", "--seed", "3", "-o", "-")
	require.NoError(t, err)
	generated, err := run(t, generateCmd, "generate", "--seed", "3", "--format", "csv")
	require.NoError(t, err)
	assert.Equal(t, generated, exported)
}

func TestExport_InvalidFilter(t *testing.T) {
	isolate(t)
	_, err := run(t, exportCmd, "export", "--since", "01/02/2024")
	assert.Equal(t, ExitInvalidArgs, exitCode(t, err))
}
