// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPCmd_Registered(t *testing.T) {
	var found bool
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "mcp" {
			found = true
		}
	}
	require.True(t, found, "mcp command should be registered on root")

	serve, _, err := rootCmd.Find([]string{"mcp", "serve"})
	require.NoError(t, err)
	assert.Equal(t, "serve", serve.Name())
	assert.NotNil(t, serve.RunE)
}

func TestMCPServeHelp(t *testing.T) {
	out, err := run(t, mcpServeCmd, "mcp", "serve", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "generate")
	assert.Contains(t, out, "report")
	assert.Contains(t, out, "presets")
}
