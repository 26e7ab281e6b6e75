// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootHelp(t *testing.T) {
	out, err := run(t, rootCmd, "--help")
	require.NoError(t, err)

	assert.Contains(t, out, "synthetic cybersecurity incident datasets")
	for _, sub := range []string{"generate", "report", "export", "presets", "config", "mcp", "version"} {
		assert.Contains(t, out, sub)
	}
}

func TestGlobalFlags(t *testing.T) {
	for _, name := range []string{"verbose", "quiet", "no-color", "log-format"} {
		t.Run(name, func(t *testing.T) {
			assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name))
		})
	}
	assert.Equal(t, "v", rootCmd.PersistentFlags().Lookup("verbose").Shorthand)
	assert.Equal(t, "q", rootCmd.PersistentFlags().Lookup("quiet").Shorthand)
}

func TestInvalidLogFormat(t *testing.T) {
	isolate(t)
	_, err := run(t, versionCmd, "version", "--log-format", "xml")
	assert.Equal(t, ExitInvalidArgs, exitCode(t, err))
	assert.Contains(t, err.Error(), "xml")
}

func TestJSONLogFormat(t *testing.T) {
	isolate(t)
	_, err := run(t, versionCmd, "version", "--log-format", "json")
	require.NoError(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, versionCmd, "version")
	require.NoError(t, err)
	assert.Equal(t, "riskboard dev\n", out)
}

func TestUnknownCommand(t *testing.T) {
	_, err := run(t, rootCmd, "frobnicate")
	require.Error(t, err)
}
