// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// newTestCmd redirects the shared rootCmd's output into buffers.
func newTestCmd() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd, stdout, stderr
}

// resetFlags restores cmd's flags and the global flags to their defaults.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Changed = false
		_ = f.Value.Set(f.DefValue)
	}
	cmd.Flags().VisitAll(reset)
	rootCmd.PersistentFlags().VisitAll(reset)
	if h := cmd.Flags().Lookup("help"); h != nil {
		_ = h.Value.Set("false")
	}
}

// isolate runs the test in an empty directory with an empty global config.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	return dir
}

// run executes riskboard with args after resetting the command's flags.
func run(t *testing.T, sub *cobra.Command, args ...string) (string, error) {
	t.Helper()
	resetFlags(sub)
	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs(append(args, "--quiet"))
	err := cmd.Execute()
	return stdout.String(), err
}

// writeFile creates a file (and any necessary parent directories) under dir.
func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// exitCode returns the exit code main would use for err.
func exitCode(t *testing.T, err error) int {
	t.Helper()
	require.Error(t, err)
	var ece *exitCodeError
	if errors.As(err, &ece) {
		return ece.ExitCode()
	}
	return ExitInvalidArgs
}
