// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	riskboardlog "github.com/davetashner/riskboard/internal/log"
)

// Global flag values.
var (
	verbose   bool
	quiet     bool
	noColor   bool
	logFormat string
)

// rootCmd is the base command for riskboard.
var rootCmd = &cobra.Command{
	Use:   "riskboard",
	Short: "Generate and analyze synthetic cybersecurity incident data",
	Long: `Riskboard generates reproducible synthetic cybersecurity incident datasets,
filters them by risk level, attack type, date or a CEL expression, and
reports risk distribution, financial loss, time to fix, device exposure and
incident timelines over the selection.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		format, err := riskboardlog.ParseFormat(logFormat)
		if err != nil {
			return exitError(ExitInvalidArgs, "riskboard: %v", err)
		}
		riskboardlog.Setup(verbose, quiet, format)
		if noColor {
			color.NoColor = true
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log output format: text, json")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
}
