// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/davetashner/riskboard/internal/output"
)

// defaultGenerateFormat is used when neither --format nor output_format is set.
const defaultGenerateFormat = "json"

// Generate command flags.
var (
	generateData      datasetFlags
	generateFormat    string
	generateOutput    string
	generateTimestamp bool
)

// generateCmd prints the filtered dataset.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a filtered synthetic incident dataset",
	Long: `Generate a reproducible synthetic incident dataset and print the incidents
that pass the filter.

The same preset, seed, count and window always produce the same incidents.
Flags override .riskboard.yaml, which overrides the global config.

Examples:
  riskboard generate --format markdown
  riskboard generate --preset enriched --last-days 14 --as-of 2024-06-30
  riskboard generate --risk High --attack Phishing,Ransomware
  riskboard generate --where 'loss_amount > 20000 && attack_type != "DDoS"'`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateData.register(generateCmd.Flags())
	generateCmd.Flags().StringVarP(&generateFormat, "format", "f", "",
		fmt.Sprintf("output format: %s (default from config, else %s)", strings.Join(output.FormatNames(), ", "), defaultGenerateFormat))
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "output file path (default: stdout)")
	generateCmd.Flags().BoolVar(&generateTimestamp, "timestamp", false, "add metadata.generated_at to json output")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(generateData.overlay(cmd.Flags()))
	if err != nil {
		return fail(err)
	}

	format := generateFormat
	if format == "" {
		format = cfg.OutputFormat
	}
	if format == "" {
		format = defaultGenerateFormat
	}
	formatter, err := output.GetFormatter(format)
	if err != nil {
		return fail(err)
	}
	if generateTimestamp {
		if format != "json" {
			return exitError(ExitInvalidArgs, "riskboard: --timestamp requires --format json, got %s", format)
		}
		formatter = &output.JSONFormatter{Timestamp: true}
	}

	sel, err := generateData.selectRows(cfg)
	if err != nil {
		return fail(err)
	}

	w, closeOut, err := openOutput(cmd, generateOutput)
	if err != nil {
		return fail(err)
	}
	if err := formatter.Format(sel.view, w); err != nil {
		_ = closeOut()
		return fail(fmt.Errorf("formatting failed: %w", err))
	}
	if err := closeOut(); err != nil {
		return fail(fmt.Errorf("closing output: %w", err))
	}

	slog.Info("generate complete", "format", format, "matched", sel.view.Len(), "total", sel.table.Len())
	return nil
}
