// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/davetashner/riskboard/internal/output"
)

// Export command flags.
var (
	exportData   datasetFlags
	exportOutput string
)

// exportCmd writes the filtered dataset as CSV.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the filtered dataset as CSV",
	Long: `Export the incidents that pass the filter as CSV, one row per incident with a
header of column names. An empty selection still writes the header. Without
-o the file is filtered_cybersecurity_data.csv in the current directory.

Examples:
  riskboard export
  riskboard export --risk High -o high_risk.csv
  riskboard export --preset enriched -o -`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportData.register(exportCmd.Flags())
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", output.DefaultCSVFile, `output file path ("-" for stdout)`)
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(exportData.overlay(cmd.Flags()))
	if err != nil {
		return fail(err)
	}
	sel, err := exportData.selectRows(cfg)
	if err != nil {
		return fail(err)
	}

	formatter, err := output.GetFormatter("csv")
	if err != nil {
		return fail(err)
	}
	w, closeOut, err := openOutput(cmd, exportOutput)
	if err != nil {
		return fail(err)
	}
	if err := formatter.Format(sel.view, w); err != nil {
		_ = closeOut()
		return fail(fmt.Errorf("export failed: %w", err))
	}
	if err := closeOut(); err != nil {
		return fail(fmt.Errorf("closing output: %w", err))
	}

	if exportOutput != "-" {
		slog.Info("export complete", "path", exportOutput, "rows", sel.view.Len())
	}
	return nil
}
