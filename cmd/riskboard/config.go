// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/davetashner/riskboard/internal/config"
)

// Config command flags.
var configGlobal bool

// configCmd is the parent command for config subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and modify riskboard configuration",
	Long: `View and modify riskboard configuration.

Riskboard reads configuration from .riskboard.yaml (or .riskboard.toml) in
the current directory. A global config at ~/.config/riskboard/config.yaml
provides defaults. Repo-level settings override global settings, and flags
override both.

Note: config set does a YAML round-trip and will not preserve comments.
If you need to keep comments, edit the file directly.`,
}

// configGetCmd retrieves a configuration value by dot-notation key path.
var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a configuration value by dot-notation key path.

Examples:
  riskboard config get preset
  riskboard config get window.last_days
  riskboard config get filter
  riskboard config get presets.weekly.risk_weights.High
  riskboard config get --global narrate`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

// configSetCmd sets a configuration value.
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the config file.

Values are auto-detected as bool, int, float, list ([a, b]) or string.
By default, writes to .riskboard.yaml in the current directory.
Use --global to write to ~/.config/riskboard/config.yaml.

Note: This does a YAML round-trip and will not preserve comments.

Examples:
  riskboard config set preset enriched
  riskboard config set seed 7
  riskboard config set window.last_days 14
  riskboard config set filter.risk_levels "[High, Medium]"
  riskboard config set presets.weekly.base enriched
  riskboard config set --global narrate true`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

// configListCmd lists all configuration values with their source.
var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration values",
	Long: `List all configuration values with their source annotation.

Shows every set configuration value, annotated with whether it comes
from the repo config (.riskboard.yaml) or global config
(~/.config/riskboard/config.yaml). Repo values override global values.`,
	Args: cobra.NoArgs,
	RunE: runConfigList,
}

func init() {
	configGetCmd.Flags().BoolVar(&configGlobal, "global", false, "use global config (~/.config/riskboard/config.yaml)")
	configSetCmd.Flags().BoolVar(&configGlobal, "global", false, "write to global config (~/.config/riskboard/config.yaml)")

	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	keyPath := args[0]

	globalCfg, err := config.LoadGlobal()
	if err != nil {
		return fail(fmt.Errorf("loading global config: %w", err))
	}
	cfg := globalCfg
	if !configGlobal {
		repoCfg, err := config.Load(".")
		if err != nil {
			return fail(fmt.Errorf("loading repo config: %w", err))
		}
		cfg = config.Merge(globalCfg, repoCfg)
	}

	val, err := config.GetValue(cfg, keyPath)
	if err != nil {
		return exitError(ExitInvalidArgs, "riskboard: %v", err)
	}
	return fail(printValue(cmd, val))
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	keyPath := args[0]
	rawValue := args[1]

	if err := config.ValidateKeyPath(keyPath); err != nil {
		return exitError(ExitInvalidArgs, "riskboard: %v", err)
	}

	targetPath := filepath.Join(".", config.FileName)
	if configGlobal {
		targetPath = config.GlobalConfigPath()
	}

	data, err := config.LoadRaw(targetPath)
	if err != nil {
		return fail(fmt.Errorf("loading config file: %w", err))
	}
	if err := config.SetValue(data, keyPath, rawValue); err != nil {
		return exitError(ExitInvalidArgs, "riskboard: setting value: %v", err)
	}

	// Round-trip validate: unmarshal to Config and validate.
	roundTrip, err := yaml.Marshal(data)
	if err != nil {
		return fail(fmt.Errorf("marshaling config: %w", err))
	}
	var validCfg config.Config
	if err := yaml.Unmarshal(roundTrip, &validCfg); err != nil {
		return exitError(ExitInvalidArgs, "riskboard: invalid config after set: %v", err)
	}
	if err := config.Validate(&validCfg); err != nil {
		return fail(err)
	}

	if err := config.WriteFile(targetPath, data); err != nil {
		return fail(fmt.Errorf("writing config: %w", err))
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", keyPath, rawValue)
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()

	globalCfg, err := config.LoadGlobal()
	if err != nil {
		return fail(fmt.Errorf("loading global config: %w", err))
	}
	repoCfg, err := config.Load(".")
	if err != nil {
		return fail(fmt.Errorf("loading repo config: %w", err))
	}

	globalMap, err := configToFlatMap(globalCfg)
	if err != nil {
		return fail(err)
	}
	repoMap, err := configToFlatMap(repoCfg)
	if err != nil {
		return fail(err)
	}

	type entry struct {
		value  any
		source string
	}
	seen := make(map[string]entry)
	for k, v := range globalMap {
		seen[k] = entry{value: v, source: "global"}
	}
	for k, v := range repoMap {
		seen[k] = entry{value: v, source: "repo"}
	}

	if len(seen) == 0 {
		_, _ = fmt.Fprintln(w, "No configuration set.")
		_, _ = fmt.Fprintln(w, "Run 'riskboard config set <key> <value>' to set values.")
		return nil
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	globalColor := color.New(color.FgCyan)
	repoColor := color.New(color.FgGreen)
	for _, k := range keys {
		e := seen[k]
		_, _ = fmt.Fprintf(w, "%s = %v %s\n", k, e.value, formatSource(e.source, globalColor, repoColor))
	}
	return nil
}

// printValue outputs a value: scalars as plain text, maps/slices as YAML.
func printValue(cmd *cobra.Command, val any) error {
	switch v := val.(type) {
	case map[string]any, []any:
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(cmd.OutOrStdout(), string(data))
	default:
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), v)
	}
	return nil
}

// configToFlatMap converts a Config to a flat dot-notation map, omitting
// unset values.
func configToFlatMap(cfg *config.Config) (map[string]any, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m == nil {
		return map[string]any{}, nil
	}
	return config.FlattenMap(m, ""), nil
}

// formatSource returns a colorized source annotation.
func formatSource(source string, globalColor, repoColor *color.Color) string {
	switch source {
	case "global":
		return globalColor.Sprintf("(global)")
	case "repo":
		return repoColor.Sprintf("(repo)")
	default:
		return fmt.Sprintf("(%s)", source)
	}
}
