// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/davetashner/riskboard/internal/incident"
)

// GetValue retrieves a value from a Config by dot-notation key path.
// It returns scalar values as-is, and maps/slices for intermediate nodes.
func GetValue(cfg *Config, keyPath string) (any, error) {
	m, err := configToMap(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return navigateMap(m, keyPath)
}

// SetValue sets a value in a raw YAML map by dot-notation key path,
// creating intermediate maps as needed.
func SetValue(data map[string]any, keyPath string, rawValue string) error {
	parts := strings.Split(keyPath, ".")
	if keyPath == "" {
		return fmt.Errorf("empty key path")
	}

	current := data
	for _, part := range parts[:len(parts)-1] {
		child, ok := current[part]
		if !ok {
			next := make(map[string]any)
			current[part] = next
			current = next
			continue
		}
		next, ok := child.(map[string]any)
		if !ok {
			return fmt.Errorf("key %q is not a map", part)
		}
		current = next
	}

	current[parts[len(parts)-1]] = coerceValue(rawValue)
	return nil
}

// FlattenMap recursively flattens a nested map to dot-notation keys.
func FlattenMap(m map[string]any, prefix string) map[string]any {
	result := make(map[string]any)
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := v.(map[string]any); ok {
			for sk, sv := range FlattenMap(sub, key) {
				result[sk] = sv
			}
		} else {
			result[key] = v
		}
	}
	return result
}

// nested maps top-level block keys to the struct describing their fields.
var nested = map[string]reflect.Type{
	"window": reflect.TypeOf(WindowConfig{}),
	"filter": reflect.TypeOf(FilterConfig{}),
}

// ValidateKeyPath checks that a dot-notation key path corresponds to a valid
// Config field. It uses yaml struct tags to build the valid key set.
func ValidateKeyPath(keyPath string) error {
	if keyPath == "" {
		return fmt.Errorf("empty key path")
	}
	parts := strings.Split(keyPath, ".")

	topKeys := yamlKeys(reflect.TypeOf(Config{}))
	first := parts[0]
	if !topKeys[first] {
		return fmt.Errorf("unknown key %q; valid top-level keys: %s", first, sortedKeys(topKeys))
	}

	if t, ok := nested[first]; ok {
		if len(parts) == 1 {
			return nil // setting the whole block
		}
		if len(parts) > 2 {
			return fmt.Errorf("key path too deep: %q", keyPath)
		}
		fields := yamlKeys(t)
		if !fields[parts[1]] {
			return fmt.Errorf("unknown %s field %q; valid fields: %s", first, parts[1], sortedKeys(fields))
		}
		return nil
	}

	if first != "presets" {
		if len(parts) > 1 {
			return fmt.Errorf("key %q is a scalar; cannot use sub-keys", first)
		}
		return nil
	}

	// presets.<name>[.<field>[.<sub>]]
	if len(parts) < 2 || parts[1] == "" {
		return fmt.Errorf("presets requires a preset name (e.g. presets.retail)")
	}
	if len(parts) == 2 {
		return nil
	}
	fields := yamlKeys(reflect.TypeOf(PresetConfig{}))
	field := parts[2]
	if !fields[field] {
		return fmt.Errorf("unknown preset field %q; valid fields: %s", field, sortedKeys(fields))
	}
	if len(parts) == 3 {
		return nil
	}
	if len(parts) > 4 {
		return fmt.Errorf("key path too deep: %q", keyPath)
	}
	switch field {
	case "loss_amount", "time_to_fix_hours":
		rangeKeys := yamlKeys(reflect.TypeOf(incident.IntRange{}))
		if !rangeKeys[parts[3]] {
			return fmt.Errorf("unknown range field %q; valid fields: %s", parts[3], sortedKeys(rangeKeys))
		}
	case "risk_weights":
		if _, err := incident.ParseRiskLevel(parts[3]); err != nil {
			return fmt.Errorf("risk_weights: %w", err)
		}
	default:
		return fmt.Errorf("key %q is a scalar; cannot use sub-keys", field)
	}
	return nil
}

// configToMap marshals a Config to a map via YAML round-trip.
func configToMap(cfg *Config) (map[string]any, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = make(map[string]any)
	}
	return m, nil
}

// navigateMap traverses a nested map using a dot-notation key path.
func navigateMap(m map[string]any, keyPath string) (any, error) {
	parts := strings.Split(keyPath, ".")
	var current any = m
	for _, part := range parts {
		cm, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("key %q: parent is not a map", part)
		}
		val, exists := cm[part]
		if !exists {
			return nil, fmt.Errorf("key %q not found", keyPath)
		}
		current = val
	}
	return current, nil
}

// coerceValue parses a string into bool, int, float64, a list, or keeps it
// as string. Lists use YAML flow syntax ("[High, Medium]").
func coerceValue(s string) any {
	if s == "true" {
		return true
	}
	if s == "false" {
		return false
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		// Only use float if it has a decimal point (avoid converting "3" to 3.0).
		if strings.Contains(s, ".") {
			return f
		}
	}
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		var list []any
		if err := yaml.Unmarshal([]byte(s), &list); err == nil {
			if list == nil {
				list = []any{}
			}
			return list
		}
	}
	return s
}

// yamlKeys extracts yaml tag names from a struct type.
func yamlKeys(t reflect.Type) map[string]bool {
	keys := make(map[string]bool)
	for i := range t.NumField() {
		tag := t.Field(i).Tag.Get("yaml")
		if tag == "" || tag == "-" {
			continue
		}
		name := strings.Split(tag, ",")[0]
		if name != "" {
			keys[name] = true
		}
	}
	return keys
}

// sortedKeys returns a comma-separated sorted list of map keys.
func sortedKeys(m map[string]bool) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}
