// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package config

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func FuzzConfigParse(f *testing.F) {
	f.Add([]byte("preset: basic\nseed: 42\n"))
	f.Add([]byte(""))
	f.Add([]byte("---"))
	f.Add([]byte("presets:\n  lab:\n    base: enriched\n    risk_weights:\n      High: 1\n"))
	f.Add([]byte("filter:\n  where: loss_amount > 10\n"))
	f.Add([]byte("{invalid"))

	f.Fuzz(func(t *testing.T, data []byte) {
		var cfg Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return
		}
		// Parsed configs must validate and marshal without panicking.
		_ = Validate(&cfg)
		yaml.Marshal(&cfg) //nolint:errcheck,gosec // fuzz: testing crash-freedom
	})
}
