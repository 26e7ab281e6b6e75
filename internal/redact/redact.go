// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

// Package redact strips credentials from strings before they appear in
// output, logs, or error messages.
package redact

import (
	"os"
	"regexp"
	"strings"
	"sync"
)

// Placeholder replaces every redacted value.
const Placeholder = "[REDACTED]"

// sensitiveEnvVars lists environment variables whose values must never be
// printed.
var sensitiveEnvVars = []string{
	"ANTHROPIC_API_KEY",
	"ANTHROPIC_AUTH_TOKEN",
	"RISKBOARD_API_KEY",
}

// anthropicKey matches Anthropic API keys that did not come from the
// environment, such as keys written into a config file.
var anthropicKey = regexp.MustCompile(`sk-ant-[A-Za-z0-9_-]{8,}`)

var (
	cachedSecrets []string
	cacheOnce     sync.Once
)

func loadSecrets() {
	for _, envVar := range sensitiveEnvVars {
		// Values under 4 chars would cause false-positive redaction.
		if val := os.Getenv(envVar); len(val) >= 4 {
			cachedSecrets = append(cachedSecrets, val)
		}
	}
}

func resetCache() {
	cachedSecrets = nil
	cacheOnce = sync.Once{}
}

// ResetForTest resets the cached secrets so tests in other packages can
// verify redaction after setting env vars with t.Setenv.
func ResetForTest() { resetCache() }

// String replaces sensitive environment variable values and anything shaped
// like an Anthropic API key with Placeholder. Secret values are read once.
func String(s string) string {
	cacheOnce.Do(loadSecrets)
	for _, secret := range cachedSecrets {
		s = strings.ReplaceAll(s, secret, Placeholder)
	}
	return anthropicKey.ReplaceAllString(s, Placeholder)
}
