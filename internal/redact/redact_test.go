// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package redact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func setenv(t *testing.T, key, value string) {
	t.Helper()
	t.Setenv(key, value)
	resetCache()
	t.Cleanup(resetCache)
}

func TestString_RedactsEnvValue(t *testing.T) {
	setenv(t, "ANTHROPIC_API_KEY", "test-secret-value-123")
	assert.Equal(t,
		"narrate: auth failed for key [REDACTED]",
		String("narrate: auth failed for key test-secret-value-123"))
}

func TestString_NoSecretIsNoop(t *testing.T) {
	setenv(t, "ANTHROPIC_API_KEY", "")
	assert.Equal(t, "some normal error message", String("some normal error message"))
}

func TestString_ShortValuesIgnored(t *testing.T) {
	setenv(t, "ANTHROPIC_API_KEY", "abc")
	assert.Equal(t, "abc is in the string abc", String("abc is in the string abc"))
}

func TestString_MultipleSecrets(t *testing.T) {
	setenv(t, "ANTHROPIC_API_KEY", "test-token-aaaa")
	setenv(t, "RISKBOARD_API_KEY", "test-token-bbbb")
	assert.Equal(t, "tokens: [REDACTED] and [REDACTED]", String("tokens: test-token-aaaa and test-token-bbbb"))
}

func TestString_KeyPattern(t *testing.T) {
	setenv(t, "ANTHROPIC_API_KEY", "")
	tests := []struct {
		in, want string
	}{
		{"x-api-key: sk-ant-REDACTED", "x-api-key: [REDACTED]"},
		{"sk-ant-short", "sk-ant-short"},
		{"no key here", "no key here"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, String(tt.in), tt.in)
	}
}

func TestString_CachesSecrets(t *testing.T) {
	setenv(t, "ANTHROPIC_API_KEY", "first-secret")
	assert.Equal(t, "[REDACTED]", String("first-secret"))

	t.Setenv("ANTHROPIC_API_KEY", "second-secret")
	assert.Equal(t, "second-secret", String("second-secret"), "cache holds the first value")

	ResetForTest()
	assert.Equal(t, "[REDACTED]", String("second-secret"))
}
