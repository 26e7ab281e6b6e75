// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package narrate_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/riskboard/internal/narrate"
)

type messageResponse struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Role       string         `json:"role"`
	Content    []messageBlock `json:"content"`
	Model      string         `json:"model"`
	StopReason string         `json:"stop_reason"`
	Usage      messageUsage   `json:"usage"`
}

type messageBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type messageUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

func textResponse(texts ...string) messageResponse {
	blocks := make([]messageBlock, len(texts))
	for i, s := range texts {
		blocks[i] = messageBlock{Type: "text", Text: s}
	}
	return messageResponse{
		ID:         "msg_test",
		Type:       "message",
		Role:       "assistant",
		Content:    blocks,
		Model:      "claude-sonnet-4-5-20250929",
		StopReason: "end_turn",
		Usage:      messageUsage{InputTokens: 12, OutputTokens: 7},
	}
}

// newTestServer serves resp and captures the decoded request body.
func newTestServer(t *testing.T, resp messageResponse, captured *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if captured != nil {
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
				*captured = body
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newProvider(t *testing.T, url string) *narrate.AnthropicProvider {
	t.Helper()
	p, err := narrate.NewAnthropicProvider(
		narrate.WithAPIKey("test-key"),
		narrate.WithBaseURL(url),
		narrate.WithMaxRetries(0),
	)
	require.NoError(t, err)
	return p
}

func TestNewAnthropicProvider_Keys(t *testing.T) {
	t.Setenv(narrate.APIKeyEnv, "")
	t.Setenv(narrate.ModelEnv, "")
	_, err := narrate.NewAnthropicProvider()
	assert.ErrorIs(t, err, narrate.ErrNoAPIKey)

	t.Setenv(narrate.APIKeyEnv, "env-key")
	p, err := narrate.NewAnthropicProvider()
	require.NoError(t, err)
	assert.Equal(t, "claude-sonnet-4-5-20250929", p.Model())
	assert.Equal(t, 3, p.MaxRetries())

	p, err = narrate.NewAnthropicProvider(
		narrate.WithAPIKey("explicit"),
		narrate.WithModel("claude-haiku-4-5"),
		narrate.WithMaxRetries(5),
	)
	require.NoError(t, err)
	assert.Equal(t, "claude-haiku-4-5", p.Model())
	assert.Equal(t, 5, p.MaxRetries())
}

func TestNewAnthropicProvider_ModelFromEnv(t *testing.T) {
	t.Setenv(narrate.APIKeyEnv, "env-key")
	t.Setenv(narrate.ModelEnv, " claude-haiku-4-5 ")

	p, err := narrate.NewAnthropicProvider()
	require.NoError(t, err)
	assert.Equal(t, "claude-haiku-4-5", p.Model())

	p, err = narrate.NewAnthropicProvider(narrate.WithModel("claude-opus-4-1"))
	require.NoError(t, err)
	assert.Equal(t, "claude-opus-4-1", p.Model(), "explicit option wins over the environment")
}

func TestComplete_Defaults(t *testing.T) {
	var captured map[string]any
	srv := newTestServer(t, textResponse("hello"), &captured)

	resp, err := newProvider(t, srv.URL).Complete(context.Background(), narrate.Request{Prompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hello", resp.Content)
	assert.Equal(t, "claude-sonnet-4-5-20250929", resp.Model)
	assert.Equal(t, narrate.Usage{InputTokens: 12, OutputTokens: 7}, resp.Usage)

	assert.Equal(t, "claude-sonnet-4-5-20250929", captured["model"])
	assert.Equal(t, float64(4096), captured["max_tokens"])
	assert.NotContains(t, captured, "system")
	assert.NotContains(t, captured, "temperature")
}

func TestComplete_RequestOptions(t *testing.T) {
	var captured map[string]any
	srv := newTestServer(t, textResponse("ok"), &captured)

	temp := 0.2
	_, err := newProvider(t, srv.URL).Complete(context.Background(), narrate.Request{
		Prompt:       "hi",
		Model:        "claude-haiku-4-5",
		MaxTokens:    600,
		Temperature:  &temp,
		SystemPrompt: "Be brief.",
	})
	require.NoError(t, err)

	assert.Equal(t, "claude-haiku-4-5", captured["model"])
	assert.Equal(t, float64(600), captured["max_tokens"])
	assert.Equal(t, 0.2, captured["temperature"])
	system, ok := captured["system"].([]any)
	require.True(t, ok, "system should be an array")
	require.Len(t, system, 1)
	assert.Equal(t, "Be brief.", system[0].(map[string]any)["text"])
}

func TestComplete_MultipleTextBlocks(t *testing.T) {
	srv := newTestServer(t, textResponse("hello ", "world"), nil)
	resp, err := newProvider(t, srv.URL).Complete(context.Background(), narrate.Request{Prompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hello world", resp.Content)
}

func TestComplete_Truncated(t *testing.T) {
	resp := textResponse("Phishing losses rose sharply while")
	resp.StopReason = "max_tokens"
	srv := newTestServer(t, resp, nil)

	got, err := newProvider(t, srv.URL).Complete(context.Background(), narrate.Request{Prompt: "hi"})
	require.NoError(t, err)
	assert.True(t, got.Truncated)

	srv = newTestServer(t, textResponse("done"), nil)
	got, err = newProvider(t, srv.URL).Complete(context.Background(), narrate.Request{Prompt: "hi"})
	require.NoError(t, err)
	assert.False(t, got.Truncated)
}

func TestComplete_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"rate_limit_error","message":"rate limited"}}`))
	}))
	defer srv.Close()

	_, err := newProvider(t, srv.URL).Complete(context.Background(), narrate.Request{Prompt: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic request failed")
}
