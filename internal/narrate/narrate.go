// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

// Package narrate turns a pipeline result into a short executive summary
// using an LLM provider.
package narrate

import "context"

// Provider abstracts an LLM API behind a single synchronous completion method.
type Provider interface {
	// Complete sends a prompt to the LLM and returns the response.
	// Implementations must respect context cancellation and deadlines.
	Complete(ctx context.Context, req Request) (*Response, error)
}

// Request describes a single completion request.
type Request struct {
	// Prompt is the user message to send.
	Prompt string

	// Model overrides the provider's default model.
	Model string

	// MaxTokens limits the response length. Zero uses the provider default.
	MaxTokens int

	// Temperature controls randomness. Nil uses the provider default.
	Temperature *float64

	SystemPrompt string
}

// Response holds the result of a completion call.
type Response struct {
	Content string
	Model   string

	// Truncated is set when the reply stopped at the token limit.
	Truncated bool

	Usage Usage
}

// Usage tracks input and output token counts for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}
