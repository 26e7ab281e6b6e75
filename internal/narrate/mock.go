// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package narrate

import (
	"context"
	"slices"
	"sync"
)

// mockModel is reported as Response.Model by MockProvider.
const mockModel = "mock"

// MockResponse is one scripted reply of a MockProvider. A non-nil Err is
// returned instead of a Response.
type MockResponse struct {
	Content   string
	Truncated bool
	Err       error
}

// MockProvider is an offline Provider for tests and dry runs of the report
// narrative. It replays its script in order and keeps answering with the
// final entry once the script runs out. With an empty script every call
// gets an empty reply.
//
// Every request that reaches the script is recorded, so tests can inspect
// the prompt a summary was built from. A MockProvider is safe for
// concurrent use.
type MockProvider struct {
	mu     sync.Mutex
	script []MockResponse
	next   int
	calls  []Request
}

var _ Provider = (*MockProvider)(nil)

// NewMockProvider returns a provider that replays script.
func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{script: script}
}

// Complete records req and returns the current script entry. A cancelled
// ctx fails before anything is recorded. Token usage is a fixed nonzero
// count so callers that log usage have something to log.
func (m *MockProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, req)

	if len(m.script) == 0 {
		return &Response{Model: mockModel}, nil
	}
	entry := m.script[m.next]
	if m.next < len(m.script)-1 {
		m.next++
	}
	if entry.Err != nil {
		return nil, entry.Err
	}
	return &Response{
		Content:   entry.Content,
		Model:     mockModel,
		Truncated: entry.Truncated,
		Usage:     Usage{InputTokens: 10, OutputTokens: 5},
	}, nil
}

// Calls returns the recorded requests, oldest first. The slice is a copy.
func (m *MockProvider) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.calls)
}

// Reset forgets recorded requests and restarts the script from its first
// entry.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
	m.next = 0
}
