// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package narrate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	// APIKeyEnv holds the Messages API key used when WithAPIKey is absent.
	APIKeyEnv = "ANTHROPIC_API_KEY"

	// ModelEnv names a model that replaces the built-in default. WithModel
	// still takes precedence over it.
	ModelEnv = "RISKBOARD_NARRATE_MODEL"

	defaultAnthropicModel = "claude-sonnet-4-5-20250929"

	// defaultMaxTokens caps replies when a Request leaves MaxTokens at zero.
	// Summaries ask for far less.
	defaultMaxTokens = 4096

	// defaultMaxRetries bounds the SDK's own backoff on 429, 529 and 5xx
	// responses. A report waits on the narrative, so keep it small.
	defaultMaxRetries = 3
)

// ErrNoAPIKey means neither WithAPIKey nor APIKeyEnv supplied a key. The
// report command treats it as a usage error rather than an API failure.
var ErrNoAPIKey = errors.New("narrate: " + APIKeyEnv + " not set and no API key provided")

// AnthropicProvider narrates through the Anthropic Messages API. Each
// Complete call is a single user turn with an optional system prompt;
// only the text blocks of the reply are kept.
//
// The zero value is not usable. Build one with NewAnthropicProvider.
type AnthropicProvider struct {
	client     anthropic.Client
	model      string
	maxRetries int
}

var _ Provider = (*AnthropicProvider)(nil)

// AnthropicOption adjusts how NewAnthropicProvider builds its client.
type AnthropicOption func(*anthropicSettings)

type anthropicSettings struct {
	apiKey     string
	model      string
	endpoint   string
	maxRetries int
}

// WithAPIKey supplies the API key directly instead of reading APIKeyEnv.
func WithAPIKey(key string) AnthropicOption {
	return func(s *anthropicSettings) { s.apiKey = key }
}

// WithModel sets the model used by requests that do not name one.
func WithModel(model string) AnthropicOption {
	return func(s *anthropicSettings) { s.model = model }
}

// WithBaseURL sends requests to another endpoint, such as a proxy or a
// local test server.
func WithBaseURL(url string) AnthropicOption {
	return func(s *anthropicSettings) { s.endpoint = url }
}

// WithMaxRetries sets how often the SDK retries a transient failure. Zero
// disables retries.
func WithMaxRetries(n int) AnthropicOption {
	return func(s *anthropicSettings) { s.maxRetries = n }
}

// NewAnthropicProvider resolves the key and model, then builds the SDK
// client. Explicit options win over the environment. The key is looked up
// once here, so a missing key fails before any report work starts.
func NewAnthropicProvider(opts ...AnthropicOption) (*AnthropicProvider, error) {
	s := anthropicSettings{maxRetries: defaultMaxRetries}
	for _, opt := range opts {
		opt(&s)
	}

	if s.apiKey == "" {
		s.apiKey = strings.TrimSpace(os.Getenv(APIKeyEnv))
	}
	if s.apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if s.model == "" {
		s.model = strings.TrimSpace(os.Getenv(ModelEnv))
	}
	if s.model == "" {
		s.model = defaultAnthropicModel
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(s.apiKey),
		option.WithMaxRetries(s.maxRetries),
	}
	if s.endpoint != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(s.endpoint))
	}

	return &AnthropicProvider{
		client:     anthropic.NewClient(reqOpts...),
		model:      s.model,
		maxRetries: s.maxRetries,
	}, nil
}

// Complete sends req as one Messages API call. Request fields left at their
// zero value fall back to the provider's model and defaultMaxTokens, and
// temperature is omitted so the API default applies. A reply cut off by the
// token limit is returned with Truncated set.
func (p *AnthropicProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	msg, err := p.client.Messages.New(ctx, p.messageParams(req))
	if err != nil {
		return nil, fmt.Errorf("narrate: anthropic request failed: %w", err)
	}
	return &Response{
		Content:   replyText(msg),
		Model:     string(msg.Model),
		Truncated: msg.StopReason == anthropic.StopReasonMaxTokens,
		Usage: Usage{
			InputTokens:  int(msg.Usage.InputTokens),
			OutputTokens: int(msg.Usage.OutputTokens),
		},
	}, nil
}

func (p *AnthropicProvider) messageParams(req Request) anthropic.MessageNewParams {
	model := req.Model
	if model == "" {
		model = p.model
	}
	limit := int64(defaultMaxTokens)
	if req.MaxTokens > 0 {
		limit = int64(req.MaxTokens)
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: limit,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.SystemPrompt}}
	}
	if req.Temperature != nil {
		params.Temperature = anthropic.Float(*req.Temperature)
	}
	return params
}

// replyText concatenates the text blocks of msg in order.
func replyText(msg *anthropic.Message) string {
	var b strings.Builder
	for _, block := range msg.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(text.Text)
		}
	}
	return b.String()
}

// Model is the model used when a Request does not name one.
func (p *AnthropicProvider) Model() string { return p.model }

// MaxRetries is the SDK retry budget for transient failures.
func (p *AnthropicProvider) MaxRetries() int { return p.maxRetries }
