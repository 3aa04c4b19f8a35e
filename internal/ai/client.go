package ai

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"golang.org/x/sync/semaphore"
)

const (
	// ModelDefault handles plan analysis and fallback generation.
	ModelDefault = "claude-sonnet-4-5-20250929"

	// ModelLight handles chat replies, where latency matters more than
	// reasoning depth.
	ModelLight = "claude-3-5-haiku-20241022"
)

// GetDefaultModel returns the analysis model, checking BASELENS_MODEL first.
func GetDefaultModel() string {
	if model := os.Getenv("BASELENS_MODEL"); model != "" {
		return model
	}
	return ModelDefault
}

// GetChatModel returns the chat model, checking BASELENS_CHAT_MODEL first.
func GetChatModel() string {
	if model := os.Getenv("BASELENS_CHAT_MODEL"); model != "" {
		return model
	}
	return ModelLight
}

// Client is the provider boundary. One instance is shared by the CLI and
// the HTTP server; it issues a single request per operation with no retry
// and no partial results, and caps concurrent in-flight calls so a busy
// server cannot fan out into the provider's rate limits.
type Client struct {
	client    *anthropic.Client
	model     string
	chatModel string
	sem       *semaphore.Weighted
}

// Config holds client configuration.
type Config struct {
	APIKey             string // If empty, read from ANTHROPIC_API_KEY
	Model              string // Analysis model (default: ModelDefault)
	ChatModel          string // Chat model (default: ModelLight)
	MaxConcurrentCalls int    // Concurrent provider calls (default: 2, 0 = default)
}

// New creates a provider client. A missing credential is reported as
// ErrMissingAPIKey immediately; no network call is attempted.
func New(cfg Config) (*Client, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	model := cfg.Model
	if model == "" {
		model = GetDefaultModel()
	}
	chatModel := cfg.ChatModel
	if chatModel == "" {
		chatModel = GetChatModel()
	}

	maxConcurrent := cfg.MaxConcurrentCalls
	if maxConcurrent <= 0 {
		maxConcurrent = 2
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	return &Client{
		client:    &client,
		model:     model,
		chatModel: chatModel,
		sem:       semaphore.NewWeighted(int64(maxConcurrent)),
	}, nil
}

// complete sends a conversation to the provider and returns the
// concatenated text blocks of the reply.
func (c *Client) complete(ctx context.Context, operation, model, system string, maxTokens int64, messages []anthropic.MessageParam) (string, error) {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("waiting for call slot: %w", err)
	}
	defer c.sem.Release(1)

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: maxTokens,
		Messages:  messages,
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	start := time.Now()
	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic API call failed: %w", err)
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}

	slog.Debug("provider call",
		"operation", operation,
		"model", model,
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens,
		"duration", time.Since(start))

	return text, nil
}
