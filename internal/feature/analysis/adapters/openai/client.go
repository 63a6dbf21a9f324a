// Package openai provides a ChatModel backed by any OpenAI-compatible chat completions endpoint
// (OpenAI, OpenRouter, local gateways).
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"

	"company_intel/internal/feature/analysis/usecase"
	"company_intel/internal/platform/env"
)

const (
	// DefaultModel is used when OPENAI_MODEL is unset.
	DefaultModel = "gpt-4o-mini"
	// DefaultMaxTokens caps a single completion.
	DefaultMaxTokens = 1024
)

// ErrNoChoices is returned when the completion carries no choices.
var ErrNoChoices = errors.New("no choices in response")

// Config holds the endpoint settings.
type Config struct {
	APIKey    string
	BaseURL   string // "" keeps the go-openai default
	Model     string
	MaxTokens int
}

// LoadConfig reads OPENAI_* and LLM_MAX_TOKENS.
func LoadConfig() Config {
	return Config{
		APIKey:    env.Get("OPENAI_API_KEY", ""),
		BaseURL:   env.Get("OPENAI_BASE_URL", ""),
		Model:     env.Get("OPENAI_MODEL", DefaultModel),
		MaxTokens: env.GetInt("LLM_MAX_TOKENS", DefaultMaxTokens),
	}
}

// Client answers single-turn chat requests through the chat completions API.
type Client struct {
	client    *openai.Client
	model     string
	maxTokens int
}

var _ usecase.ChatModel = (*Client)(nil)

// NewClient builds a Client; httpClient may be nil.
func NewClient(cfg Config, httpClient *http.Client) *Client {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	if httpClient != nil {
		config.HTTPClient = httpClient
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &Client{client: openai.NewClientWithConfig(config), model: model, maxTokens: maxTokens}
}

// Chat sends the system prompt and user message and returns the first choice's text.
// JSON mode maps to response_format json_object.
func (c *Client) Chat(ctx context.Context, req usecase.ChatRequest) (string, error) {
	creq := openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.UserMessage},
		},
	}
	if req.JSONMode {
		creq.ResponseFormat = &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject}
	}

	resp, err := c.client.CreateChatCompletion(ctx, creq)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	return resp.Choices[0].Message.Content, nil
}
