// Package gemini はGoogle Gemini APIを使用したChatModel実装を提供します。
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"company_intel/internal/feature/analysis/usecase"
	"company_intel/internal/platform/env"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"
	// DefaultMaxTokens は1回の応答の最大トークン数です。
	DefaultMaxTokens = 1024
)

// ErrEmptyResponse is returned when Gemini answers without any text part.
var ErrEmptyResponse = errors.New("gemini returned an empty response")

// Config はGeminiクライアントの設定を保持します。
type Config struct {
	// APIKey が空の場合はADC（GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT, GOOGLE_CLOUD_LOCATION）を使用します。
	APIKey    string
	Model     string
	MaxTokens int
	BaseURL   string // テスト用の上書き
}

// LoadConfig は環境変数からGeminiの設定を読み込みます。
func LoadConfig() Config {
	return Config{
		APIKey:    env.Get("GEMINI_API_KEY", ""),
		Model:     env.Get("GEMINI_MODEL", DefaultModel),
		MaxTokens: env.GetInt("LLM_MAX_TOKENS", DefaultMaxTokens),
	}
}

// Client はGoogle Gemini APIで単発の応答を生成します。
type Client struct {
	client    *genai.Client
	model     string
	maxTokens int32
}

// ClientがChatModelを実装していることをコンパイル時に検証します。
var _ usecase.ChatModel = (*Client)(nil)

// NewClient はGemini Clientの新しいインスタンスを生成します。httpClient が nil の場合はSDKの既定値を使います。
func NewClient(ctx context.Context, cfg Config, httpClient *http.Client) (*Client, error) {
	var cc *genai.ClientConfig
	if cfg.APIKey != "" {
		cc = &genai.ClientConfig{
			APIKey:     cfg.APIKey,
			Backend:    genai.BackendGeminiAPI,
			HTTPClient: httpClient,
		}
		if cfg.BaseURL != "" {
			cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
		}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &Client{client: client, model: model, maxTokens: int32(maxTokens)}, nil
}

// Chat はシステムプロンプトとユーザーメッセージから応答テキストを生成します。
func (c *Client) Chat(ctx context.Context, req usecase.ChatRequest) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.SystemPrompt, genai.RoleUser),
		MaxOutputTokens:   c.maxTokens,
	}
	if req.JSONMode {
		config.ResponseMIMEType = "application/json"
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(req.UserMessage), config)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
