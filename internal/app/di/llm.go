package di

import (
	"context"
	"fmt"
	"strings"
	"time"

	"company_intel/internal/feature/analysis/adapters/gemini"
	"company_intel/internal/feature/analysis/adapters/openai"
	"company_intel/internal/feature/analysis/usecase"
	"company_intel/internal/platform/env"
	infrahttp "company_intel/internal/platform/http"
)

// LLM providers accepted in LLM_PROVIDER.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// llmTimeout bounds a single completion request.
const llmTimeout = 60 * time.Second

// NewChatModel creates the ChatModel selected by LLM_PROVIDER (default gemini).
func NewChatModel(ctx context.Context) (usecase.ChatModel, error) {
	provider := strings.ToLower(env.Get("LLM_PROVIDER", ProviderGemini))
	httpClient := infrahttp.NewHTTPClient(llmTimeout)

	switch provider {
	case ProviderGemini:
		client, err := gemini.NewClient(ctx, gemini.LoadConfig(), httpClient)
		if err != nil {
			return nil, err
		}
		return client, nil
	case ProviderOpenAI:
		cfg := openai.LoadConfig()
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for LLM_PROVIDER=%s", provider)
		}
		return openai.NewClient(cfg, httpClient), nil
	default:
		return nil, fmt.Errorf("unsupported LLM_PROVIDER %q", provider)
	}
}
