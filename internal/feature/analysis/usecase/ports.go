package usecase

import (
	"context"

	"company_intel/internal/feature/analysis/domain/entity"
)

// Searcher runs a web search.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type Searcher interface {
	// Search returns at most maxResults hits for query.
	Search(ctx context.Context, query string, maxResults int) ([]entity.SearchResult, error)
}

// ChatRequest is a single-turn completion request.
type ChatRequest struct {
	SystemPrompt string
	UserMessage  string
	// JSONMode asks the provider for a bare JSON object.
	JSONMode bool
}

// ChatModel is a hosted language model.
type ChatModel interface {
	Chat(ctx context.Context, req ChatRequest) (string, error)
}

// AnalysisRecorder persists a summary of every finished run.
type AnalysisRecorder interface {
	Record(ctx context.Context, run RunSummary) error
}
