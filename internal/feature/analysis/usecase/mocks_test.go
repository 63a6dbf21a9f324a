package usecase_test

import (
	"context"
	"errors"
	"strings"

	"company_intel/internal/feature/analysis/domain/entity"
	"company_intel/internal/feature/analysis/usecase"
)

// ErrAPI はモックと期待値の間で共有されるセンチネルエラーです。
var ErrAPI = errors.New("api error")

// mockSearcher はSearcherインターフェースのモック実装です。
type mockSearcher struct {
	SearchFunc func(ctx context.Context, query string, maxResults int) ([]entity.SearchResult, error)
	Queries    []string
	MaxResults []int
}

func (m *mockSearcher) Search(ctx context.Context, query string, maxResults int) ([]entity.SearchResult, error) {
	m.Queries = append(m.Queries, query)
	m.MaxResults = append(m.MaxResults, maxResults)
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, maxResults)
	}
	return nil, errors.New("SearchFunc is not implemented")
}

// mockChatModel はChatModelインターフェースのモック実装です。
type mockChatModel struct {
	ChatFunc func(ctx context.Context, req usecase.ChatRequest) (string, error)
	Requests []usecase.ChatRequest
}

func (m *mockChatModel) Chat(ctx context.Context, req usecase.ChatRequest) (string, error) {
	m.Requests = append(m.Requests, req)
	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, req)
	}
	return "", errors.New("ChatFunc is not implemented")
}

// scriptedChat answers by matching a marker in the system prompt.
func scriptedChat(verify, route, answer string) func(ctx context.Context, req usecase.ChatRequest) (string, error) {
	return func(ctx context.Context, req usecase.ChatRequest) (string, error) {
		switch {
		case strings.Contains(req.SystemPrompt, "company identification specialist"):
			return verify, nil
		case strings.Contains(req.SystemPrompt, "intent router"):
			return route, nil
		default:
			return answer, nil
		}
	}
}

// mockRecorder はAnalysisRecorderインターフェースのモック実装です。
type mockRecorder struct {
	Runs []usecase.RunSummary
	Err  error
}

func (m *mockRecorder) Record(ctx context.Context, run usecase.RunSummary) error {
	m.Runs = append(m.Runs, run)
	return m.Err
}
