package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"company_intel/internal/feature/analysis/adapters/tavily/dto"
	"company_intel/internal/feature/analysis/domain/entity"
	"company_intel/internal/feature/analysis/usecase"
	"company_intel/internal/platform/ratelimiter"
)

// ErrMissingAPIKey is returned when TAVILY_API_KEY is not configured.
var ErrMissingAPIKey = errors.New("tavily: api key is missing")

// Client はTavily外部APIでWeb検索を行うSearcher実装です。
type Client struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.Limiter
}

// ClientがSearcherを実装していることをコンパイル時に検証します。
var _ usecase.Searcher = (*Client)(nil)

// NewClient は指定された設定とHTTPクライアントでClientの新しいインスタンスを生成します。
// limiter が nil の場合は呼び出し頻度を制限しません。
func NewClient(cfg Config, client *http.Client, limiter ratelimiter.Limiter) *Client {
	return &Client{cfg: cfg, client: client, limiter: limiter}
}

// Search はTavily APIに検索クエリを送り、結果をドメインのSearchResultに変換します。
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]entity.SearchResult, error) {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	payload, err := json.Marshal(dto.SearchRequest{
		Query:       query,
		MaxResults:  maxResults,
		SearchDepth: c.cfg.SearchDepth,
	})
	if err != nil {
		return nil, err
	}

	// リクエストオブジェクトを作成
	u := strings.TrimRight(c.cfg.BaseURL, "/") + "/search"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	// リクエストを実行
	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		var body dto.ErrorResponse
		if json.NewDecoder(res.Body).Decode(&body) == nil && body.Detail.Error != "" {
			return nil, fmt.Errorf("tavily http %d: %s", res.StatusCode, body.Detail.Error)
		}
		return nil, fmt.Errorf("tavily http %d", res.StatusCode)
	}

	// JSONレスポンスをDTOにデコード
	var body dto.SearchResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode tavily response: %w", err)
	}

	results := make([]entity.SearchResult, 0, len(body.Results))
	for _, r := range body.Results {
		results = append(results, entity.SearchResult{
			Title:   r.Title,
			URL:     r.URL,
			Content: truncate(r.Content, c.cfg.MaxContentRunes),
		})
	}
	slog.Debug("tavily search", "query", query, "results", len(results), "response_time", body.ResponseTime)
	return results, nil
}

// truncate cuts s to n runes; n <= 0 keeps s whole.
func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
