package tavily

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"company_intel/internal/feature/analysis/adapters/tavily/dto"
	"company_intel/internal/feature/analysis/domain/entity"
)

// stubLimiter はLimiterインターフェースのモック実装です。
type stubLimiter struct {
	err   error
	calls int
}

func (s *stubLimiter) Wait(ctx context.Context) error {
	s.calls++
	return s.err
}

func testConfig(baseURL string) Config {
	return Config{
		APIKey:          "test-key",
		BaseURL:         baseURL,
		SearchDepth:     "basic",
		Timeout:         5 * time.Second,
		MaxContentRunes: 500,
	}
}

func TestClient_Search_Success(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("あ", 600)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req dto.SearchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, dto.SearchRequest{Query: "Acme competitors", MaxResults: 3, SearchDepth: "basic"}, req)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"query": "Acme competitors",
			"results": [
				{"title": "Globex", "url": "https://globex.example", "content": "Globex makes rockets", "score": 0.9},
				{"title": "Long", "url": "https://long.example", "content": "` + long + `", "score": 0.5}
			],
			"response_time": 0.42
		}`))
	}))
	defer server.Close()

	limiter := &stubLimiter{}
	c := NewClient(testConfig(server.URL+"/"), server.Client(), limiter)

	got, err := c.Search(context.Background(), "Acme competitors", 3)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, entity.SearchResult{Title: "Globex", URL: "https://globex.example", Content: "Globex makes rockets"}, got[0])
	assert.Equal(t, 500, len([]rune(got[1].Content)))
	assert.Equal(t, 1, limiter.calls)
}

func TestClient_Search_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		status      int
		body        string
		expectedErr string
	}{
		{name: "http error with detail", status: http.StatusUnauthorized, body: `{"detail":{"error":"Unauthorized: missing or invalid API key."}}`, expectedErr: "tavily http 401: Unauthorized"},
		{name: "http error without body", status: http.StatusInternalServerError, body: ``, expectedErr: "tavily http 500"},
		{name: "malformed body", status: http.StatusOK, body: `{"results": [`, expectedErr: "decode tavily response"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			_, err := NewClient(testConfig(server.URL), server.Client(), nil).Search(context.Background(), "q", 3)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.expectedErr)
		})
	}
}

func TestClient_Search_MissingAPIKey(t *testing.T) {
	t.Parallel()

	cfg := testConfig("http://127.0.0.1:0")
	cfg.APIKey = " "
	_, err := NewClient(cfg, http.DefaultClient, nil).Search(context.Background(), "q", 3)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestClient_Search_LimiterErrorStopsRequest(t *testing.T) {
	t.Parallel()

	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	limitErr := errors.New("limited")
	_, err := NewClient(testConfig(server.URL), server.Client(), &stubLimiter{err: limitErr}).Search(context.Background(), "q", 3)
	assert.ErrorIs(t, err, limitErr)
	assert.False(t, called)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("TAVILY_API_KEY", "k")
	t.Setenv("TAVILY_BASE_URL", "")
	t.Setenv("SEARCH_RATE_LIMIT", "10")

	cfg := LoadConfig()
	assert.Equal(t, "k", cfg.APIKey)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, 10, cfg.RateLimit)
	assert.Equal(t, 500, cfg.MaxContentRunes)
}
