package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"company_intel/internal/feature/analysis/usecase"
)

func newTestServer(t *testing.T, reply string, captured *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/test-model:generateContent"), r.URL.Path)
		if captured != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(reply))
	}))
}

func TestClient_Chat(t *testing.T) {
	var body map[string]any
	server := newTestServer(t, `{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"intent\":\"founder_lookup\"}"}]}}]}`, &body)
	defer server.Close()

	c, err := NewClient(context.Background(), Config{APIKey: "k", Model: "test-model", MaxTokens: 256, BaseURL: server.URL}, server.Client())
	require.NoError(t, err)

	got, err := c.Chat(context.Background(), usecase.ChatRequest{SystemPrompt: "route", UserMessage: "Company: Acme", JSONMode: true})
	require.NoError(t, err)
	assert.Equal(t, `{"intent":"founder_lookup"}`, got)

	generation, ok := body["generationConfig"].(map[string]any)
	require.True(t, ok, "generationConfig missing: %v", body)
	assert.Equal(t, "application/json", generation["responseMimeType"])
	assert.EqualValues(t, 256, generation["maxOutputTokens"])
	assert.Contains(t, body, "systemInstruction")
}

func TestClient_Chat_EmptyResponse(t *testing.T) {
	server := newTestServer(t, `{"candidates":[]}`, nil)
	defer server.Close()

	c, err := NewClient(context.Background(), Config{APIKey: "k", Model: "test-model", BaseURL: server.URL}, server.Client())
	require.NoError(t, err)

	_, err = c.Chat(context.Background(), usecase.ChatRequest{SystemPrompt: "s", UserMessage: "u"})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestClient_Chat_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"permission denied","status":"PERMISSION_DENIED"}}`))
	}))
	defer server.Close()

	c, err := NewClient(context.Background(), Config{APIKey: "k", Model: "test-model", BaseURL: server.URL}, server.Client())
	require.NoError(t, err)

	_, err = c.Chat(context.Background(), usecase.ChatRequest{SystemPrompt: "s", UserMessage: "u"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini API request failed")
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("LLM_MAX_TOKENS", "2048")

	cfg := LoadConfig()
	assert.Equal(t, Config{APIKey: "key", Model: DefaultModel, MaxTokens: 2048}, cfg)
}
