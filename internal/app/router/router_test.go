package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analysisentity "company_intel/internal/feature/analysis/domain/entity"
	analysishandler "company_intel/internal/feature/analysis/transport/handler"
	historyentity "company_intel/internal/feature/history/domain/entity"
	historyhandler "company_intel/internal/feature/history/transport/handler"
	"company_intel/internal/feature/history/usecase"
	"company_intel/internal/platform/http/handler"
	jwtmw "company_intel/internal/platform/jwt"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type stubAnalyzer struct{}

func (stubAnalyzer) Run(ctx context.Context, req analysisentity.UserRequest) <-chan analysisentity.AgentEvent {
	ch := make(chan analysisentity.AgentEvent, 1)
	ch <- analysisentity.AgentEvent{Agent: "System", Kind: analysisentity.EventDone, Content: "✅ Analysis complete!"}
	close(ch)
	return ch
}

type stubHistory struct{}

func (stubHistory) List(ctx context.Context, limit int) ([]historyentity.AnalysisRecord, error) {
	return []historyentity.AnalysisRecord{}, nil
}

func (stubHistory) Get(ctx context.Context, id string) (*historyentity.AnalysisRecord, error) {
	return nil, usecase.ErrNotFound
}

func newTestRouter(cfg Config) *gin.Engine {
	return NewRouter(cfg,
		handler.NewHealthHandler(nil),
		analysishandler.NewAnalyzeHandler(stubAnalyzer{}),
		historyhandler.NewHistoryHandler(stubHistory{}),
	)
}

const analyzeBody = `{"company_name":"Acme","query":"what do they do?"}`

func TestNewRouter_Routes(t *testing.T) {
	r := newTestRouter(Config{})

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"health GET", http.MethodGet, "/healthz", "", http.StatusOK},
		{"health HEAD", http.MethodHead, "/healthz", "", http.StatusOK},
		{"health OPTIONS", http.MethodOptions, "/healthz", "", http.StatusNoContent},
		{"analyze", http.MethodPost, "/analyze", analyzeBody, http.StatusOK},
		{"list analyses", http.MethodGet, "/analyses", "", http.StatusOK},
		{"get unknown analysis", http.MethodGet, "/analyses/missing", "", http.StatusNotFound},
		{"unknown route", http.MethodGet, "/candles/7203", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestNewRouter_AuthEnabled(t *testing.T) {
	const secret = "router-test-secret"
	r := newTestRouter(Config{AuthEnabled: true, JWTSecret: secret})

	token, err := jwtmw.NewGenerator(secret, time.Hour).GenerateToken("client-1")
	require.NoError(t, err)

	t.Run("health stays public", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("analyze without token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(analyzeBody))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("analyses without token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/analyses", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("analyze with token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(analyzeBody))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"event":"done"`)
	})
}

func TestNewRouter_CORS(t *testing.T) {
	r := newTestRouter(Config{AllowOrigins: []string{"https://app.example.com"}})

	req := httptest.NewRequest(http.MethodOptions, "/analyze", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg := LoadConfig()
	assert.True(t, cfg.AuthEnabled)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowOrigins)
}
