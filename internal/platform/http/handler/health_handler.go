// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"company_intel/internal/api"
)

// Check は依存先（DB、Redisなど）の疎通確認関数です。
type Check func(ctx context.Context) error

// HealthHandler は /healthz を処理し、登録された依存先を確認します。
type HealthHandler struct {
	checks  map[string]Check
	timeout time.Duration
}

// NewHealthHandler は新しい HealthHandler を作成します。checks が空なら常に ok を返します。
func NewHealthHandler(checks map[string]Check) *HealthHandler {
	return &HealthHandler{checks: checks, timeout: 2 * time.Second}
}

// Health はサービスヘルスチェック用の /healthz エンドポイントを処理します。
// いずれかの確認に失敗した場合は503と "degraded" を返します。
func (h *HealthHandler) Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	if c.Request.Method == http.MethodOptions {
		c.Status(http.StatusNoContent)
		return
	}

	resp, code := h.run(c.Request.Context())
	if c.Request.Method == http.MethodHead {
		c.Status(code)
		return
	}
	c.JSON(code, resp)
}

func (h *HealthHandler) run(ctx context.Context) (api.HealthResponse, int) {
	resp := api.HealthResponse{Status: "ok"}
	if len(h.checks) == 0 {
		return resp, http.StatusOK
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	code := http.StatusOK
	resp.Checks = make(map[string]string, len(h.checks))
	// 依存先ごとに並行して確認する
	for name, check := range h.checks {
		g.Go(func() error {
			err := check(ctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				slog.Warn("health check failed", "check", name, "error", err)
				resp.Checks[name] = "error: " + err.Error()
				resp.Status = "degraded"
				code = http.StatusServiceUnavailable
				return nil
			}
			resp.Checks[name] = "ok"
			return nil
		})
	}
	_ = g.Wait()
	return resp, code
}
