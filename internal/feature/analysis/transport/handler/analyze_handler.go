// Package handler はanalysisフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"company_intel/internal/api"
	"company_intel/internal/feature/analysis/domain/entity"
)

const (
	contentTypeNDJSON = "application/x-ndjson"
	contentTypeSSE    = "text/event-stream"
)

// Analyzer は分析パイプラインのインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type Analyzer interface {
	Run(ctx context.Context, req entity.UserRequest) <-chan entity.AgentEvent
}

// AnalyzeHandler は企業分析リクエストを処理し、進捗イベントをストリームで返します。
type AnalyzeHandler struct {
	analyzer Analyzer
}

// NewAnalyzeHandler はAnalyzeHandlerの新しいインスタンスを生成します。
func NewAnalyzeHandler(a Analyzer) *AnalyzeHandler {
	return &AnalyzeHandler{analyzer: a}
}

// Analyze はパイプラインを実行し、イベントを1件ずつフラッシュしながら返します。
//
// エンドポイント: POST /analyze
// Content-Type: application/json
// レスポンス: application/x-ndjson（Accept: text/event-stream の場合はSSE）
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req api.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("analyze request validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "company_name and query are required"})
		return
	}
	in := entity.UserRequest{
		CompanyName: strings.TrimSpace(req.CompanyName),
		Website:     strings.TrimSpace(req.Website),
		Query:       strings.TrimSpace(req.Query),
	}
	if in.CompanyName == "" || in.Query == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "company_name and query are required"})
		return
	}

	sse := strings.Contains(c.GetHeader("Accept"), contentTypeSSE)
	contentType := contentTypeNDJSON
	if sse {
		contentType = contentTypeSSE
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	slog.Info("analysis started", "company", in.CompanyName, "website", in.Website, "stream", contentType)
	events := h.analyzer.Run(ctx, in)

	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	enc := json.NewEncoder(c.Writer)
	enc.SetEscapeHTML(false)
	broken := false
	var last entity.EventKind
	// drain until the producer closes the channel, even after a write failure
	for ev := range events {
		last = ev.Kind
		if broken {
			continue
		}
		out := api.EventResponse{Agent: ev.Agent, Event: string(ev.Kind), Content: ev.Content}
		if sse {
			data, err := json.Marshal(out)
			if err != nil {
				slog.Error("failed to encode event", "error", err)
				continue
			}
			c.SSEvent("message", string(data))
		} else if err := enc.Encode(out); err != nil {
			slog.Warn("client write failed, stopping analysis", "error", err)
			broken = true
			cancel()
			continue
		}
		c.Writer.Flush()
	}
	if !last.IsTerminal() {
		slog.Info("analysis stream ended without a terminal event", "company", in.CompanyName)
	}
}
