// Package handler はhistoryフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"company_intel/internal/api"
	"company_intel/internal/feature/history/domain/entity"
	"company_intel/internal/feature/history/usecase"
)

// HistoryUsecase は分析履歴のユースケースインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type HistoryUsecase interface {
	List(ctx context.Context, limit int) ([]entity.AnalysisRecord, error)
	Get(ctx context.Context, id string) (*entity.AnalysisRecord, error)
}

// HistoryHandler は分析履歴に関するHTTPリクエストを処理します。
type HistoryHandler struct {
	uc HistoryUsecase
}

// NewHistoryHandler は新しい HistoryHandler を作成します。
func NewHistoryHandler(uc HistoryUsecase) *HistoryHandler {
	return &HistoryHandler{uc: uc}
}

// List は直近の分析履歴を返します。
//
// エンドポイント: GET /analyses?limit=N
func (h *HistoryHandler) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = n
	}

	recs, err := h.uc.List(c.Request.Context(), limit)
	if err != nil {
		slog.Error("failed to list analyses", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list analyses"})
		return
	}
	out := make([]api.AnalysisRecordResponse, 0, len(recs))
	for i := range recs {
		out = append(out, toResponse(&recs[i]))
	}
	c.JSON(http.StatusOK, api.AnalysisListResponse{Analyses: out})
}

// Get は1件の分析履歴を返します。
//
// エンドポイント: GET /analyses/:id
func (h *HistoryHandler) Get(c *gin.Context) {
	rec, err := h.uc.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, usecase.ErrNotFound) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "analysis not found"})
		return
	}
	if err != nil {
		slog.Error("failed to get analysis", "error", err, "id", c.Param("id"))
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to get analysis"})
		return
	}
	c.JSON(http.StatusOK, toResponse(rec))
}

func toResponse(r *entity.AnalysisRecord) api.AnalysisRecordResponse {
	return api.AnalysisRecordResponse{
		ID:          r.ID,
		CompanyName: r.CompanyName,
		Website:     r.Website,
		Query:       r.Query,
		Intent:      r.Intent,
		Agent:       r.Agent,
		Answer:      r.Answer,
		Status:      r.Status,
		Error:       r.Error,
		EventCount:  r.EventCount,
		DurationMS:  r.DurationMS,
		CreatedAt:   r.CreatedAt,
	}
}
