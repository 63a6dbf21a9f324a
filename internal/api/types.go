// Package api はHTTP APIのリクエスト・レスポンス型を定義します。
package api

import "time"

// ErrorResponse はエラー時の共通レスポンスです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// AnalyzeRequest は POST /analyze のリクエストボディです。
type AnalyzeRequest struct {
	CompanyName string `json:"company_name" binding:"required,max=200"`
	Website     string `json:"website" binding:"max=500"`
	Query       string `json:"query" binding:"required,max=2000"`
}

// EventResponse はストリームの1イベントです。
type EventResponse struct {
	Agent   string `json:"agent"`
	Event   string `json:"event"`
	Content string `json:"content"`
}

// AnalysisRecordResponse は分析履歴1件です。
type AnalysisRecordResponse struct {
	ID          string    `json:"id"`
	CompanyName string    `json:"company_name"`
	Website     string    `json:"website,omitempty"`
	Query       string    `json:"query"`
	Intent      string    `json:"intent,omitempty"`
	Agent       string    `json:"agent,omitempty"`
	Answer      string    `json:"answer,omitempty"`
	Status      string    `json:"status"`
	Error       string    `json:"error,omitempty"`
	EventCount  int       `json:"event_count"`
	DurationMS  int64     `json:"duration_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

// AnalysisListResponse は GET /analyses のレスポンスです。
type AnalysisListResponse struct {
	Analyses []AnalysisRecordResponse `json:"analyses"`
}

// HealthResponse は GET /healthz のレスポンスです。
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}
