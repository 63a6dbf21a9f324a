// Package usecase は分析履歴の保存と参照を実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	analysis "company_intel/internal/feature/analysis/usecase"
	"company_intel/internal/feature/history/domain/entity"
)

const (
	// DefaultListLimit は limit 未指定時の件数です。
	DefaultListLimit = 20
	// MaxListLimit は1回に返す最大件数です。
	MaxListLimit = 100
)

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("analysis record not found")

// AnalysisRepository は分析履歴の永続化インターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type AnalysisRepository interface {
	Create(ctx context.Context, rec *entity.AnalysisRecord) error
	// ListRecent returns at most limit records, newest first.
	ListRecent(ctx context.Context, limit int) ([]entity.AnalysisRecord, error)
	// FindByID returns ErrNotFound when id is unknown.
	FindByID(ctx context.Context, id string) (*entity.AnalysisRecord, error)
}

// HistoryUsecase stores run summaries and serves them back.
type HistoryUsecase struct {
	repo  AnalysisRepository
	newID func() string
}

// HistoryUsecaseがAnalysisRecorderを実装していることをコンパイル時に検証します。
var _ analysis.AnalysisRecorder = (*HistoryUsecase)(nil)

// NewHistoryUsecase はHistoryUsecaseの新しいインスタンスを生成します。
func NewHistoryUsecase(repo AnalysisRepository) *HistoryUsecase {
	return &HistoryUsecase{repo: repo, newID: func() string { return uuid.NewString() }}
}

// Record converts a finished run into an AnalysisRecord and stores it.
func (u *HistoryUsecase) Record(ctx context.Context, run analysis.RunSummary) error {
	rec := &entity.AnalysisRecord{
		ID:          u.newID(),
		CompanyName: run.Request.CompanyName,
		Website:     run.Request.Website,
		Query:       run.Request.Query,
		Intent:      string(run.Intent),
		Agent:       run.Agent,
		Answer:      run.Answer,
		Status:      entity.StatusCompleted,
		EventCount:  run.EventCount,
		DurationMS:  run.Duration.Milliseconds(),
		CreatedAt:   run.StartedAt.UTC(),
	}
	if run.Err != nil {
		rec.Status = entity.StatusFailed
		rec.Error = run.Err.Error()
	}
	if err := u.repo.Create(ctx, rec); err != nil {
		return fmt.Errorf("store analysis record: %w", err)
	}
	return nil
}

// List returns the newest records. limit <= 0 means DefaultListLimit; values above MaxListLimit are capped.
func (u *HistoryUsecase) List(ctx context.Context, limit int) ([]entity.AnalysisRecord, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return u.repo.ListRecent(ctx, limit)
}

// Get returns one record. Ids that are not UUIDs are reported as ErrNotFound.
func (u *HistoryUsecase) Get(ctx context.Context, id string) (*entity.AnalysisRecord, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	return u.repo.FindByID(ctx, id)
}
