package adapters

import (
	"context"

	"company_intel/internal/feature/history/domain/entity"
	"company_intel/internal/feature/history/usecase"
)

// noopRepository is used when DB_DRIVER=none: nothing is stored and nothing is found.
type noopRepository struct{}

var _ usecase.AnalysisRepository = noopRepository{}

// NewNoopRepository returns a repository that discards writes.
func NewNoopRepository() usecase.AnalysisRepository { return noopRepository{} }

func (noopRepository) Create(context.Context, *entity.AnalysisRecord) error { return nil }

func (noopRepository) ListRecent(context.Context, int) ([]entity.AnalysisRecord, error) {
	return []entity.AnalysisRecord{}, nil
}

func (noopRepository) FindByID(context.Context, string) (*entity.AnalysisRecord, error) {
	return nil, usecase.ErrNotFound
}
