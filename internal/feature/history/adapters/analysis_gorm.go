// Package adapters はhistoryフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"company_intel/internal/feature/history/domain/entity"
	"company_intel/internal/feature/history/usecase"
)

// analysisGorm はAnalysisRepositoryインターフェースのGORM実装です（PostgreSQL / SQLite）。
type analysisGorm struct {
	db *gorm.DB
}

var _ usecase.AnalysisRepository = (*analysisGorm)(nil)

// NewAnalysisRepository は指定されたDB接続でanalysisGormリポジトリの新しいインスタンスを生成します。
func NewAnalysisRepository(db *gorm.DB) *analysisGorm {
	return &analysisGorm{db: db}
}

// Migrate はanalysis_recordsテーブルを作成・更新します。
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&entity.AnalysisRecord{})
}

// Create は1件の履歴を保存します。
func (r *analysisGorm) Create(ctx context.Context, rec *entity.AnalysisRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

// ListRecent はcreated_atの降順で最大limit件を返します。
func (r *analysisGorm) ListRecent(ctx context.Context, limit int) ([]entity.AnalysisRecord, error) {
	var recs []entity.AnalysisRecord
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

// FindByID はIDで1件を取得します。
func (r *analysisGorm) FindByID(ctx context.Context, id string) (*entity.AnalysisRecord, error) {
	var rec entity.AnalysisRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, usecase.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
