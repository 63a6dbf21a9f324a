package di

import (
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	historyadapters "company_intel/internal/feature/history/adapters"
	"company_intel/internal/feature/history/usecase"
	"company_intel/internal/platform/db"
)

// NewHistoryRepository opens the configured database and migrates the history table.
// DB_DRIVER=none returns an in-process no-op repository and a nil *gorm.DB.
func NewHistoryRepository(cfg db.Config) (usecase.AnalysisRepository, *gorm.DB, error) {
	gdb, err := db.Open(cfg)
	if errors.Is(err, db.ErrDisabled) {
		slog.Info("analysis history disabled", "driver", cfg.Driver)
		return historyadapters.NewNoopRepository(), nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := historyadapters.Migrate(gdb); err != nil {
		return nil, nil, fmt.Errorf("migrate history: %w", err)
	}
	slog.Info("analysis history enabled", "driver", cfg.Driver)
	return historyadapters.NewAnalysisRepository(gdb), gdb, nil
}
