// Package entity defines the domain models for the history feature.
package entity

import "time"

// Status values of an AnalysisRecord.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// AnalysisRecord is the stored outcome of one analysis run.
type AnalysisRecord struct {
	ID          string    `gorm:"primaryKey;size:36"`
	CompanyName string    `gorm:"size:200;not null;index"`
	Website     string    `gorm:"size:500"`
	Query       string    `gorm:"type:text;not null"`
	Intent      string    `gorm:"size:50"`
	Agent       string    `gorm:"size:50"`
	Answer      string    `gorm:"type:text"`
	Status      string    `gorm:"size:20;not null"`
	Error       string    `gorm:"type:text"`
	EventCount  int       `gorm:"not null;default:0"`
	DurationMS  int64     `gorm:"not null;default:0"`
	CreatedAt   time.Time `gorm:"not null;index"`
}

// TableName overrides the gorm default.
func (AnalysisRecord) TableName() string { return "analysis_records" }
