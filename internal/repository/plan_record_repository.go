package repository

import (
	"fmt"

	"gorm.io/gorm"

	"freewen/internal/model"
)

type PlanRecordRepository struct {
	db *gorm.DB
}

func NewPlanRecordRepository(db *gorm.DB) *PlanRecordRepository {
	return &PlanRecordRepository{db: db}
}

func (r *PlanRecordRepository) Create(rec *model.PlanRecord) error {
	if err := r.db.Create(rec).Error; err != nil {
		return fmt.Errorf("create plan record failed: %w", err)
	}
	return nil
}

func (r *PlanRecordRepository) ListByWorkspaceID(workspaceID string, limit int) ([]model.PlanRecord, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var records []model.PlanRecord
	if err := r.db.Where("workspace_id = ?", workspaceID).
		Order("created_at DESC").Limit(limit).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list plan records failed: %w", err)
	}
	return records, nil
}
