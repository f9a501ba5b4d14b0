package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"station-attendance-backend/internal/model"
)

type ViolationRepository interface {
	Insert(ctx context.Context, v *model.BoundaryViolation) error
	GetAll(ctx context.Context, onlyOpen bool) ([]model.BoundaryViolation, error)
	GetByOfficer(ctx context.Context, officerID uint) ([]model.BoundaryViolation, error)
	// Acknowledge sets the acknowledgement fields and nothing else.
	Acknowledge(ctx context.Context, id, adminID uint) error
}

type violationRepository struct {
	db *gorm.DB
}

func NewViolationRepository(db *gorm.DB) ViolationRepository {
	return &violationRepository{db}
}

func (r *violationRepository) Insert(ctx context.Context, v *model.BoundaryViolation) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *violationRepository) GetAll(ctx context.Context, onlyOpen bool) ([]model.BoundaryViolation, error) {
	query := r.db.WithContext(ctx).Order("created_at desc")
	if onlyOpen {
		query = query.Where("acknowledged = ?", false)
	}
	var violations []model.BoundaryViolation
	err := query.Find(&violations).Error
	return violations, err
}

func (r *violationRepository) GetByOfficer(ctx context.Context, officerID uint) ([]model.BoundaryViolation, error) {
	var violations []model.BoundaryViolation
	err := r.db.WithContext(ctx).
		Where("officer_id = ?", officerID).
		Order("created_at desc").
		Find(&violations).Error
	return violations, err
}

func (r *violationRepository) Acknowledge(ctx context.Context, id, adminID uint) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&model.BoundaryViolation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"acknowledged":    true,
			"acknowledged_by": adminID,
			"acknowledged_at": now,
		}).Error
}
