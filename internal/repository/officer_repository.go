package repository

import (
	"context"

	"gorm.io/gorm"

	"station-attendance-backend/internal/model"
)

type OfficerRepository interface {
	FindByNIP(ctx context.Context, nip string) (*model.Officer, error)
	FindByID(ctx context.Context, id uint) (*model.Officer, error)
	Create(ctx context.Context, officer *model.Officer) error
}

type officerRepository struct {
	db *gorm.DB
}

func NewOfficerRepository(db *gorm.DB) OfficerRepository {
	return &officerRepository{db}
}

func (r *officerRepository) FindByNIP(ctx context.Context, nip string) (*model.Officer, error) {
	var officer model.Officer
	err := r.db.WithContext(ctx).Preload("Station").Where("nip = ?", nip).First(&officer).Error
	return &officer, err
}

func (r *officerRepository) FindByID(ctx context.Context, id uint) (*model.Officer, error) {
	var officer model.Officer
	err := r.db.WithContext(ctx).Preload("Station").First(&officer, id).Error
	return &officer, err
}

func (r *officerRepository) Create(ctx context.Context, officer *model.Officer) error {
	return r.db.WithContext(ctx).Create(officer).Error
}
