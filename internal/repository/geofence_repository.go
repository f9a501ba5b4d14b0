package repository

import (
	"context"
	"log"

	"gorm.io/gorm"

	"station-attendance-backend/internal/geofence"
	"station-attendance-backend/internal/model"
)

type GeofenceRepository interface {
	GetAll(ctx context.Context, stationID uint) ([]model.Geofence, error)
	GetByID(ctx context.Context, id uint) (*model.Geofence, error)
	Create(ctx context.Context, g *model.Geofence) error
	Update(ctx context.Context, g *model.Geofence) error
	// Deactivate soft-deletes by flag; rows are kept for punch history.
	Deactivate(ctx context.Context, id uint) error
	// ActiveZones satisfies punch.GeofenceStore.
	ActiveZones(ctx context.Context, stationID uint) ([]geofence.Zone, error)
}

type geofenceRepository struct {
	db *gorm.DB
}

func NewGeofenceRepository(db *gorm.DB) GeofenceRepository {
	return &geofenceRepository{db}
}

func (r *geofenceRepository) GetAll(ctx context.Context, stationID uint) ([]model.Geofence, error) {
	var fences []model.Geofence
	err := r.db.WithContext(ctx).Where("station_id = ?", stationID).Find(&fences).Error
	return fences, err
}

func (r *geofenceRepository) GetByID(ctx context.Context, id uint) (*model.Geofence, error) {
	var fence model.Geofence
	err := r.db.WithContext(ctx).First(&fence, id).Error
	return &fence, err
}

func (r *geofenceRepository) Create(ctx context.Context, g *model.Geofence) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *geofenceRepository) Update(ctx context.Context, g *model.Geofence) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *geofenceRepository) Deactivate(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&model.Geofence{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *geofenceRepository) ActiveZones(ctx context.Context, stationID uint) ([]geofence.Zone, error) {
	var fences []model.Geofence
	err := r.db.WithContext(ctx).
		Where("station_id = ? AND is_active = ?", stationID, true).
		Order("id asc").
		Find(&fences).Error
	if err != nil {
		return nil, err
	}

	zones := make([]geofence.Zone, 0, len(fences))
	for i := range fences {
		zone, err := fences[i].Zone()
		if err != nil {
			// A malformed row must not take punching down for the whole
			// station; skip it and leave a trace for the admin.
			log.Printf("repository: geofence %d skipped: %v", fences[i].ID, err)
			continue
		}
		zones = append(zones, zone)
	}
	return zones, nil
}
