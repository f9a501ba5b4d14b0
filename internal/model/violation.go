package model

import (
	"time"

	"gorm.io/gorm"
)

// BoundaryViolation records that an officer was detected outside every active
// geofence while holding an open shift. Acknowledgement is the only mutation
// a row ever receives.
type BoundaryViolation struct {
	gorm.Model
	OfficerID uint  `json:"officer_id" gorm:"index"`
	ShiftID   *uint `json:"shift_id"`

	// GeofenceID references the nearest zone, nil when no geofence exists.
	GeofenceID    *uint    `json:"geofence_id"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	DistanceMeter *float64 `json:"distance_meter"`

	Acknowledged   bool       `json:"acknowledged" gorm:"default:false"`
	AcknowledgedBy *uint      `json:"acknowledged_by"`
	AcknowledgedAt *time.Time `json:"acknowledged_at"`
}
