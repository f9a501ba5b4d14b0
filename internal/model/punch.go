package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	PunchKindIn  = "in"
	PunchKindOut = "out"
)

// PunchEvent is one append-only attendance fact. Rows are never updated; the
// "currently punched in" state is derived from the latest row of the day.
type PunchEvent struct {
	gorm.Model
	OfficerID uint      `json:"officer_id" gorm:"index"`
	Kind      string    `json:"kind"` // in / out
	PunchedAt time.Time `json:"punched_at"`
	Day       string    `json:"day" gorm:"index"` // "2006-01-02", server-local

	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	// Geofence result at punch time.
	WithinGeofence bool     `json:"within_geofence"`
	GeofenceID     *uint    `json:"geofence_id"`
	DistanceMeter  *float64 `json:"distance_meter"` // to nearest zone center when outside

	// Shift compliance, empty when no shift was in force.
	ShiftID         *uint  `json:"shift_id"`
	Status          string `json:"status"` // on_time / late / early_departure / overtime
	MinutesLate     int    `json:"minutes_late"`
	MinutesEarly    int    `json:"minutes_early"`
	OvertimeMinutes int    `json:"overtime_minutes"`
	GracePeriodUsed bool   `json:"grace_period_used"`
}
