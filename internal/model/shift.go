package model

import "gorm.io/gorm"

// Shift is a named work window. Times are stored as "15:04" strings; an end
// time at or before the start time means the shift ends on the next day
// (overnight shifts are supported).
type Shift struct {
	gorm.Model
	StationID uint   `json:"station_id"`
	Name      string `json:"name"`
	StartTime string `json:"start_time"` // "07:30"
	EndTime   string `json:"end_time"`   // "16:00"
}

// ShiftAssignment schedules one officer on one shift for one calendar date.
type ShiftAssignment struct {
	gorm.Model
	OfficerID uint   `json:"officer_id" gorm:"uniqueIndex:idx_assignment_officer_date"`
	ShiftID   uint   `json:"shift_id"`
	Date      string `json:"date" gorm:"uniqueIndex:idx_assignment_officer_date;size:10"` // "2006-01-02"
	IsActive  bool   `json:"is_active" gorm:"default:true"`

	Shift Shift `json:"shift" gorm:"foreignKey:ShiftID"`
}
