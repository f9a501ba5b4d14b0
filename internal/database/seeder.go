package database

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"station-attendance-backend/internal/geofence"
	"station-attendance-backend/internal/model"
)

// SeedAll provisions a station with sample geofences, shifts and accounts so
// the API is usable right after a fresh migration.
func SeedAll(db *gorm.DB) {
	station := model.Station{Name: "Central Station", AdminEmail: "admin@station.local"}
	db.FirstOrCreate(&station, model.Station{Name: station.Name})

	centerLat, centerLng, radius := 12.9716, 77.5946, 500.0
	circle := model.Geofence{
		StationID:       station.ID,
		Name:            "Headquarters perimeter",
		CenterLatitude:  &centerLat,
		CenterLongitude: &centerLng,
		RadiusMeter:     &radius,
		IsActive:        true,
	}
	db.FirstOrCreate(&circle, model.Geofence{StationID: station.ID, Name: circle.Name})

	annex := model.Geofence{
		StationID: station.ID,
		Name:      "Annex compound",
		IsActive:  true,
	}
	if err := annex.SetPolygon([]geofence.Point{
		{Latitude: 12.9680, Longitude: 77.5900},
		{Latitude: 12.9680, Longitude: 77.5930},
		{Latitude: 12.9700, Longitude: 77.5930},
		{Latitude: 12.9700, Longitude: 77.5900},
	}); err != nil {
		log.Fatalf("seed annex polygon: %v", err)
	}
	db.FirstOrCreate(&annex, model.Geofence{StationID: station.ID, Name: annex.Name})

	dayShift := model.Shift{StationID: station.ID, Name: "Day", StartTime: "09:00", EndTime: "17:00"}
	db.FirstOrCreate(&dayShift, model.Shift{StationID: station.ID, Name: dayShift.Name})

	// Overnight shift: ends the next day.
	nightShift := model.Shift{StationID: station.ID, Name: "Night", StartTime: "22:00", EndTime: "06:00"}
	db.FirstOrCreate(&nightShift, model.Shift{StationID: station.ID, Name: nightShift.Name})

	adminPassword, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := model.Officer{
		StationID: station.ID,
		Name:      "Station Admin",
		NIP:       "100001",
		Password:  string(adminPassword),
		Email:     "admin@station.local",
		Role:      model.RoleAdmin,
		IsActive:  true,
	}
	db.FirstOrCreate(&admin, model.Officer{NIP: admin.NIP})

	officerPassword, _ := bcrypt.GenerateFromPassword([]byte("officer123"), bcrypt.DefaultCost)
	officer := model.Officer{
		StationID: station.ID,
		Name:      "Sample Officer",
		NIP:       "200001",
		Password:  string(officerPassword),
		Email:     "officer@station.local",
		Role:      model.RoleOfficer,
		IsActive:  true,
	}
	db.FirstOrCreate(&officer, model.Officer{NIP: officer.NIP})

	today := time.Now().Format("2006-01-02")
	assignment := model.ShiftAssignment{
		OfficerID: officer.ID,
		ShiftID:   dayShift.ID,
		Date:      today,
		IsActive:  true,
	}
	db.FirstOrCreate(&assignment, model.ShiftAssignment{OfficerID: officer.ID, Date: today})
}
