package config

import (
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"station-attendance-backend/internal/model"
)

var DB *gorm.DB

func ConnectDB() {
	dsn := fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		GetEnv("DB_USER", "root"),
		GetEnv("DB_PASSWORD", ""),
		GetEnv("DB_HOST", "127.0.0.1"),
		GetEnv("DB_PORT", "3306"),
		GetEnv("DB_NAME", "station_attendance"),
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// Auto migration keeps the schema in step with the model structs.
	if err := db.AutoMigrate(
		&model.Station{},
		&model.Officer{},
		&model.Geofence{},
		&model.Shift{},
		&model.ShiftAssignment{},
		&model.PunchEvent{},
		&model.BoundaryViolation{},
	); err != nil {
		log.Fatalf("auto migration failed: %v", err)
	}

	DB = db
}
