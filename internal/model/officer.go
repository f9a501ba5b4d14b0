package model

import "gorm.io/gorm"

const (
	RoleAdmin   = "ADMIN"
	RoleOfficer = "OFFICER"
)

type Officer struct {
	gorm.Model
	StationID uint   `json:"station_id"`
	Name      string `json:"name"`
	NIP       string `json:"nip" gorm:"column:nip;unique;not null"`
	Password  string `json:"-"`
	Email     string `json:"email"`
	Role      string `json:"role" gorm:"default:OFFICER"`
	IsActive  bool   `json:"is_active" gorm:"default:true"`

	Station Station `json:"station" gorm:"foreignKey:StationID"`
}
