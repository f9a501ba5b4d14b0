package model

import (
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"station-attendance-backend/internal/geofence"
)

type Station struct {
	gorm.Model
	Name       string `json:"name" gorm:"not null"`
	Address    string `json:"address"`
	AdminEmail string `json:"admin_email"`

	Officers  []Officer  `json:"officers"`
	Geofences []Geofence `json:"geofences"`
}

// Geofence is one authorized boundary for a station. A row may define a
// circle (center + radius), a polygon ring, or both; a point inside either
// shape counts as inside. Rows are deactivated, never hard-deleted, so
// historical punches keep a valid reference.
type Geofence struct {
	gorm.Model
	StationID uint   `json:"station_id"`
	Name      string `json:"name" gorm:"not null"`

	CenterLatitude  *float64 `json:"center_latitude"`
	CenterLongitude *float64 `json:"center_longitude"`
	RadiusMeter     *float64 `json:"radius_meter"`

	// PolygonVertices holds the ring as a JSON array of {latitude,longitude}
	// objects, empty when the geofence is circle-only.
	PolygonVertices string `json:"polygon_vertices"`

	IsActive bool `json:"is_active" gorm:"default:true"`
}

var ErrGeofenceShapeless = errors.New("geofence defines neither a circle nor a polygon")

// Zone converts the stored row into the pure validation type.
func (g *Geofence) Zone() (geofence.Zone, error) {
	zone := geofence.Zone{ID: g.ID, Name: g.Name}

	if g.CenterLatitude != nil && g.CenterLongitude != nil && g.RadiusMeter != nil {
		zone.Circle = &geofence.Circle{
			Center:       geofence.Point{Latitude: *g.CenterLatitude, Longitude: *g.CenterLongitude},
			RadiusMeters: *g.RadiusMeter,
		}
	}

	if g.PolygonVertices != "" {
		var vertices []geofence.Point
		if err := json.Unmarshal([]byte(g.PolygonVertices), &vertices); err != nil {
			return geofence.Zone{}, err
		}
		if len(vertices) < 3 {
			return geofence.Zone{}, errors.New("polygon needs at least 3 vertices")
		}
		zone.Polygon = &geofence.Polygon{Vertices: vertices}
	}

	if zone.Circle == nil && zone.Polygon == nil {
		return geofence.Zone{}, ErrGeofenceShapeless
	}
	return zone, nil
}

// SetPolygon serializes the ring into the row.
func (g *Geofence) SetPolygon(vertices []geofence.Point) error {
	if len(vertices) < 3 {
		return errors.New("polygon needs at least 3 vertices")
	}
	raw, err := json.Marshal(vertices)
	if err != nil {
		return err
	}
	g.PolygonVertices = string(raw)
	return nil
}
