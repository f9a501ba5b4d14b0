package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"station-attendance-backend/internal/geofence"
	"station-attendance-backend/internal/model"
	"station-attendance-backend/internal/repository"
)

type GeofenceHandler struct {
	repo repository.GeofenceRepository
}

func NewGeofenceHandler(repo repository.GeofenceRepository) *GeofenceHandler {
	return &GeofenceHandler{repo: repo}
}

type GeofenceRequest struct {
	Name            string           `json:"name"`
	CenterLatitude  *float64         `json:"center_latitude"`
	CenterLongitude *float64         `json:"center_longitude"`
	RadiusMeter     *float64         `json:"radius_meter"`
	PolygonVertices []geofence.Point `json:"polygon_vertices"`
}

func (h *GeofenceHandler) GetAll(c *fiber.Ctx) error {
	stationID := uint(c.Locals("station_id").(float64))
	fences, err := h.repo.GetAll(c.Context(), stationID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load geofences"})
	}
	return c.JSON(fiber.Map{"data": fences})
}

func (h *GeofenceHandler) Create(c *fiber.Ctx) error {
	stationID := uint(c.Locals("station_id").(float64))

	var req GeofenceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	fence := model.Geofence{
		StationID:       stationID,
		Name:            req.Name,
		CenterLatitude:  req.CenterLatitude,
		CenterLongitude: req.CenterLongitude,
		RadiusMeter:     req.RadiusMeter,
		IsActive:        true,
	}
	if len(req.PolygonVertices) > 0 {
		if err := fence.SetPolygon(req.PolygonVertices); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}
	// Reject rows no containment test could ever match.
	if _, err := fence.Zone(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geofence needs a circle (center + radius) or a polygon"})
	}

	if err := h.repo.Create(c.Context(), &fence); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create geofence"})
	}
	return c.JSON(fiber.Map{"message": "Geofence created", "data": fence})
}

func (h *GeofenceHandler) Update(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))

	var req GeofenceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	fence, err := h.repo.GetByID(c.Context(), uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Geofence not found"})
	}

	if req.Name != "" {
		fence.Name = req.Name
	}
	fence.CenterLatitude = req.CenterLatitude
	fence.CenterLongitude = req.CenterLongitude
	fence.RadiusMeter = req.RadiusMeter
	fence.PolygonVertices = ""
	if len(req.PolygonVertices) > 0 {
		if err := fence.SetPolygon(req.PolygonVertices); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}
	if _, err := fence.Zone(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geofence needs a circle (center + radius) or a polygon"})
	}

	if err := h.repo.Update(c.Context(), fence); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update geofence"})
	}
	return c.JSON(fiber.Map{"message": "Geofence updated", "data": fence})
}

// Deactivate soft-deletes. Historical punches keep their geofence reference.
func (h *GeofenceHandler) Deactivate(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	if err := h.repo.Deactivate(c.Context(), uint(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to deactivate geofence"})
	}
	return c.JSON(fiber.Map{"message": "Geofence deactivated"})
}

// CheckLocation previews the containment result for the caller's position
// without recording anything.
func (h *GeofenceHandler) CheckLocation(c *fiber.Ctx) error {
	stationID := uint(c.Locals("station_id").(float64))

	var req LocationRequest
	if err := c.BodyParser(&req); err != nil || req.Latitude == nil || req.Longitude == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "latitude and longitude are required"})
	}

	zones, err := h.repo.ActiveZones(c.Context(), stationID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load geofences"})
	}

	result := geofence.Validate(geofence.Point{Latitude: *req.Latitude, Longitude: *req.Longitude}, zones)

	resp := fiber.Map{"within_geofence": result.Inside}
	if result.Matched != nil {
		resp["matched_geofence"] = fiber.Map{"id": result.Matched.ID, "name": result.Matched.Name}
	}
	if result.DistanceToNearest != nil {
		resp["distance_to_nearest"] = *result.DistanceToNearest
	}
	return c.JSON(resp)
}
