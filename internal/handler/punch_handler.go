package handler

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"station-attendance-backend/internal/compliance"
	"station-attendance-backend/internal/geofence"
	"station-attendance-backend/internal/model"
	"station-attendance-backend/internal/punch"
	"station-attendance-backend/internal/repository"
)

type PunchHandler struct {
	service   *punch.Service
	punchRepo repository.PunchRepository
	shiftRepo repository.ShiftRepository
}

func NewPunchHandler(service *punch.Service, punchRepo repository.PunchRepository, shiftRepo repository.ShiftRepository) *PunchHandler {
	return &PunchHandler{service: service, punchRepo: punchRepo, shiftRepo: shiftRepo}
}

// LocationRequest is the reported device position. Pointers distinguish "not
// sent" from a genuine zero coordinate.
type LocationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// reportedLocation adapts a request body to punch.LocationProvider. A missing
// coordinate surfaces as a location failure, not as a stale fallback.
type reportedLocation struct {
	req LocationRequest
}

func (l reportedLocation) CurrentPosition(_ context.Context) (geofence.Point, error) {
	if l.req.Latitude == nil || l.req.Longitude == nil {
		return geofence.Point{}, errors.New("no coordinates reported")
	}
	return geofence.Point{Latitude: *l.req.Latitude, Longitude: *l.req.Longitude}, nil
}

func (h *PunchHandler) PunchIn(c *fiber.Ctx) error {
	return h.recordPunch(c, model.PunchKindIn)
}

func (h *PunchHandler) PunchOut(c *fiber.Ctx) error {
	return h.recordPunch(c, model.PunchKindOut)
}

func (h *PunchHandler) recordPunch(c *fiber.Ctx, kind string) error {
	officerID := uint(c.Locals("user_id").(float64))
	stationID := uint(c.Locals("station_id").(float64))

	var req LocationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	event, result, err := h.service.RecordPunch(c.Context(), officerID, stationID, kind, reportedLocation{req})
	if err != nil {
		return punchError(c, err)
	}

	resp := fiber.Map{
		"message":         "Punch recorded",
		"event":           event,
		"within_geofence": event.WithinGeofence,
	}
	if result != nil {
		resp["status"] = result.Status
		resp["compliance"] = result
	}
	return c.JSON(resp)
}

// Status restores the UI toggle after a reload: derived punch state plus the
// current or upcoming shift window and the grace countdown.
func (h *PunchHandler) Status(c *fiber.Ctx) error {
	officerID := uint(c.Locals("user_id").(float64))
	now := time.Now()

	state, err := h.service.CurrentState(c.Context(), officerID)
	if err != nil {
		return punchError(c, err)
	}

	resp := fiber.Map{"state": state}

	current, err := h.shiftRepo.CurrentWindow(c.Context(), officerID, now)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to resolve shift"})
	}
	if current != nil {
		resp["current_shift"] = shiftInfo(current)
		resp["grace_period"] = compliance.GracePeriodInfo(current.Window.Start, now)
	} else {
		upcoming, err := h.shiftRepo.UpcomingWindow(c.Context(), officerID, now)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to resolve shift"})
		}
		if upcoming != nil {
			resp["upcoming_shift"] = shiftInfo(upcoming)
		}
	}

	return c.JSON(resp)
}

func shiftInfo(w *punch.ShiftWindow) fiber.Map {
	return fiber.Map{
		"shift_id": w.ShiftID,
		"name":     w.Name,
		"start":    w.Window.Start,
		"end":      w.Window.End,
	}
}

func (h *PunchHandler) History(c *fiber.Ctx) error {
	officerID := uint(c.Locals("user_id").(float64))
	month := c.Query("month")
	year := c.Query("year")

	var history []model.PunchEvent
	var err error
	if month != "" && year != "" {
		history, err = h.punchRepo.GetByMonth(c.Context(), officerID, month, year)
	} else {
		history, err = h.punchRepo.GetHistory(c.Context(), officerID)
	}
	if errors.Is(err, repository.ErrInvalidPeriod) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "month must be 1-12 and year a valid number"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load punch history"})
	}

	return c.JSON(fiber.Map{"data": history})
}

// Recap aggregates one month of punches by compliance status.
func (h *PunchHandler) Recap(c *fiber.Ctx) error {
	officerID := uint(c.Locals("user_id").(float64))
	month := c.Query("month")
	year := c.Query("year")
	if month == "" || year == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "month and year are required"})
	}

	events, err := h.punchRepo.GetByMonth(c.Context(), officerID, month, year)
	if errors.Is(err, repository.ErrInvalidPeriod) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "month must be 1-12 and year a valid number"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load recap"})
	}

	counts := map[string]int{}
	for _, e := range events {
		if e.Status != "" {
			counts[e.Status]++
		}
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"on_time":         counts[string(compliance.StatusOnTime)],
			"late":            counts[string(compliance.StatusLate)],
			"early_departure": counts[string(compliance.StatusEarlyDeparture)],
			"overtime":        counts[string(compliance.StatusOvertime)],
			"detail":          events,
		},
	})
}

// ReportLocation is the background polling input: it validates the reported
// position and records a boundary violation when the officer is outside all
// zones during an open shift.
func (h *PunchHandler) ReportLocation(c *fiber.Ctx) error {
	officerID := uint(c.Locals("user_id").(float64))
	stationID := uint(c.Locals("station_id").(float64))

	var req LocationRequest
	if err := c.BodyParser(&req); err != nil || req.Latitude == nil || req.Longitude == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "latitude and longitude are required"})
	}

	point := geofence.Point{Latitude: *req.Latitude, Longitude: *req.Longitude}
	result, violation, err := h.service.TrackLocation(c.Context(), officerID, stationID, point)
	if err != nil {
		return punchError(c, err)
	}

	resp := fiber.Map{"within_geofence": result.Inside}
	if result.DistanceToNearest != nil {
		resp["distance_to_nearest"] = *result.DistanceToNearest
	}
	if violation != nil {
		resp["violation_id"] = violation.ID
	}
	return c.JSON(resp)
}

// punchError maps the service's rejection taxonomy onto HTTP statuses, always
// forwarding the human-readable message.
func punchError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, punch.ErrLocationUnavailable),
		errors.Is(err, punch.ErrNoActiveShift),
		errors.Is(err, punch.ErrShiftEnded),
		errors.Is(err, punch.ErrInvalidPunchOrder),
		errors.Is(err, punch.ErrAlreadyPunchedIn),
		errors.Is(err, punch.ErrNotPunchedIn):
		status = fiber.StatusBadRequest
	case errors.Is(err, punch.ErrStoreUnavailable):
		status = fiber.StatusServiceUnavailable
	}

	message := err.Error()
	var rejection *punch.Rejection
	if errors.As(err, &rejection) {
		message = rejection.Message
	}
	return c.Status(status).JSON(fiber.Map{"error": message})
}
