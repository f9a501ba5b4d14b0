package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"station-attendance-backend/internal/model"
	"station-attendance-backend/internal/repository"
)

type ShiftHandler struct {
	repo repository.ShiftRepository
}

func NewShiftHandler(repo repository.ShiftRepository) *ShiftHandler {
	return &ShiftHandler{repo: repo}
}

func (h *ShiftHandler) GetAll(c *fiber.Ctx) error {
	stationID := uint(c.Locals("station_id").(float64))
	shifts, err := h.repo.GetAll(c.Context(), stationID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load shifts"})
	}
	return c.JSON(fiber.Map{"data": shifts})
}

func (h *ShiftHandler) Create(c *fiber.Ctx) error {
	stationID := uint(c.Locals("station_id").(float64))

	var shift model.Shift
	if err := c.BodyParser(&shift); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	shift.StationID = stationID

	if err := h.repo.Create(c.Context(), &shift); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Shift created", "data": shift})
}

func (h *ShiftHandler) Update(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))

	var req model.Shift
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	shift, err := h.repo.GetByID(c.Context(), uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Shift not found"})
	}

	shift.Name = req.Name
	shift.StartTime = req.StartTime
	shift.EndTime = req.EndTime

	if err := h.repo.Update(c.Context(), shift); err != nil {
		if errors.Is(err, repository.ErrShiftReferenced) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Shift already has punch records and can no longer be edited"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Shift updated", "data": shift})
}

func (h *ShiftHandler) Delete(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	if err := h.repo.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, repository.ErrShiftReferenced) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Shift already has punch records and cannot be deleted"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete shift"})
	}
	return c.JSON(fiber.Map{"message": "Shift deleted"})
}

type AssignRequest struct {
	OfficerID uint   `json:"officer_id"`
	ShiftID   uint   `json:"shift_id"`
	Date      string `json:"date"` // "2006-01-02"
}

// Assign schedules an officer on a shift for one date, replacing any
// previous assignment for that date.
func (h *ShiftHandler) Assign(c *fiber.Ctx) error {
	var req AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.OfficerID == 0 || req.ShiftID == 0 || req.Date == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "officer_id, shift_id and date are required"})
	}

	assignment := model.ShiftAssignment{
		OfficerID: req.OfficerID,
		ShiftID:   req.ShiftID,
		Date:      req.Date,
		IsActive:  true,
	}
	if err := h.repo.UpsertAssignment(c.Context(), &assignment); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save assignment"})
	}
	return c.JSON(fiber.Map{"message": "Assignment saved", "data": assignment})
}
