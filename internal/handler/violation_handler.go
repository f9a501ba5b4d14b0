package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"station-attendance-backend/internal/repository"
)

type ViolationHandler struct {
	repo repository.ViolationRepository
}

func NewViolationHandler(repo repository.ViolationRepository) *ViolationHandler {
	return &ViolationHandler{repo: repo}
}

func (h *ViolationHandler) GetAll(c *fiber.Ctx) error {
	onlyOpen := c.Query("open") == "true"
	violations, err := h.repo.GetAll(c.Context(), onlyOpen)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load violations"})
	}
	return c.JSON(fiber.Map{"data": violations})
}

func (h *ViolationHandler) Acknowledge(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	adminID := uint(c.Locals("user_id").(float64))

	if err := h.repo.Acknowledge(c.Context(), uint(id), adminID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to acknowledge violation"})
	}
	return c.JSON(fiber.Map{"message": "Violation acknowledged"})
}
