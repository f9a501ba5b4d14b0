package handler

import (
	"github.com/gofiber/fiber/v2"

	"station-attendance-backend/internal/usecase"
)

type AuthHandler struct {
	auth *usecase.AuthUsecase
}

func NewAuthHandler(auth *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type LoginRequest struct {
	NIP      string `json:"nip"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	token, officer, err := h.auth.Login(c.Context(), req.NIP, req.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid NIP or password"})
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"officer": officer,
	})
}
