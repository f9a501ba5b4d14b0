package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"station-attendance-backend/internal/handler"
	"station-attendance-backend/internal/repository"
	"station-attendance-backend/internal/usecase"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB) {
	officerRepo := repository.NewOfficerRepository(db)
	hdl := handler.NewAuthHandler(usecase.NewAuthUsecase(officerRepo))

	app.Post("/api/auth/login", hdl.Login)
}
