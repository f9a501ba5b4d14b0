package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"station-attendance-backend/internal/handler"
	"station-attendance-backend/internal/middleware"
	"station-attendance-backend/internal/model"
	"station-attendance-backend/internal/repository"
)

func SetupViolationRoutes(app *fiber.App, db *gorm.DB) {
	repo := repository.NewViolationRepository(db)
	hdl := handler.NewViolationHandler(repo)

	api := app.Group("/api/violations", middleware.Auth, middleware.Role(model.RoleAdmin))
	api.Get("/", hdl.GetAll)
	api.Post("/:id/ack", hdl.Acknowledge)
}
