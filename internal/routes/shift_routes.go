package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"station-attendance-backend/internal/handler"
	"station-attendance-backend/internal/middleware"
	"station-attendance-backend/internal/model"
	"station-attendance-backend/internal/repository"
)

func SetupShiftRoutes(app *fiber.App, db *gorm.DB) {
	repo := repository.NewShiftRepository(db)
	hdl := handler.NewShiftHandler(repo)

	api := app.Group("/api/shifts", middleware.Auth)
	api.Get("/", hdl.GetAll)

	admin := api.Group("/", middleware.Role(model.RoleAdmin))
	admin.Post("/", hdl.Create)
	admin.Put("/:id", hdl.Update)
	admin.Delete("/:id", hdl.Delete)
	admin.Post("/assign", hdl.Assign)
}
