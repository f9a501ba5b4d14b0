package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"station-attendance-backend/internal/handler"
	"station-attendance-backend/internal/middleware"
	"station-attendance-backend/internal/model"
	"station-attendance-backend/internal/repository"
)

func SetupGeofenceRoutes(app *fiber.App, db *gorm.DB) {
	repo := repository.NewGeofenceRepository(db)
	hdl := handler.NewGeofenceHandler(repo)

	api := app.Group("/api/geofences", middleware.Auth)
	api.Get("/", hdl.GetAll)
	api.Post("/check", hdl.CheckLocation)

	admin := api.Group("/", middleware.Role(model.RoleAdmin))
	admin.Post("/", hdl.Create)
	admin.Put("/:id", hdl.Update)
	admin.Delete("/:id", hdl.Deactivate)
}
