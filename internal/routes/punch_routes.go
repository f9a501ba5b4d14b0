package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"station-attendance-backend/internal/handler"
	"station-attendance-backend/internal/middleware"
	"station-attendance-backend/internal/notifier"
	"station-attendance-backend/internal/punch"
	"station-attendance-backend/internal/repository"
)

func SetupPunchRoutes(app *fiber.App, db *gorm.DB) {
	geofenceRepo := repository.NewGeofenceRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	punchRepo := repository.NewPunchRepository(db)
	violationRepo := repository.NewViolationRepository(db)

	service := punch.NewService(geofenceRepo, shiftRepo, punchRepo, violationRepo, notifier.NewMailerFromEnv())
	hdl := handler.NewPunchHandler(service, punchRepo, shiftRepo)

	api := app.Group("/api/punch", middleware.Auth)
	api.Post("/in", hdl.PunchIn)
	api.Post("/out", hdl.PunchOut)
	api.Get("/status", hdl.Status)
	api.Get("/history", hdl.History)
	api.Get("/recap", hdl.Recap)

	// Background location polling feeds the violation recorder.
	app.Post("/api/location/report", middleware.Auth, hdl.ReportLocation)
}
