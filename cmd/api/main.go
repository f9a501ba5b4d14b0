package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"station-attendance-backend/config"
	"station-attendance-backend/internal/routes"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables.")
	}

	config.ConnectDB()

	app := fiber.New()

	app.Use(cors.New())
	app.Use(logger.New())

	routes.SetupAuthRoutes(app, config.DB)
	routes.SetupPunchRoutes(app, config.DB)
	routes.SetupGeofenceRoutes(app, config.DB)
	routes.SetupShiftRoutes(app, config.DB)
	routes.SetupViolationRoutes(app, config.DB)

	log.Fatal(app.Listen(":" + config.GetEnv("PORT", "3000")))
}
