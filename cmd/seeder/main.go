package main

import (
	"log"

	"github.com/joho/godotenv"

	"station-attendance-backend/config"
	"station-attendance-backend/internal/database"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables.")
	}

	config.ConnectDB()

	database.SeedAll(config.DB)

	log.Println("Seeding finished.")
}
