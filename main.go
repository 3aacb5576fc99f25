package main

import (
	"log"
	"os"

	"invoice-manager/cmd/config"
	migration "invoice-manager/cmd/database/migrate"
	"invoice-manager/internal/utils"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; config.yaml plus real env vars are enough in prod.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, continuing with environment")
	}
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("failed to initialize app: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
