package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/gurkanbulca/teamflow/internal/config"
	"github.com/gurkanbulca/teamflow/internal/database"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if !cfg.UsesSQL() {
		log.Fatalf("STORAGE_BACKEND=%s has no schema to migrate; use postgres or sqlite", cfg.Storage.Backend)
	}

	ctx := context.Background()

	db, err := database.Open(ctx, cfg.ToDatabaseConfig())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("Running database migrations...")
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("✅ Migrations completed successfully!")
}
