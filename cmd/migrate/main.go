package main

import (
	"log"
	"os"

	"lead-engagement-be/internal/model"
	"lead-engagement-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn, true)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Running AutoMigrate for lead_signals...")
	if err := db.AutoMigrate(&model.LeadSignal{}); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// jsonb lookups by clicked target
	indexSQL := `CREATE INDEX IF NOT EXISTS idx_lead_signals_action_to ON lead_signals ((details->'action'->>'to'));`
	if err := db.Exec(indexSQL).Error; err != nil {
		log.Printf("Warn: Failed to create details index: %v", err)
	}

	log.Println("Success: Database migration completed.")
}
