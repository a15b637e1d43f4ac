// cmd/assignbatch — runs one daily challenge/event assignment batch and
// exits. Meant to be invoked once per calendar day by an external
// scheduler; exits non-zero on any uncaught failure.
package main

import (
	"log"
	"os"
	"time"

	"fitness-challenge-system/models"
	"fitness-challenge-system/services"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Season{},
		&models.Challenge{},
		&models.CardResult{},
		&models.Notification{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	assignmentService := services.NewAssignmentService(db, nil)
	if err := assignmentService.RunDaily(time.Now()); err != nil {
		log.Fatal("daily assignment batch failed:", err)
	}
}
