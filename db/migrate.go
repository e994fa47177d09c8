package db

import (
	"log"

	"gorm.io/gorm"

	"github.com/topshelfent/booking-api/models"
)

func Migrate(database *gorm.DB) {
	err := database.AutoMigrate(
		&models.User{},
		&models.RecurringSlot{},
		&models.Slot{},
		&models.Service{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	log.Println("✅ Migrations applied successfully!")
}
