package migration

import (
	"fmt"
	"log"

	"invoice-manager/entities"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Invoice{}); err != nil {
		log.Fatalf("Error migrating invoice database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.UploadedFile{}); err != nil {
		log.Fatalf("Error migrating uploaded file database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.EmailScanJob{}); err != nil {
		log.Fatalf("Error migrating email scan job database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
