package gorm

import "gorm.io/gorm"

// AutoMigrate creates or updates the schema for all scheduling entities.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Airplane{},
		&Flight{},
		&Reservation{},
	)
}
