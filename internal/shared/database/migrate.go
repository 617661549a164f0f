package database

import (
	"iftar/internal/attendsvc"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&attendsvc.Attendee{},
	)
}
