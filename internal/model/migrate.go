package model

import "gorm.io/gorm"

// AutoMigrate выполняет миграцию всех сущностей ядра дневников.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Diary{},
		&AvailabilityRule{},
		&Booking{},
		&Event{},
	)
}
