package model

import (
	"time"

	"github.com/google/uuid"
)

// diaries
type Diary struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	// У пользователя не больше одного дневника.
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`

	Title       string `gorm:"type:varchar(255);not null"`
	Description string `gorm:"type:text;not null"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	// Дневник эксклюзивно владеет правилом и бронями: каскад при удалении.
	User     *User             `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Rule     *AvailabilityRule `gorm:"foreignKey:DiaryID"`
	Bookings []Booking         `gorm:"foreignKey:DiaryID"`
}
