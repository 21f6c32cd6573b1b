package model

import (
	"time"

	"github.com/google/uuid"
)

// Роль пользователя: владелец дневника или обычный клиент.
type UserRole string

const (
	UserRoleOwner    UserRole = "owner"
	UserRoleStandard UserRole = "standard"
)

// users
type User struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"`
	Username     string `gorm:"type:varchar(20);not null;uniqueIndex"`
	FirstName    string `gorm:"type:varchar(255);not null"`
	LastName     string `gorm:"type:varchar(255);not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`

	Role UserRole `gorm:"type:varchar(16);not null;default:'standard';index"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	// Навигационные поля (опционально, удобно для Preload).
	Diary *Diary `gorm:"foreignKey:UserID"`
}

func (u *User) Owner() bool {
	return u.Role == UserRoleOwner
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
