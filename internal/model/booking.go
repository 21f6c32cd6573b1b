package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/sevendays/diary-core/internal/schedule"
)

type BookingStatus string

const (
	BookingStatusAvailable BookingStatus = "available"
	BookingStatusMarked    BookingStatus = "marked"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// bookings
type Booking struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	DiaryID uuid.UUID `gorm:"type:uuid;not null;index"`
	RuleID  uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index"`

	Date datatypes.Date     `gorm:"type:date;not null;index"`
	Time schedule.TimeOfDay `gorm:"type:time;not null"`

	// Снимок длительности на момент создания: последующие смены правила
	// не трогают существующие брони.
	SessionDurationMinutes int `gorm:"not null;default:60"`

	Description string        `gorm:"type:text;not null"`
	Status      BookingStatus `gorm:"type:varchar(32);not null;default:'marked';index"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Diary *Diary            `gorm:"foreignKey:DiaryID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Rule  *AvailabilityRule `gorm:"foreignKey:RuleID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	User  *User             `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (b *Booking) Cancelled() bool {
	return b.Status == BookingStatusCancelled
}

// ScheduledAt — момент начала в серверной таймзоне.
func (b *Booking) ScheduledAt() time.Time {
	return b.Time.OnDate(time.Time(b.Date))
}

func (b *Booking) ScheduledEndAt() time.Time {
	return b.ScheduledAt().Add(time.Duration(b.SessionDurationMinutes) * time.Minute)
}

// Interval — занятый интервал брони для движка слотов.
func (b *Booking) Interval() schedule.BookedInterval {
	return schedule.BookedInterval{Start: b.ScheduledAt(), End: b.ScheduledEndAt()}
}
