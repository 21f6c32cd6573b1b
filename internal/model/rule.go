package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/sevendays/diary-core/internal/schedule"
)

// Дефолты правила доступности.
const (
	DefaultRuleStartTime          = "09:00"
	DefaultRuleEndTime            = "19:00"
	DefaultSessionDurationMinutes = 60
)

// DefaultWeekDays возвращает свежий набор всех дней недели (0 = воскресенье).
func DefaultWeekDays() []int {
	return []int{0, 1, 2, 3, 4, 5, 6}
}

// availability_rules
type AvailabilityRule struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	// Ровно одно правило на дневник.
	DiaryID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index"`

	StartTime schedule.TimeOfDay `gorm:"type:time;not null"`
	EndTime   schedule.TimeOfDay `gorm:"type:time;not null"`

	// Дни недели 0..6, воскресенье = 0. Пустой набор — все дни.
	WeekDays datatypes.JSONSlice[int] `gorm:"not null"`

	// Границы действия, включительно.
	StartDate *datatypes.Date `gorm:"type:date"`
	EndDate   *datatypes.Date `gorm:"type:date"`

	// Текущая длительность сессии и отложенная смена: Next вступает в силу
	// в EffectiveAt и до того момента не влияет на существующие брони.
	// Оба поля отложенной смены либо заданы, либо пусты.
	SessionDurationMinutes     int        `gorm:"not null;default:60"`
	SessionDurationMinutesNext *int       `gorm:"type:integer"`
	SessionDurationEffectiveAt *time.Time `gorm:"type:timestamp"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Diary *Diary `gorm:"foreignKey:DiaryID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	User  *User  `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// NewDefaultRule создаёт правило с дефолтами для свежего дневника.
func NewDefaultRule(diaryID, userID uuid.UUID) *AvailabilityRule {
	return &AvailabilityRule{
		DiaryID:                diaryID,
		UserID:                 userID,
		StartTime:              schedule.MustTimeOfDay(DefaultRuleStartTime),
		EndTime:                schedule.MustTimeOfDay(DefaultRuleEndTime),
		WeekDays:               datatypes.JSONSlice[int](DefaultWeekDays()),
		SessionDurationMinutes: DefaultSessionDurationMinutes,
	}
}

// Window конвертирует хранимое правило в чистое значение для движка.
func (r *AvailabilityRule) Window() schedule.Rule {
	w := schedule.Rule{
		StartTime:               r.StartTime,
		EndTime:                 r.EndTime,
		WeekDays:                []int(r.WeekDays),
		DurationMinutes:         r.SessionDurationMinutes,
		NextDurationMinutes:     r.SessionDurationMinutesNext,
		NextDurationEffectiveAt: r.SessionDurationEffectiveAt,
	}
	if r.StartDate != nil {
		d := time.Time(*r.StartDate)
		w.StartDate = &d
	}
	if r.EndDate != nil {
		d := time.Time(*r.EndDate)
		w.EndDate = &d
	}
	return w
}

// EffectiveDurationMinutes — длительность, действующая в момент at.
func (r *AvailabilityRule) EffectiveDurationMinutes(at time.Time) int {
	return r.Window().EffectiveDurationMinutes(at)
}

// Validate проверяет инварианты правила перед записью.
func (r *AvailabilityRule) Validate() schedule.ValidationErrors {
	return r.Window().Validate()
}
