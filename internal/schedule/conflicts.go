package schedule

import (
	"time"

	"github.com/google/uuid"
)

// ExistingBooking — активная бронь в проверке конфликтов при смене правила.
type ExistingBooking struct {
	ID              uuid.UUID
	Date            time.Time
	Time            TimeOfDay
	DurationMinutes int
}

// DurationChange — смена длительности, которую правило собирается отложить.
type DurationChange struct {
	NewMinutes  int
	EffectiveAt time.Time
}

// RuleConflicts возвращает идентификаторы броней, которые станут
// невалидными под проектом правила rule: выпадут из дат/дней недели/окна
// либо перестанут попадать на сетку. Выравнивание считается по длительности
// самой брони; при смене длительности — по новой, но только для броней,
// чей момент начала приходится на/после вступления смены в силу.
func RuleConflicts(rule Rule, change *DurationChange, bookings []ExistingBooking) []uuid.UUID {
	var conflicts []uuid.UUID
	for _, b := range bookings {
		if conflictsWithRule(rule, change, b) {
			conflicts = append(conflicts, b.ID)
		}
	}
	return conflicts
}

func conflictsWithRule(rule Rule, change *DurationChange, b ExistingBooking) bool {
	if b.DurationMinutes <= 0 {
		return false
	}

	if rule.StartDate != nil && beforeDay(b.Date, *rule.StartDate) {
		return true
	}
	if rule.EndDate != nil && beforeDay(*rule.EndDate, b.Date) {
		return true
	}
	if len(rule.WeekDays) > 0 && !containsInt(rule.WeekDays, int(b.Date.Weekday())) {
		return true
	}

	startSeconds := rule.StartTime.Seconds()
	endSeconds := rule.EndTime.Seconds()
	timeSeconds := b.Time.Seconds()
	bookingSeconds := b.DurationMinutes * 60

	if timeSeconds < startSeconds {
		return true
	}
	if timeSeconds+bookingSeconds > endSeconds {
		return true
	}

	slotMinutes := slotDurationMinutesFor(change, b)
	if slotMinutes <= 0 {
		return false
	}

	return (timeSeconds-startSeconds)%(slotMinutes*60) != 0
}

// slotDurationMinutesFor выбирает длительность сетки для конкретной брони.
func slotDurationMinutesFor(change *DurationChange, b ExistingBooking) int {
	if change == nil {
		return b.DurationMinutes
	}
	if b.Time.OnDate(b.Date).Before(change.EffectiveAt) {
		return b.DurationMinutes
	}
	return change.NewMinutes
}
