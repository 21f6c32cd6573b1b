package schedule

import "time"

// Rule — значение правила доступности, с которым работает движок.
// Модель хранения живёт в internal/model и конвертируется сюда.
type Rule struct {
	StartTime TimeOfDay
	EndTime   TimeOfDay

	// Дни недели 0..6, воскресенье = 0. Пустой набор — разрешены все дни.
	WeekDays []int

	// Границы действия правила, включительно. nil — без ограничения.
	StartDate *time.Time
	EndDate   *time.Time

	// Текущая длительность сессии в минутах.
	DurationMinutes int

	// Отложенная смена длительности: NextDurationMinutes вступает в силу
	// начиная с NextDurationEffectiveAt. Оба поля либо заданы, либо nil.
	NextDurationMinutes     *int
	NextDurationEffectiveAt *time.Time
}

// EffectiveDurationMinutes возвращает длительность, действующую в момент at:
// отложенное значение, если оно есть и уже вступило в силу, иначе текущее.
func (r Rule) EffectiveDurationMinutes(at time.Time) int {
	if r.NextDurationMinutes == nil || r.NextDurationEffectiveAt == nil {
		return r.DurationMinutes
	}
	if at.Before(*r.NextDurationEffectiveAt) {
		return r.DurationMinutes
	}
	return *r.NextDurationMinutes
}

// DateAllowed проверяет дату по границам правила и дням недели.
func (r Rule) DateAllowed(date time.Time) bool {
	if r.StartDate != nil && beforeDay(date, *r.StartDate) {
		return false
	}
	if r.EndDate != nil && beforeDay(*r.EndDate, date) {
		return false
	}
	if len(r.WeekDays) == 0 {
		return true
	}
	return containsInt(r.WeekDays, int(date.Weekday()))
}

// beforeDay сравнивает календарные дни, игнорируя время суток.
func beforeDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad < bd
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
