package schedule

import "time"

// Шаг перебора кандидатов — всегда 15 минут независимо от длительности
// сессии: это гранулярность сканирования, а не размер слота.
const scanStepSeconds = 15 * 60

// Slot — свободный интервал, готовый к бронированию.
type Slot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// BookedInterval — занятый полуоткрытый интервал [Start, End).
type BookedInterval struct {
	Start time.Time
	End   time.Time
}

// Overlaps проверяет пересечение полуоткрытых интервалов.
func (b BookedInterval) Overlaps(start, end time.Time) bool {
	return start.Before(b.End) && end.After(b.Start)
}

// AvailableSlots перечисляет свободные слоты правила на дату date.
// booked — некэнселенные брони этого дня, now передаётся явно.
// Кандидаты идут с шагом 15 минут от начала окна; выживают те, что
// выровнены по сетке действующей длительности, целиком помещаются в окно,
// не попадают в окно упреждения и не пересекают существующие брони.
func AvailableSlots(rule *Rule, date time.Time, booked []BookedInterval, now time.Time) []Slot {
	slots := []Slot{}

	if rule == nil || !rule.DateAllowed(date) {
		return slots
	}

	startSeconds := rule.StartTime.Seconds()
	endSeconds := rule.EndTime.Seconds()
	if startSeconds >= endSeconds {
		return slots
	}

	dayStart := DateOnly(date)
	windowEnd := dayStart.Add(time.Duration(endSeconds) * time.Second)

	for offset := startSeconds; offset < endSeconds; offset += scanStepSeconds {
		slotStart := dayStart.Add(time.Duration(offset) * time.Second)

		// Длительность берётся на момент начала самого слота: отложенная
		// смена начинает действовать только для слотов после её даты.
		durationMinutes := rule.EffectiveDurationMinutes(slotStart)
		if durationMinutes <= 0 {
			continue
		}
		durationSeconds := durationMinutes * 60

		// Слот обязан лечь на сетку длительности, заякоренную на начале окна.
		if (offset-startSeconds)%durationSeconds != 0 {
			continue
		}

		slotEnd := slotStart.Add(time.Duration(durationSeconds) * time.Second)
		if slotEnd.After(windowEnd) {
			continue
		}

		if TooSoon(slotStart, durationMinutes, now) {
			continue
		}

		if overlapsAny(booked, slotStart, slotEnd) {
			continue
		}

		slots = append(slots, Slot{
			StartTime: slotStart.Format("15:04"),
			EndTime:   slotEnd.Format("15:04"),
		})
	}

	return slots
}

// DateOnly — полночь календарного дня t в серверной таймзоне.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

func overlapsAny(booked []BookedInterval, start, end time.Time) bool {
	for _, b := range booked {
		if b.Overlaps(start, end) {
			return true
		}
	}
	return false
}
