package schedule

import "time"

// Двухуровневая политика времени упреждения: короткие сессии (15..45 минут)
// можно бронировать за 30 минут, остальные — за 60.
const (
	shortSessionMinMinutes = 15
	shortSessionMaxMinutes = 45

	shortLeadMinutes   = 30
	defaultLeadMinutes = 60
)

// MinimumLeadMinutes возвращает минимальное упреждение для сессии
// заданной длительности. При неизвестной длительности действует
// консервативный часовой порог.
func MinimumLeadMinutes(durationMinutes int) int {
	if durationMinutes >= shortSessionMinMinutes && durationMinutes <= shortSessionMaxMinutes {
		return shortLeadMinutes
	}
	return defaultLeadMinutes
}

// TooSoon отвечает, попадает ли scheduledAt внутрь окна упреждения
// относительно now. Порог округляется вниз до начала минуты, чтобы
// субминутный дрожащий now не менял результат на границе.
func TooSoon(scheduledAt time.Time, durationMinutes int, now time.Time) bool {
	lead := time.Duration(MinimumLeadMinutes(durationMinutes)) * time.Minute
	threshold := now.Add(lead).Truncate(time.Minute)
	return scheduledAt.Before(threshold)
}
