package schedule

import (
	"fmt"
	"time"
)

// BookingInput — кандидат на бронирование для валидатора.
type BookingInput struct {
	Date time.Time  // нулевое значение — дата не задана
	Time *TimeOfDay // nil — время не задано

	// 0 — длительность не задана и снимается с правила на момент
	// начала самого бронирования.
	DurationMinutes int

	Description string
	Status      string
}

const (
	descriptionMinLen = 10
	descriptionMaxLen = 1000
)

// ValidateBooking решает, может ли кандидат стать бронью при данном правиле
// и занятых интервалах existing (без отменённых и без самого обновляемого
// бронирования). Возвращает зафиксированную длительность и ошибки по полям.
// Порядок проверок: обязательность полей, упреждение, попадание в окно
// правила, выравнивание (только для кандидатов уже внутри окна), пересечение.
func ValidateBooking(in BookingInput, rule *Rule, existing []BookedInterval, now time.Time) (int, ValidationErrors) {
	errs := ValidationErrors{}

	if in.Date.IsZero() {
		errs.Add("date", "can't be blank")
	}
	if in.Time == nil {
		errs.Add("time", "can't be blank")
	}
	if in.Status == "" {
		errs.Add("status", "can't be blank")
	}

	switch {
	case in.Description == "":
		errs.Add("description", "can't be blank")
	case len(in.Description) < descriptionMinLen || len(in.Description) > descriptionMaxLen:
		errs.Add("description", fmt.Sprintf("must be between %d and %d characters", descriptionMinLen, descriptionMaxLen))
	}

	duration := in.DurationMinutes
	if duration == 0 && rule != nil && !in.Date.IsZero() && in.Time != nil {
		duration = rule.EffectiveDurationMinutes(in.Time.OnDate(in.Date))
	}
	if duration <= 0 {
		errs.Add("session_duration_minutes", "must be greater than 0")
	}

	if in.Date.IsZero() || in.Time == nil {
		return duration, errs
	}

	scheduledAt := in.Time.OnDate(in.Date)

	if TooSoon(scheduledAt, duration, now) {
		errs.Add("time", fmt.Sprintf("must be at least %d minutes ahead", MinimumLeadMinutes(duration)))
	}

	if rule != nil {
		validateAgainstRule(errs, *rule, in.Date, *in.Time, duration)
	}

	if duration > 0 {
		scheduledEnd := scheduledAt.Add(time.Duration(duration) * time.Minute)
		if overlapsAny(existing, scheduledAt, scheduledEnd) {
			errs.Add("time", "overlaps existing scheduling")
		}
	}

	return duration, errs
}

// validateAgainstRule — проверки окна правила. Выравнивание по сетке
// проверяется только для кандидата, уже лежащего внутри окна: кандидат вне
// окна сообщается как out-of-range, а не как misaligned.
func validateAgainstRule(errs ValidationErrors, rule Rule, date time.Time, tod TimeOfDay, durationMinutes int) {
	if rule.StartDate != nil && beforeDay(date, *rule.StartDate) {
		errs.Add("date", "is before scheduling rule start_date")
	}
	if rule.EndDate != nil && beforeDay(*rule.EndDate, date) {
		errs.Add("date", "is after scheduling rule end_date")
	}

	if len(rule.WeekDays) > 0 && !containsInt(rule.WeekDays, int(date.Weekday())) {
		errs.Add("date", "is not allowed by scheduling rule")
	}

	if durationMinutes <= 0 {
		return
	}

	startSeconds := rule.StartTime.Seconds()
	endSeconds := rule.EndTime.Seconds()
	timeSeconds := tod.Seconds()
	durationSeconds := durationMinutes * 60

	withinRange := timeSeconds >= startSeconds && timeSeconds+durationSeconds <= endSeconds
	if !withinRange {
		errs.Add("time", "is outside scheduling rule range")
		return
	}

	if (timeSeconds-startSeconds)%durationSeconds != 0 {
		errs.Add("time", "does not align with scheduling rule duration")
	}
}

// Validate проверяет инварианты самого правила на запись.
func (r Rule) Validate() ValidationErrors {
	errs := ValidationErrors{}

	if r.EndTime <= r.StartTime {
		errs.Add("end_time", "must be after start_time")
	}

	if r.StartDate != nil && r.EndDate != nil && beforeDay(*r.EndDate, *r.StartDate) {
		errs.Add("end_date", "must be equal or after start_date")
	}

	validateDurationMinutes(errs, "session_duration_minutes", r.DurationMinutes)
	if r.NextDurationMinutes != nil {
		validateDurationMinutes(errs, "session_duration_minutes_next", *r.NextDurationMinutes)
	}

	// Отложенная смена хранится парой: значение и момент вступления в силу.
	if (r.NextDurationMinutes == nil) != (r.NextDurationEffectiveAt == nil) {
		errs.Add("session_duration_minutes_next", "must be set together with session_duration_effective_at")
	}

	for _, d := range r.WeekDays {
		if d < 0 || d > 6 {
			errs.Add("week_days", "must contain days between 0 (Sunday) and 6 (Saturday)")
			break
		}
	}

	return errs
}

func validateDurationMinutes(errs ValidationErrors, field string, minutes int) {
	if minutes <= 0 {
		errs.Add(field, "must be greater than 0")
		return
	}
	if minutes%15 != 0 {
		errs.Add(field, "must be a multiple of 15 minutes")
	}
}
