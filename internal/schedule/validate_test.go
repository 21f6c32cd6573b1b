package schedule

import (
	"strings"
	"testing"
	"time"
)

func validInput(tod string) BookingInput {
	t := MustTimeOfDay(tod)
	return BookingInput{
		Date:        testDate(),
		Time:        &t,
		Description: "first consultation",
		Status:      "marked",
	}
}

func hasMessage(messages []string, want string) bool {
	for _, m := range messages {
		if m == want {
			return true
		}
	}
	return false
}

func TestValidateBooking_OK(t *testing.T) {
	rule := allWeekRule("09:00", "18:00", 60)

	duration, errs := ValidateBooking(validInput("10:00"), rule, nil, farPast())
	if errs.Any() {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if duration != 60 {
		t.Fatalf("expected duration 60 from rule, got %d", duration)
	}
}

func TestValidateBooking_BlankFields(t *testing.T) {
	_, errs := ValidateBooking(BookingInput{}, allWeekRule("09:00", "18:00", 60), nil, farPast())

	for _, field := range []string{"date", "time", "status", "description"} {
		if !hasMessage(errs.On(field), "can't be blank") {
			t.Fatalf("expected %s to be required, got %v", field, errs)
		}
	}
}

func TestValidateBooking_DescriptionLength(t *testing.T) {
	rule := allWeekRule("09:00", "18:00", 60)

	in := validInput("10:00")
	in.Description = "short"
	_, errs := ValidateBooking(in, rule, nil, farPast())
	if !hasMessage(errs.On("description"), "must be between 10 and 1000 characters") {
		t.Fatalf("expected description length error, got %v", errs)
	}

	in.Description = strings.Repeat("x", 1001)
	_, errs = ValidateBooking(in, rule, nil, farPast())
	if !hasMessage(errs.On("description"), "must be between 10 and 1000 characters") {
		t.Fatalf("expected description length error for long text, got %v", errs)
	}
}

func TestValidateBooking_TooSoon(t *testing.T) {
	rule := allWeekRule("09:00", "18:00", 60)

	now := time.Date(2026, 9, 1, 9, 30, 0, 0, time.Local)
	_, errs := ValidateBooking(validInput("10:00"), rule, nil, now)
	if !hasMessage(errs.On("time"), "must be at least 60 minutes ahead") {
		t.Fatalf("expected lead-time rejection, got %v", errs)
	}
}

func TestValidateBooking_WeekdayNotAllowed(t *testing.T) {
	rule := allWeekRule("09:00", "12:00", 60)
	rule.WeekDays = []int{0, 6} // дата — вторник

	_, errs := ValidateBooking(validInput("10:00"), rule, nil, farPast())
	if !hasMessage(errs.On("date"), "is not allowed by scheduling rule") {
		t.Fatalf("expected weekday rejection, got %v", errs)
	}
}

func TestValidateBooking_DateBounds(t *testing.T) {
	rule := allWeekRule("09:00", "18:00", 60)
	start := time.Date(2026, 9, 10, 0, 0, 0, 0, time.Local)
	rule.StartDate = &start

	_, errs := ValidateBooking(validInput("10:00"), rule, nil, farPast())
	if !hasMessage(errs.On("date"), "is before scheduling rule start_date") {
		t.Fatalf("expected start_date rejection, got %v", errs)
	}

	rule.StartDate = nil
	end := time.Date(2026, 8, 20, 0, 0, 0, 0, time.Local)
	rule.EndDate = &end

	_, errs = ValidateBooking(validInput("10:00"), rule, nil, farPast())
	if !hasMessage(errs.On("date"), "is after scheduling rule end_date") {
		t.Fatalf("expected end_date rejection, got %v", errs)
	}
}

// Кандидат вне окна сообщается только как out-of-range: выравнивание по
// сетке для него не проверяется. Порядок исторический, менять молча нельзя.
func TestValidateBooking_OutOfRangeSuppressesAlignment(t *testing.T) {
	rule := allWeekRule("09:00", "12:00", 60)

	_, errs := ValidateBooking(validInput("13:15"), rule, nil, farPast())
	if !hasMessage(errs.On("time"), "is outside scheduling rule range") {
		t.Fatalf("expected out-of-range rejection, got %v", errs)
	}
	if hasMessage(errs.On("time"), "does not align with scheduling rule duration") {
		t.Fatalf("expected alignment check to be skipped out of range, got %v", errs)
	}
}

func TestValidateBooking_Misaligned(t *testing.T) {
	rule := allWeekRule("09:00", "12:00", 60)

	_, errs := ValidateBooking(validInput("09:30"), rule, nil, farPast())
	if !hasMessage(errs.On("time"), "does not align with scheduling rule duration") {
		t.Fatalf("expected alignment rejection, got %v", errs)
	}
}

func TestValidateBooking_Overlap(t *testing.T) {
	rule := allWeekRule("09:00", "18:00", 60)
	existing := []BookedInterval{{
		Start: time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local),
		End:   time.Date(2026, 9, 1, 11, 0, 0, 0, time.Local),
	}}

	_, errs := ValidateBooking(validInput("10:00"), rule, existing, farPast())
	if !hasMessage(errs.On("time"), "overlaps existing scheduling") {
		t.Fatalf("expected overlap rejection, got %v", errs)
	}

	_, errs = ValidateBooking(validInput("11:00"), rule, existing, farPast())
	if errs.Any() {
		t.Fatalf("expected adjacent booking to pass, got %v", errs)
	}
}

func TestRuleValidate(t *testing.T) {
	rule := Rule{
		StartTime:       MustTimeOfDay("09:00"),
		EndTime:         MustTimeOfDay("19:00"),
		WeekDays:        []int{0, 1, 2, 3, 4, 5, 6},
		DurationMinutes: 60,
	}
	if errs := rule.Validate(); errs.Any() {
		t.Fatalf("expected default-like rule to be valid, got %v", errs)
	}

	bad := rule
	bad.EndTime = MustTimeOfDay("08:00")
	if errs := bad.Validate(); !hasMessage(errs.On("end_time"), "must be after start_time") {
		t.Fatalf("expected inverted window rejection, got %v", errs)
	}

	bad = rule
	bad.DurationMinutes = 50
	if errs := bad.Validate(); !hasMessage(errs.On("session_duration_minutes"), "must be a multiple of 15 minutes") {
		t.Fatalf("expected duration grid rejection, got %v", errs)
	}

	bad = rule
	next := 30
	bad.NextDurationMinutes = &next // без EffectiveAt
	if errs := bad.Validate(); !errs.Any() {
		t.Fatalf("expected dangling pending duration to be rejected")
	}

	bad = rule
	bad.WeekDays = []int{1, 7}
	if errs := bad.Validate(); !hasMessage(errs.On("week_days"), "must contain days between 0 (Sunday) and 6 (Saturday)") {
		t.Fatalf("expected week day range rejection, got %v", errs)
	}
}
