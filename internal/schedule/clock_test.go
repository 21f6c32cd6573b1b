package schedule

import (
	"testing"
	"time"
)

func TestMinimumLeadMinutes(t *testing.T) {
	cases := []struct {
		duration int
		want     int
	}{
		{15, 30},
		{30, 30},
		{45, 30},
		{10, 60},
		{60, 60},
		{90, 60},
		{120, 60},
	}

	for _, c := range cases {
		if got := MinimumLeadMinutes(c.duration); got != c.want {
			t.Fatalf("MinimumLeadMinutes(%d) = %d, want %d", c.duration, got, c.want)
		}
	}
}

func TestTooSoon_LongSession(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 30, 0, time.Local)

	// 60-минутная сессия: упреждение 60 минут.
	if !TooSoon(now.Add(20*time.Minute), 60, now) {
		t.Fatalf("expected +20min to be too soon for 60-minute session")
	}
	if TooSoon(now.Add(65*time.Minute), 60, now) {
		t.Fatalf("expected +65min to be acceptable for 60-minute session")
	}
}

func TestTooSoon_ShortSession(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)

	// 30-минутная сессия: упреждение 30 минут.
	if !TooSoon(now.Add(20*time.Minute), 30, now) {
		t.Fatalf("expected +20min to be too soon for 30-minute session")
	}
	if TooSoon(now.Add(31*time.Minute), 30, now) {
		t.Fatalf("expected +31min to be acceptable for 30-minute session")
	}
}

func TestTooSoon_ThresholdFlooredToMinute(t *testing.T) {
	// Порог округляется вниз до минуты: бронь ровно в now+lead проходит,
	// даже если now содержит секунды.
	now := time.Date(2026, 9, 1, 12, 0, 45, 0, time.Local)
	scheduledAt := time.Date(2026, 9, 1, 13, 0, 0, 0, time.Local)

	if TooSoon(scheduledAt, 60, now) {
		t.Fatalf("expected booking exactly at floored now+lead to be acceptable")
	}
}
