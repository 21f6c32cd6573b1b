package schedule

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var ErrInvalidTimeOfDay = errors.New("invalid time of day")

// TimeOfDay — время суток в секундах от полуночи (0..86399).
// Хранится в колонке TIME, по JSON ходит как "HH:MM".
type TimeOfDay int

const secondsPerDay = 24 * 60 * 60

// ParseTimeOfDay разбирает "HH:MM" или "HH:MM:SS".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m, sec int

	switch n, _ := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); n {
	case 2, 3:
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}

	if h < 0 || h > 23 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}

	return TimeOfDay(h*3600 + m*60 + sec), nil
}

// MustTimeOfDay — для констант и тестов.
func MustTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Seconds возвращает секунды от полуночи.
func (t TimeOfDay) Seconds() int {
	return int(t)
}

func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < secondsPerDay
}

// String форматирует как "HH:MM"; секунды отбрасываются.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/3600, int(t)%3600/60)
}

// OnDate совмещает время суток с датой в серверной таймзоне.
func (t TimeOfDay) OnDate(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, int(t), 0, time.Local)
}

// Value — запись в колонку TIME.
func (t TimeOfDay) Value() (driver.Value, error) {
	return fmt.Sprintf("%02d:%02d:%02d", int(t)/3600, int(t)%3600/60, int(t)%60), nil
}

// Scan — чтение из колонки TIME (строка, []byte или time.Time).
func (t *TimeOfDay) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = 0
		return nil
	case string:
		parsed, err := ParseTimeOfDay(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		parsed, err := ParseTimeOfDay(string(v))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case time.Time:
		*t = TimeOfDay(v.Hour()*3600 + v.Minute()*60 + v.Second())
		return nil
	default:
		return fmt.Errorf("%w: unsupported source %T", ErrInvalidTimeOfDay, src)
	}
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
