package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// timeLayout формат времени суток HH:MM
const timeLayout = "15:04"

// ErrInvalidTimeFormat возвращается, когда строка не соответствует формату HH:MM
var ErrInvalidTimeFormat = errors.New("types: invalid time format, expected HH:MM")

// TimeString время суток (wall-clock) в формате HH:MM, например "09:30"
// Нулевое значение ("") означает, что время не задано
type TimeString string

// NewTimeString создает TimeString из часов и минут переданного времени
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString парсит строку HH:MM
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// MustTimeString парсит строку HH:MM и паникует при ошибке (для констант и тестов)
func MustTimeString(s string) TimeString {
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

// Validate проверяет формат HH:MM (с ведущими нулями)
func (t TimeString) Validate() error {
	if len(t) != len(timeLayout) {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	if _, err := time.Parse(timeLayout, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	return nil
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// String возвращает строковое представление HH:MM
func (t TimeString) String() string {
	return string(t)
}

// Minutes возвращает количество минут от начала суток
// Для невалидного значения возвращает -1
func (t TimeString) Minutes() int {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return -1
	}
	return parsed.Hour()*60 + parsed.Minute()
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// On возвращает момент времени t в указанную дату и часовой пояс
func (t TimeString) On(date time.Time, loc *time.Location) time.Time {
	minutes := t.Minutes()
	if minutes < 0 {
		minutes = 0
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, loc)
}

// Value реализует driver.Valuer для записи в колонку TIME
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}

// Scan реализует sql.Scanner для чтения колонки TIME ("09:00:00") или TEXT ("09:00")
func (t *TimeString) Scan(src interface{}) error {
	var raw string

	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeFormat, src)
	}

	if len(raw) < len(timeLayout) {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, raw)
	}

	parsed, err := NewTimeStringFromString(raw[:len(timeLayout)])
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
