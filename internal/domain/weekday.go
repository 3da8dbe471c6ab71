package domain

import (
	"fmt"
	"strings"
	"time"
)

// Weekday день недели в недельном расписании
type Weekday string

const (
	Monday    Weekday = "MONDAY"
	Tuesday   Weekday = "TUESDAY"
	Wednesday Weekday = "WEDNESDAY"
	Thursday  Weekday = "THURSDAY"
	Friday    Weekday = "FRIDAY"
	Saturday  Weekday = "SATURDAY"
	Sunday    Weekday = "SUNDAY"
)

// Weekdays дни недели в порядке сетки календаря (неделя начинается с понедельника)
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// WeekdayOf возвращает день недели для даты
func WeekdayOf(date time.Time) Weekday {
	return FromTimeWeekday(date.Weekday())
}

// FromTimeWeekday конвертирует time.Weekday
func FromTimeWeekday(wd time.Weekday) Weekday {
	// time.Sunday == 0, переносим воскресенье в конец недели
	return Weekdays[(int(wd)+6)%7]
}

// ParseWeekday парсит день недели без учёта регистра ("monday", "MONDAY")
func ParseWeekday(s string) (Weekday, error) {
	wd := Weekday(strings.ToUpper(strings.TrimSpace(s)))
	if !wd.IsValid() {
		return "", fmt.Errorf("%w: unknown weekday %q", ErrInvalidWeekday, s)
	}
	return wd, nil
}

// IsValid возвращает true для одного из семи дней недели
func (w Weekday) IsValid() bool {
	return w.Index() >= 0
}

// Index возвращает позицию дня в неделе с понедельника (0..6), -1 для неизвестного дня
func (w Weekday) Index() int {
	for i, wd := range Weekdays {
		if wd == w {
			return i
		}
	}
	return -1
}

// TimeWeekday конвертирует в time.Weekday
func (w Weekday) TimeWeekday() time.Weekday {
	return time.Weekday((w.Index() + 1) % 7)
}

func (w Weekday) String() string {
	return string(w)
}
