package domain

import (
	"fmt"
	"time"
)

// ResolutionSource источник рабочих часов даты
type ResolutionSource string

const (
	SourceOverride ResolutionSource = "override"
	SourcePattern  ResolutionSource = "pattern"
)

// Resolution рабочие часы студии на дату
type Resolution struct {
	Ranges []TimeRange
	IsOpen bool
	Source ResolutionSource
}

// CalendarCell ячейка сетки месяца, вычисляется при каждом построении сетки
type CalendarCell struct {
	Date           time.Time
	IsCurrentMonth bool
	IsToday        bool
	IsPast         bool
	IsOpen         bool
	ResolvedRanges []TimeRange
	HasOverride    bool
}

// DateWindow диапазон дат [From, To] включительно
type DateWindow struct {
	From time.Time
	To   time.Time
}

// Days количество дат в окне
func (w DateWindow) Days() int {
	if w.To.Before(w.From) {
		return 0
	}
	return int(w.To.Sub(w.From).Hours()/24) + 1
}

// Equal сравнивает окна по датам
func (w DateWindow) Equal(other DateWindow) bool {
	return w.From.Equal(other.From) && w.To.Equal(other.To)
}

func (w DateWindow) String() string {
	return fmt.Sprintf("%s..%s", w.From.Format(DateFormat), w.To.Format(DateFormat))
}

// DateOf отбрасывает время суток и часовой пояс: календарная дата в UTC
// Все даты в расчётах календаря нормализуются этой функцией
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate парсит дату YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	date, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return date, nil
}

// FormatDate форматирует дату в YYYY-MM-DD (ключ кэша переопределений)
func FormatDate(date time.Time) string {
	return date.Format(DateFormat)
}

// ParseMonth парсит месяц YYYY-MM и возвращает его первый день
func ParseMonth(s string) (time.Time, error) {
	month, err := time.Parse(MonthFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	return month, nil
}

// MonthStart возвращает первый день месяца даты
func MonthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// MonthEnd возвращает последний день месяца даты
func MonthEnd(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, -1)
}

// IsSameDay проверяет, что две даты относятся к одному дню
func IsSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsDateInPast проверяет, что дата строго раньше сегодняшнего дня
func IsDateInPast(date, today time.Time) bool {
	return DateOf(date).Before(DateOf(today))
}
