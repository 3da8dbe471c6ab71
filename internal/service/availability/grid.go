package availability

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// GridWindow возвращает первую и последнюю дату сетки месяца (видимое окно)
// Сетка всегда содержит 42 даты, неделя начинается с понедельника
func GridWindow(month time.Time) domain.DateWindow {
	first := domain.MonthStart(month)
	start := first.AddDate(0, 0, -leadingDays(first))
	return domain.DateWindow{
		From: start,
		To:   start.AddDate(0, 0, domain.GridCells-1),
	}
}

// ViewWindow объединяет сетки months месяцев начиная с month в одно окно
func ViewWindow(month time.Time, months int) domain.DateWindow {
	if months < 1 {
		months = 1
	}
	first := domain.MonthStart(month)
	return domain.DateWindow{
		From: GridWindow(first).From,
		To:   GridWindow(first.AddDate(0, months-1, 0)).To,
	}
}

// BuildGrid строит сетку 6x7 для месяца month
// Первые ячейки заполняются концом предыдущего месяца, последние - началом следующего.
// Каждая ячейка разрешается через Resolve; today сравнивается без учёта времени суток
func BuildGrid(month, today time.Time, pattern domain.WeeklyPattern, overrides OverrideLookup) []domain.CalendarCell {
	first := domain.MonthStart(month)
	window := GridWindow(first)
	todayDate := domain.DateOf(today)

	cells := make([]domain.CalendarCell, 0, domain.GridCells)
	for i := 0; i < domain.GridCells; i++ {
		date := window.From.AddDate(0, 0, i)
		resolution := Resolve(date, pattern, overrides)

		cells = append(cells, domain.CalendarCell{
			Date:           date,
			IsCurrentMonth: date.Month() == first.Month() && date.Year() == first.Year(),
			IsToday:        domain.IsSameDay(date, todayDate),
			IsPast:         domain.IsDateInPast(date, todayDate),
			IsOpen:         resolution.IsOpen,
			ResolvedRanges: resolution.Ranges,
			HasOverride:    resolution.Source == domain.SourceOverride,
		})
	}

	return cells
}

// leadingDays количество ячеек предыдущего месяца перед первым числом
func leadingDays(first time.Time) int {
	return (int(first.Weekday()) + 6) % 7
}
