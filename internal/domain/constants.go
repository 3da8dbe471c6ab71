package domain

// Формат даты, времени и месяца
const (
	TimeFormat  = "15:04"      // HH:MM
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)

// Параметры сетки календаря
const (
	GridColumns = 7
	GridRows    = 6
	GridCells   = GridColumns * GridRows // фиксированный размер сетки месяца
)

// Интервал по умолчанию для дня недели без расписания (предзаполнение редактора)
const (
	DefaultRangeStart = "09:00"
	DefaultRangeEnd   = "17:00"
)

// Ограничения бизнес-валидации
const (
	MaxRangesPerDay = 12
	MaxViewMonths   = 12
)
