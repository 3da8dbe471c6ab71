package export_calendar

import "time"

// MaxExportDays максимальная длина периода выгрузки
const MaxExportDays = 366

// Request модель запроса выгрузки рабочих часов
type Request struct {
	From time.Time // Первая дата периода
	To   time.Time // Последняя дата периода включительно
}

// Response календарь в формате iCalendar
type Response struct {
	Body   string
	Events int // Количество VEVENT в календаре
}
