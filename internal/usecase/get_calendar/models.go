package get_calendar

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Request модель запроса сетки календаря
type Request struct {
	UserID int64      // ID оператора
	ViewID *uuid.UUID // nil - открыть новое представление
	Month  time.Time  // Первый месяц; нулевое значение - текущий месяц студии
	Months int        // Количество месяцев подряд; 0 - один месяц
}

// Response модель ответа с сетками месяцев
type Response struct {
	ViewID uuid.UUID
	Window domain.DateWindow // Видимое окно всех сеток
	Today  time.Time
	Warmed bool // true, если окно изменилось и кэш прогревался заново
	Grids  []MonthGrid
}

// MonthGrid сетка одного месяца, 42 ячейки с понедельника
type MonthGrid struct {
	Month time.Time
	Cells []domain.CalendarCell
}
