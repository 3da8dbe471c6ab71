package get_calendar

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrViewNotFound возвращается, когда представление не найдено или вытеснено
	ErrViewNotFound = errors.New("calendar view not found")

	// ErrAccessDenied возвращается, когда представление принадлежит другому оператору
	ErrAccessDenied = errors.New("access denied")

	// ErrPatternUnavailable возвращается, когда недельное расписание не удалось загрузить
	// и у представления нет ранее загруженного снимка
	ErrPatternUnavailable = errors.New("weekly pattern unavailable")
)
