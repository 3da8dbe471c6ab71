package edit_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrViewNotFound возвращается, когда представление не найдено или вытеснено
	ErrViewNotFound = errors.New("calendar view not found")

	// ErrSessionNotFound возвращается, когда сессия редактора не найдена
	ErrSessionNotFound = errors.New("editor session not found")

	// ErrAccessDenied возвращается, когда представление принадлежит другому оператору
	ErrAccessDenied = errors.New("access denied")

	// ErrSaveFailed возвращается, когда бэкенд не подтвердил запись
	// Сессия остаётся открытой, кэш и снимок расписания не меняются
	ErrSaveFailed = errors.New("failed to save availability")
)
