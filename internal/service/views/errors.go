package views

import "errors"

var (
	// ErrViewNotFound возвращается, когда представление календаря не найдено или вытеснено
	ErrViewNotFound = errors.New("views: calendar view not found")

	// ErrSessionNotFound возвращается, когда сессия редактора не найдена
	ErrSessionNotFound = errors.New("views: editor session not found")

	// ErrAccessDenied возвращается, когда представление принадлежит другому оператору
	ErrAccessDenied = errors.New("views: access denied")

	// ErrInvalidSchedule возвращается для некорректного cron выражения janitor
	ErrInvalidSchedule = errors.New("views: invalid janitor schedule")
)
