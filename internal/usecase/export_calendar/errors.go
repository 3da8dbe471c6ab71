package export_calendar

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном периоде выгрузки
	ErrInvalidInput = errors.New("invalid input data")

	// ErrPatternUnavailable возвращается, когда недельное расписание не удалось загрузить
	ErrPatternUnavailable = errors.New("weekly pattern unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
