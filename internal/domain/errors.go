package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidWeekday возвращается для неизвестного дня недели
	ErrInvalidWeekday = errors.New("domain: invalid weekday")

	// ErrInvalidDate возвращается для даты не в формате YYYY-MM-DD
	ErrInvalidDate = errors.New("domain: invalid date")

	// ErrInvalidMonth возвращается для месяца не в формате YYYY-MM
	ErrInvalidMonth = errors.New("domain: invalid month")

	// ErrInvalidRange возвращается при нарушении инвариантов интервалов
	ErrInvalidRange = errors.New("domain: invalid time range")
)

// ValidationError ошибка валидации конкретного поля
// Оборачивает ErrInvalidRange, поэтому errors.Is(err, ErrInvalidRange) == true
type ValidationError struct {
	Field   string // например "ranges[1].endTime"
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidRange
}

// AsValidationError извлекает ValidationError из цепочки ошибок
func AsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}
