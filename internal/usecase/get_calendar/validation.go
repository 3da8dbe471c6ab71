package get_calendar

import (
	"fmt"
)

// validateRequest валидирует входные данные запроса и возвращает количество месяцев
func validateRequest(req *Request, maxMonths int) (int, error) {
	if req.UserID <= 0 {
		return 0, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	months := req.Months
	if months == 0 {
		months = 1
	}
	if months < 1 || months > maxMonths {
		return 0, fmt.Errorf("%w: months must be between 1 and %d", ErrInvalidInput, maxMonths)
	}

	return months, nil
}
