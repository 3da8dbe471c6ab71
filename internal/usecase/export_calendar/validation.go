package export_calendar

import (
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// validateRequest проверяет период выгрузки
func validateRequest(req *Request) error {
	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}

	window := domain.DateWindow{From: domain.DateOf(req.From), To: domain.DateOf(req.To)}
	days := window.Days()
	if days == 0 {
		return fmt.Errorf("%w: from must not be after to", ErrInvalidInput)
	}
	if days > MaxExportDays {
		return fmt.Errorf("%w: period must not exceed %d days", ErrInvalidInput, MaxExportDays)
	}

	return nil
}
