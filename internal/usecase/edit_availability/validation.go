package edit_availability

import (
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// validateSession проверяет черновик перед записью
func validateSession(session domain.EditorSession) error {
	if session.Mode != domain.ModeWeek && session.Mode != domain.ModeDate {
		return &domain.ValidationError{Field: "mode", Message: fmt.Sprintf("unknown mode %q", session.Mode)}
	}
	if !session.Weekday.IsValid() {
		return fmt.Errorf("%w: %v", ErrInvalidInput, domain.ErrInvalidWeekday)
	}
	return domain.ValidateRanges(session.Ranges)
}
