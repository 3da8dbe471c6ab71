package set_date_override

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

type OverrideService interface {
	SetDateOverride(ctx context.Context, date time.Time, ranges []domain.TimeRange) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
