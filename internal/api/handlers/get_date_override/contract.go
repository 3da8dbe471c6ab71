package get_date_override

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

type OverrideService interface {
	// GetDateOverride возвращает nil, nil, если переопределения нет
	GetDateOverride(ctx context.Context, date time.Time) (*domain.DateOverride, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
