package get_weekly_pattern

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

type PatternService interface {
	GetWeeklyPattern(ctx context.Context) ([]domain.WeeklyRule, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
