package replace_weekly_pattern

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

type PatternService interface {
	ReplaceWeeklyPattern(ctx context.Context, weekday domain.Weekday, ranges []domain.TimeRange) ([]domain.WeeklyRule, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
