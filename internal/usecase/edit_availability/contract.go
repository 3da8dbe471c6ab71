package edit_availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/views"
)

// AvailabilityWriter операции записи бэкенда доступности
type AvailabilityWriter interface {
	ReplaceWeeklyPattern(ctx context.Context, weekday domain.Weekday, ranges []domain.TimeRange) ([]domain.WeeklyRule, error)
	SetDateOverride(ctx context.Context, date time.Time, ranges []domain.TimeRange) error
}

// ViewRegistry реестр представлений календаря
type ViewRegistry interface {
	Get(id uuid.UUID, userID int64) (*views.View, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
