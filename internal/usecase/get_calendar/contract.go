package get_calendar

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/availability"
	"github.com/m04kA/SMC-ScheduleService/internal/service/views"
)

// PatternSource источник недельного расписания
type PatternSource interface {
	GetWeeklyPattern(ctx context.Context) ([]domain.WeeklyRule, error)
}

// Prefetcher прогреватель кэша переопределений
type Prefetcher interface {
	Warm(ctx context.Context, from, to time.Time, cache *availability.OverrideCache)
}

// ViewRegistry реестр представлений календаря
type ViewRegistry interface {
	Create(ownerID int64) *views.View
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
