package export_calendar

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/availability"
)

// PatternSource источник недельного расписания
type PatternSource interface {
	GetWeeklyPattern(ctx context.Context) ([]domain.WeeklyRule, error)
}

// Prefetcher загрузка переопределений окна в кэш
type Prefetcher interface {
	Warm(ctx context.Context, from, to time.Time, cache *availability.OverrideCache)
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
