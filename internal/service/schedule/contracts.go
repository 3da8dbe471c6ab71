package schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Repository интерфейс репозитория расписания
type Repository interface {
	GetWeeklyRules(ctx context.Context) ([]domain.WeeklyRule, error)
	ReplaceWeeklyRule(ctx context.Context, rule domain.WeeklyRule) error
	GetDateOverride(ctx context.Context, date time.Time) (*domain.DateOverride, error)
	ReplaceDateOverride(ctx context.Context, override domain.DateOverride) error
}

// TxManager выполняет функцию в транзакции
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
