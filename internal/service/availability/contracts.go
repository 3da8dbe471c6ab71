package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// OverrideSource источник переопределений дат (бэкенд доступности)
type OverrideSource interface {
	// GetDateOverride возвращает переопределение даты или nil без ошибки, если его нет
	GetDateOverride(ctx context.Context, date time.Time) (*domain.DateOverride, error)
}

// MetricsRecorder метрики прогрева кэша (реализуется *metrics.Metrics, может быть nil)
type MetricsRecorder interface {
	ObserveLookup(result string)
	ObserveWarm(d time.Duration)
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
