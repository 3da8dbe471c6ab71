package export_calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/availability"
)

// UseCase выгрузка рабочих часов студии в iCalendar
type UseCase struct {
	patterns     PatternSource
	prefetcher   Prefetcher
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(patterns PatternSource, prefetcher Prefetcher, location *time.Location, logger Logger) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		patterns:     patterns,
		prefetcher:   prefetcher,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute строит календарь открытых часов за период [From, To]
// Переопределения загружаются тем же прогревом, что и для сетки: дата с ошибкой загрузки
// выгружается по недельному расписанию
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ExportCalendar: validation failed: %v", err)
		return nil, err
	}
	window := domain.DateWindow{From: domain.DateOf(req.From), To: domain.DateOf(req.To)}

	uc.logger.Info("ExportCalendar: exporting %s", window)

	// 2. Недельное расписание
	rules, err := uc.patterns.GetWeeklyPattern(ctx)
	if err != nil {
		uc.logger.Error("ExportCalendar: failed to load weekly pattern: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrPatternUnavailable, err)
	}

	// 3. Переопределения периода
	cache := availability.NewOverrideCache()
	uc.prefetcher.Warm(ctx, window.From, window.To, cache)

	// 4. Сборка календаря
	builder := newCalendarBuilder(uc.location, uc.timeProvider.Now())
	for _, rule := range domain.NewWeeklyPattern(rules).Rules() {
		if !rule.IsOpen() {
			continue
		}
		if err := builder.addWeeklyRule(rule, window, cache); err != nil {
			uc.logger.Error("ExportCalendar: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	for _, date := range availability.EnumerateDates(window.From, window.To) {
		if override, known := cache.Lookup(date); known && override != nil {
			builder.addOverride(*override)
		}
	}

	uc.logger.Info("ExportCalendar: %s exported with %d events", window, builder.events)

	return &Response{
		Body:   builder.serialize(),
		Events: builder.events,
	}, nil
}
