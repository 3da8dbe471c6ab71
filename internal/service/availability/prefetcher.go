package availability

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/metrics"
)

// Prefetcher прогревает кэш переопределений для видимого окна календаря
type Prefetcher struct {
	source      OverrideSource
	concurrency int
	metrics     MetricsRecorder
	logger      Logger
}

// NewPrefetcher создает прогреватель кэша
// concurrency <= 0 - без ограничения числа одновременных запросов
// m может быть nil
func NewPrefetcher(source OverrideSource, concurrency int, m MetricsRecorder, logger Logger) *Prefetcher {
	return &Prefetcher{
		source:      source,
		concurrency: concurrency,
		metrics:     m,
		logger:      logger,
	}
}

// Warm загружает переопределения для каждой даты из [from, to] включительно
// и записывает их в cache. Запросы выполняются параллельно, ошибка одной даты
// не прерывает остальные: дата остаётся неизвестной и разрешается по недельному расписанию.
// Warm ничего не возвращает; повторные и пересекающиеся вызовы идемпотентны
func (p *Prefetcher) Warm(ctx context.Context, from, to time.Time, cache *OverrideCache) {
	dates := EnumerateDates(from, to)
	if len(dates) == 0 {
		return
	}

	started := time.Now()

	var g errgroup.Group
	if p.concurrency > 0 {
		g.SetLimit(p.concurrency)
	}

	for _, date := range dates {
		g.Go(func() error {
			p.warmDate(ctx, date, cache)
			// ошибки не отменяют соседние запросы
			return nil
		})
	}
	_ = g.Wait()

	elapsed := time.Since(started)
	p.observeWarm(elapsed)
	p.logger.Info("Warm: settled %d lookups for %s..%s in %s",
		len(dates), domain.FormatDate(dates[0]), domain.FormatDate(dates[len(dates)-1]), elapsed)
}

func (p *Prefetcher) warmDate(ctx context.Context, date time.Time, cache *OverrideCache) {
	override, err := p.source.GetDateOverride(ctx, date)
	if err != nil {
		p.logger.Warn("Warm: lookup failed for date=%s, falling back to weekly pattern: %v",
			domain.FormatDate(date), err)
		p.observeLookup(metrics.LookupFailed)
		return
	}

	if override == nil {
		p.logger.Debug("Warm: no override for date=%s", domain.FormatDate(date))
		cache.Store(date, nil)
		p.observeLookup(metrics.LookupAbsent)
		return
	}

	override.Date = date
	p.logger.Debug("Warm: override for date=%s, %d ranges", domain.FormatDate(date), len(override.Ranges))
	cache.Store(date, override)
	p.observeLookup(metrics.LookupOverride)
}

func (p *Prefetcher) observeLookup(result string) {
	if p.metrics != nil {
		p.metrics.ObserveLookup(result)
	}
}

func (p *Prefetcher) observeWarm(d time.Duration) {
	if p.metrics != nil {
		p.metrics.ObserveWarm(d)
	}
}

// EnumerateDates возвращает все календарные даты [from, to] включительно
// Пустой результат, если from позже to
func EnumerateDates(from, to time.Time) []time.Time {
	start, end := domain.DateOf(from), domain.DateOf(to)
	if end.Before(start) {
		return nil
	}

	dates := make([]time.Time, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}
