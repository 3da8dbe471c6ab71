package availability

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// OverrideLookup чтение кэша переопределений (реализуется *OverrideCache)
type OverrideLookup interface {
	Lookup(date time.Time) (override *domain.DateOverride, known bool)
}

// Resolve вычисляет рабочие часы на дату
// Результат зависит только от правила дня недели и переопределения даты:
//  1. подтверждённое переопределение (в т.ч. пустое - закрыто) -> source=override
//  2. активное непустое правило дня недели -> source=pattern
//  3. иначе закрыто, source=pattern
//
// Функция чистая: не ходит в сеть и не заполняет кэш. Порядок интервалов сохраняется
func Resolve(date time.Time, pattern domain.WeeklyPattern, overrides OverrideLookup) domain.Resolution {
	if overrides != nil {
		if override, known := overrides.Lookup(date); known && override != nil {
			return domain.Resolution{
				Ranges: domain.CloneRanges(override.Ranges),
				IsOpen: len(override.Ranges) > 0,
				Source: domain.SourceOverride,
			}
		}
	}

	rule, ok := pattern.Rule(domain.WeekdayOf(date))
	if ok && rule.IsOpen() {
		return domain.Resolution{
			Ranges: domain.CloneRanges(rule.Ranges),
			IsOpen: true,
			Source: domain.SourcePattern,
		}
	}

	return domain.Resolution{
		Ranges: []domain.TimeRange{},
		IsOpen: false,
		Source: domain.SourcePattern,
	}
}
