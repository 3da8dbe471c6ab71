package availabilityservice

import (
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// TimeRange интервал в формате API
type TimeRange struct {
	StartTime types.TimeString `json:"startTime"`
	EndTime   types.TimeString `json:"endTime"`
}

// WeeklyRule правило дня недели в формате API
type WeeklyRule struct {
	Weekday string      `json:"weekday"`
	Ranges  []TimeRange `json:"ranges"`
	Active  bool        `json:"active"`
}

// WeeklyPatternResponse ответ GET/PUT /availability/weekly
type WeeklyPatternResponse struct {
	Rules []WeeklyRule `json:"rules"`
}

// DateOverride переопределение даты в формате API
type DateOverride struct {
	Date   string      `json:"date"`
	Ranges []TimeRange `json:"ranges"`
}

// RangesRequest тело PUT запросов
type RangesRequest struct {
	Ranges []TimeRange `json:"ranges"`
}

// ErrorResponse модель ошибки от сервиса
type ErrorResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func toAPIRanges(ranges []domain.TimeRange) []TimeRange {
	out := make([]TimeRange, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, TimeRange{StartTime: r.StartTime, EndTime: r.EndTime})
	}
	return out
}

func toDomainRanges(ranges []TimeRange) []domain.TimeRange {
	out := make([]domain.TimeRange, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, domain.TimeRange{StartTime: r.StartTime, EndTime: r.EndTime})
	}
	return out
}

func toDomainRules(rules []WeeklyRule) ([]domain.WeeklyRule, error) {
	out := make([]domain.WeeklyRule, 0, len(rules))
	for _, r := range rules {
		wd, err := domain.ParseWeekday(r.Weekday)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.WeeklyRule{
			Weekday: wd,
			Ranges:  toDomainRanges(r.Ranges),
			Active:  r.Active,
		})
	}
	return out, nil
}
