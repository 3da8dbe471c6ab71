package handlers

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// TimeRange интервал HH:MM-HH:MM
type TimeRange struct {
	StartTime types.TimeString `json:"startTime"`
	EndTime   types.TimeString `json:"endTime"`
}

// RangesRequest тело запросов записи интервалов
// Ranges обязателен: пустой список означает "закрыто"
type RangesRequest struct {
	Ranges *[]TimeRange `json:"ranges"`
}

// WeeklyRule правило дня недели
type WeeklyRule struct {
	Weekday   string      `json:"weekday"`
	Ranges    []TimeRange `json:"ranges"`
	Active    bool        `json:"active"`
	UpdatedAt *time.Time  `json:"updatedAt,omitempty"`
}

// WeeklyPatternResponse недельное расписание
type WeeklyPatternResponse struct {
	Rules []WeeklyRule `json:"rules"`
}

// DateOverrideResponse переопределение даты
type DateOverrideResponse struct {
	Date   string      `json:"date"`
	Ranges []TimeRange `json:"ranges"`
}

// Resolution рабочие часы даты
type Resolution struct {
	Ranges []TimeRange `json:"ranges"`
	IsOpen bool        `json:"isOpen"`
	Source string      `json:"source"`
}

// CalendarCell ячейка сетки месяца
type CalendarCell struct {
	Date           string      `json:"date"`
	IsCurrentMonth bool        `json:"isCurrentMonth"`
	IsToday        bool        `json:"isToday"`
	IsPast         bool        `json:"isPast"`
	IsOpen         bool        `json:"isOpen"`
	ResolvedRanges []TimeRange `json:"resolvedRanges"`
	HasOverride    bool        `json:"hasOverride"`
}

// EditorSession сессия редактора
type EditorSession struct {
	ID         string      `json:"id"`
	Date       string      `json:"date"`
	Weekday    string      `json:"weekday"`
	Mode       string      `json:"mode"`
	Ranges     []TimeRange `json:"ranges"`
	Resolution Resolution  `json:"resolution"`
}

// ToDomainRanges конвертирует интервалы запроса
func ToDomainRanges(ranges []TimeRange) []domain.TimeRange {
	out := make([]domain.TimeRange, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, domain.TimeRange{StartTime: r.StartTime, EndTime: r.EndTime})
	}
	return out
}

// FromDomainRanges конвертирует интервалы для ответа; nil превращается в []
func FromDomainRanges(ranges []domain.TimeRange) []TimeRange {
	out := make([]TimeRange, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, TimeRange{StartTime: r.StartTime, EndTime: r.EndTime})
	}
	return out
}

// FromDomainRules конвертирует недельное расписание
func FromDomainRules(rules []domain.WeeklyRule) WeeklyPatternResponse {
	resp := WeeklyPatternResponse{Rules: make([]WeeklyRule, 0, len(rules))}
	for _, rule := range rules {
		item := WeeklyRule{
			Weekday: rule.Weekday.String(),
			Ranges:  FromDomainRanges(rule.Ranges),
			Active:  rule.Active,
		}
		if !rule.UpdatedAt.IsZero() {
			updatedAt := rule.UpdatedAt
			item.UpdatedAt = &updatedAt
		}
		resp.Rules = append(resp.Rules, item)
	}
	return resp
}

// FromDomainResolution конвертирует рабочие часы даты
func FromDomainResolution(res domain.Resolution) Resolution {
	return Resolution{
		Ranges: FromDomainRanges(res.Ranges),
		IsOpen: res.IsOpen,
		Source: string(res.Source),
	}
}

// FromDomainCells конвертирует ячейки сетки
func FromDomainCells(cells []domain.CalendarCell) []CalendarCell {
	out := make([]CalendarCell, 0, len(cells))
	for _, c := range cells {
		out = append(out, CalendarCell{
			Date:           domain.FormatDate(c.Date),
			IsCurrentMonth: c.IsCurrentMonth,
			IsToday:        c.IsToday,
			IsPast:         c.IsPast,
			IsOpen:         c.IsOpen,
			ResolvedRanges: FromDomainRanges(c.ResolvedRanges),
			HasOverride:    c.HasOverride,
		})
	}
	return out
}

// FromDomainSession конвертирует сессию редактора
func FromDomainSession(s domain.EditorSession, res domain.Resolution) EditorSession {
	return EditorSession{
		ID:         s.ID.String(),
		Date:       domain.FormatDate(s.Date),
		Weekday:    s.Weekday.String(),
		Mode:       string(s.Mode),
		Ranges:     FromDomainRanges(s.Ranges),
		Resolution: FromDomainResolution(res),
	}
}
