package domain

import "time"

// WeeklyRule повторяющееся расписание одного дня недели
// Записывается только целиком (полная замена интервалов дня)
type WeeklyRule struct {
	Weekday   Weekday
	Ranges    []TimeRange
	Active    bool
	UpdatedAt time.Time
}

// IsOpen возвращает true, если по правилу студия открыта
func (r WeeklyRule) IsOpen() bool {
	return r.Active && len(r.Ranges) > 0
}

// NewWeeklyRule создает правило полной замены: активно, если есть хотя бы один интервал
func NewWeeklyRule(weekday Weekday, ranges []TimeRange) WeeklyRule {
	return WeeklyRule{
		Weekday: weekday,
		Ranges:  CloneRanges(ranges),
		Active:  len(ranges) > 0,
	}
}

// WeeklyPattern недельное расписание студии: день недели -> правило
// Отсутствующий день недели означает, что студия в этот день закрыта
type WeeklyPattern map[Weekday]WeeklyRule

// NewWeeklyPattern собирает расписание из списка правил
// При повторе дня недели побеждает последнее правило
func NewWeeklyPattern(rules []WeeklyRule) WeeklyPattern {
	pattern := make(WeeklyPattern, len(rules))
	for _, rule := range rules {
		pattern[rule.Weekday] = rule
	}
	return pattern
}

// Rule возвращает правило для дня недели
func (p WeeklyPattern) Rule(weekday Weekday) (WeeklyRule, bool) {
	rule, ok := p[weekday]
	return rule, ok
}

// Rules возвращает правила в порядке дней недели с понедельника
func (p WeeklyPattern) Rules() []WeeklyRule {
	rules := make([]WeeklyRule, 0, len(p))
	for _, wd := range Weekdays {
		if rule, ok := p[wd]; ok {
			rules = append(rules, rule)
		}
	}
	return rules
}

// DateOverride исключение из недельного расписания на конкретную дату
// Пустой Ranges означает, что студия в эту дату явно закрыта
type DateOverride struct {
	Date      time.Time
	Ranges    []TimeRange
	UpdatedAt time.Time
}

// IsClosed возвращает true, если переопределение закрывает дату
func (o DateOverride) IsClosed() bool {
	return len(o.Ranges) == 0
}
