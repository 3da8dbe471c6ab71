package export_calendar

import (
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/availability"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

const (
	productID    = "-//SMC//ScheduleService//RU"
	uidDomain    = "schedule.smc"
	localTimeFmt = "20060102T150405"

	summaryOpen     = "Студия открыта"
	summaryOverride = "Студия открыта (особый день)"
)

var rruleWeekdays = map[domain.Weekday]rrule.Weekday{
	domain.Monday:    rrule.MO,
	domain.Tuesday:   rrule.TU,
	domain.Wednesday: rrule.WE,
	domain.Thursday:  rrule.TH,
	domain.Friday:    rrule.FR,
	domain.Saturday:  rrule.SA,
	domain.Sunday:    rrule.SU,
}

// calendarBuilder собирает VCALENDAR: недельные правила - повторяющиеся события с EXDATE
// на датах с переопределением, переопределения - одиночные события
type calendarBuilder struct {
	cal      *ical.Calendar
	location *time.Location
	stamp    time.Time
	events   int
}

func newCalendarBuilder(location *time.Location, stamp time.Time) *calendarBuilder {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	return &calendarBuilder{cal: cal, location: location, stamp: stamp}
}

// addWeeklyRule добавляет по одному повторяющемуся событию на интервал правила
func (b *calendarBuilder) addWeeklyRule(rule domain.WeeklyRule, window domain.DateWindow, overrides availability.OverrideLookup) error {
	first, ok := firstWeekdayOf(window, rule.Weekday)
	if !ok {
		return nil
	}

	for i, tr := range rule.Ranges {
		opt := rrule.ROption{
			Freq:      rrule.WEEKLY,
			Dtstart:   tr.StartTime.On(first, b.location),
			Until:     tr.EndTime.On(window.To, b.location),
			Byweekday: []rrule.Weekday{rruleWeekdays[rule.Weekday]},
		}
		r, err := rrule.NewRRule(opt)
		if err != nil {
			return fmt.Errorf("build rrule for %s: %w", rule.Weekday, err)
		}

		uid := fmt.Sprintf("weekly-%s-%d@%s", strings.ToLower(rule.Weekday.String()), i, uidDomain)
		event := b.newEvent(uid, summaryOpen, first, tr)
		event.AddProperty(ical.ComponentPropertyRrule, opt.RRuleString())

		// Дата с переопределением исключается из повторений
		for _, occurrence := range r.All() {
			date := domain.DateOf(occurrence)
			if override, known := overrides.Lookup(date); known && override != nil {
				event.AddProperty(ical.ComponentPropertyExdate, b.localTime(tr.StartTime, date), b.tzid())
			}
		}
	}

	return nil
}

// addOverride добавляет события открытых интервалов переопределения
// Закрытая дата событий не порождает
func (b *calendarBuilder) addOverride(override domain.DateOverride) {
	date := domain.DateOf(override.Date)
	for i, tr := range override.Ranges {
		uid := fmt.Sprintf("override-%s-%d@%s", domain.FormatDate(date), i, uidDomain)
		b.newEvent(uid, summaryOverride, date, tr)
	}
}

func (b *calendarBuilder) newEvent(uid, summary string, date time.Time, tr domain.TimeRange) *ical.VEvent {
	event := b.cal.AddEvent(uid)
	event.SetDtStampTime(b.stamp)
	event.SetProperty(ical.ComponentPropertyDtStart, b.localTime(tr.StartTime, date), b.tzid())
	event.SetProperty(ical.ComponentPropertyDtEnd, b.localTime(tr.EndTime, date), b.tzid())
	event.SetSummary(summary)
	event.SetDescription(tr.String())
	b.events++
	return event
}

func (b *calendarBuilder) localTime(t types.TimeString, date time.Time) string {
	return t.On(date, b.location).Format(localTimeFmt)
}

func (b *calendarBuilder) tzid() ical.PropertyParameter {
	return &ical.KeyValues{Key: string(ical.ParameterTzid), Value: []string{b.location.String()}}
}

func (b *calendarBuilder) serialize() string {
	return b.cal.Serialize()
}

// firstWeekdayOf первая дата окна с указанным днём недели
func firstWeekdayOf(window domain.DateWindow, weekday domain.Weekday) (time.Time, bool) {
	for d := window.From; !d.After(window.To) && d.Before(window.From.AddDate(0, 0, 7)); d = d.AddDate(0, 0, 1) {
		if domain.WeekdayOf(d) == weekday {
			return d, true
		}
	}
	return time.Time{}, false
}
