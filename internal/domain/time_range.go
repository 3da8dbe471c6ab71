package domain

import (
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// TimeRange полуоткрытый интервал [StartTime, EndTime) в пределах одного дня
type TimeRange struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// NewTimeRange создает интервал из строк HH:MM с проверкой start < end
func NewTimeRange(start, end string) (TimeRange, error) {
	r := TimeRange{StartTime: types.TimeString(start), EndTime: types.TimeString(end)}
	if err := r.validate("range"); err != nil {
		return TimeRange{}, err
	}
	return r, nil
}

// MustTimeRange аналог NewTimeRange, паникует при ошибке (для тестов и констант)
func MustTimeRange(start, end string) TimeRange {
	r, err := NewTimeRange(start, end)
	if err != nil {
		panic(err)
	}
	return r
}

// DefaultTimeRange интервал 09:00-17:00 для предзаполнения редактора
func DefaultTimeRange() TimeRange {
	return MustTimeRange(DefaultRangeStart, DefaultRangeEnd)
}

// Overlaps возвращает true, если интервалы пересекаются
// Соприкасающиеся интервалы (09:00-12:00 и 12:00-15:00) не пересекаются
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.StartTime.IsBefore(other.EndTime) && r.EndTime.IsAfter(other.StartTime)
}

func (r TimeRange) String() string {
	return fmt.Sprintf("%s-%s", r.StartTime, r.EndTime)
}

func (r TimeRange) validate(field string) error {
	if err := r.StartTime.Validate(); err != nil {
		return &ValidationError{Field: field + ".startTime", Message: "expected HH:MM"}
	}
	if err := r.EndTime.Validate(); err != nil {
		return &ValidationError{Field: field + ".endTime", Message: "expected HH:MM"}
	}
	if !r.StartTime.IsBefore(r.EndTime) {
		return &ValidationError{Field: field + ".endTime", Message: "must be after startTime"}
	}
	return nil
}

// ValidateRanges проверяет интервалы одного дня перед записью:
// каждый интервал валиден, интервалы идут по возрастанию и не пересекаются
// Пустой список валиден (день закрыт)
func ValidateRanges(ranges []TimeRange) error {
	if len(ranges) > MaxRangesPerDay {
		return &ValidationError{Field: "ranges", Message: fmt.Sprintf("at most %d ranges per day", MaxRangesPerDay)}
	}

	for i, r := range ranges {
		field := fmt.Sprintf("ranges[%d]", i)
		if err := r.validate(field); err != nil {
			return err
		}
		if i == 0 {
			continue
		}

		prev := ranges[i-1]
		if r.Overlaps(prev) {
			return &ValidationError{Field: field, Message: fmt.Sprintf("overlaps %s", prev)}
		}
		if r.StartTime.IsBefore(prev.EndTime) {
			return &ValidationError{Field: field + ".startTime", Message: "ranges must be in ascending order"}
		}
	}

	return nil
}

// CloneRanges копирует срез интервалов; nil превращается в пустой срез
func CloneRanges(ranges []TimeRange) []TimeRange {
	out := make([]TimeRange, len(ranges))
	copy(out, ranges)
	return out
}
