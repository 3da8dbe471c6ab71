package availability

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
	"github.com/m04kA/SMC-ScheduleService/pkg/metrics"
)

type fakeSource struct {
	mu        sync.Mutex
	overrides map[string]domain.DateOverride
	failing   map[string]bool
	calls     int32
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		overrides: make(map[string]domain.DateOverride),
		failing:   make(map[string]bool),
	}
}

func (s *fakeSource) set(date string, ranges ...domain.TimeRange) {
	d, _ := domain.ParseDate(date)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[date] = domain.DateOverride{Date: d, Ranges: domain.CloneRanges(ranges)}
}

func (s *fakeSource) GetDateOverride(_ context.Context, date time.Time) (*domain.DateOverride, error) {
	atomic.AddInt32(&s.calls, 1)
	key := domain.FormatDate(date)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failing[key] {
		return nil, errors.New("connection reset")
	}
	override, ok := s.overrides[key]
	if !ok {
		return nil, nil
	}
	return &override, nil
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

func mondayPattern() domain.WeeklyPattern {
	return domain.NewWeeklyPattern([]domain.WeeklyRule{
		domain.NewWeeklyRule(domain.Monday, []domain.TimeRange{domain.MustTimeRange("09:00", "17:00")}),
	})
}

func TestResolveOverridePrecedence(t *testing.T) {
	pattern := mondayPattern()
	monday := mustDate(t, "2024-06-10")

	cases := []struct {
		name    string
		ranges  []domain.TimeRange
		wantOpn bool
	}{
		{name: "closed override", ranges: nil, wantOpn: false},
		{name: "shorter hours", ranges: []domain.TimeRange{domain.MustTimeRange("10:00", "12:00")}, wantOpn: true},
		{name: "split day", ranges: []domain.TimeRange{
			domain.MustTimeRange("08:00", "11:00"),
			domain.MustTimeRange("13:00", "20:00"),
		}, wantOpn: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cache := NewOverrideCache()
			cache.Store(monday, &domain.DateOverride{Date: monday, Ranges: tc.ranges})

			res := Resolve(monday, pattern, cache)
			assert.Equal(t, domain.SourceOverride, res.Source)
			assert.Equal(t, tc.wantOpn, res.IsOpen)
			assert.Equal(t, domain.CloneRanges(tc.ranges), res.Ranges)
		})
	}
}

func TestResolvePatternFallback(t *testing.T) {
	pattern := domain.NewWeeklyPattern([]domain.WeeklyRule{
		domain.NewWeeklyRule(domain.Monday, []domain.TimeRange{domain.MustTimeRange("09:00", "17:00")}),
		domain.NewWeeklyRule(domain.Tuesday, nil),
		{Weekday: domain.Wednesday, Ranges: []domain.TimeRange{domain.MustTimeRange("09:00", "12:00")}, Active: false},
	})
	cache := NewOverrideCache()
	// подтверждённое отсутствие ведёт себя как неизвестная дата
	cache.Store(mustDate(t, "2024-06-10"), nil)

	res := Resolve(mustDate(t, "2024-06-10"), pattern, cache)
	assert.Equal(t, domain.Resolution{
		Ranges: []domain.TimeRange{domain.MustTimeRange("09:00", "17:00")},
		IsOpen: true,
		Source: domain.SourcePattern,
	}, res)

	for _, date := range []string{"2024-06-11", "2024-06-12", "2024-06-16"} {
		res := Resolve(mustDate(t, date), pattern, cache)
		assert.False(t, res.IsOpen, date)
		assert.Empty(t, res.Ranges, date)
		assert.Equal(t, domain.SourcePattern, res.Source, date)
	}

	// без кэша
	assert.True(t, Resolve(mustDate(t, "2024-06-17"), pattern, nil).IsOpen)
}

func TestResolveConcreteMondayScenario(t *testing.T) {
	pattern := mondayPattern()
	cache := NewOverrideCache()
	nextMonday := mustDate(t, "2024-06-10")

	assert.Equal(t, domain.Resolution{
		Ranges: []domain.TimeRange{domain.MustTimeRange("09:00", "17:00")},
		IsOpen: true,
		Source: domain.SourcePattern,
	}, Resolve(nextMonday, pattern, cache))

	cache.Confirm(domain.DateOverride{Date: nextMonday, Ranges: []domain.TimeRange{}})

	assert.Equal(t, domain.Resolution{
		Ranges: []domain.TimeRange{},
		IsOpen: false,
		Source: domain.SourceOverride,
	}, Resolve(nextMonday, pattern, cache))
}

func TestOverrideCacheStates(t *testing.T) {
	cache := NewOverrideCache()
	date := mustDate(t, "2024-06-10")

	_, known := cache.Lookup(date)
	assert.False(t, known)

	cache.Store(date, nil)
	override, known := cache.Lookup(date)
	assert.True(t, known)
	assert.Nil(t, override)

	cache.Confirm(domain.DateOverride{Date: date, Ranges: []domain.TimeRange{domain.MustTimeRange("10:00", "11:00")}})
	// прогрев не перетирает сохранённое оператором значение
	cache.Store(date, nil)
	override, known = cache.Lookup(date)
	require.True(t, known)
	require.NotNil(t, override)
	assert.Len(t, override.Ranges, 1)

	// изменение результата Lookup не влияет на кэш
	override.Ranges[0] = domain.MustTimeRange("00:00", "23:00")
	again, _ := cache.Lookup(date)
	assert.Equal(t, domain.MustTimeRange("10:00", "11:00"), again.Ranges[0])

	cache.Reset()
	assert.Equal(t, 0, cache.Len())
}

func TestBuildGridAlwaysFortyTwoCells(t *testing.T) {
	months := []string{
		"2024-02", // 29 дней, начинается в четверг
		"2023-02", // 28 дней, среда
		"2021-02", // 28 дней, понедельник (ровно 4 недели)
		"2024-04", // 30 дней, понедельник
		"2024-09", // 30 дней, воскресенье
		"2024-06", // 30 дней, суббота
		"2024-03", // 31 день, пятница
		"2024-05", // 31 день, среда
		"2024-10", // 31 день, вторник
		"2024-08", // 31 день, четверг
	}

	startWeekdays := make(map[time.Weekday]bool)
	for _, m := range months {
		t.Run(m, func(t *testing.T) {
			month, err := domain.ParseMonth(m)
			require.NoError(t, err)
			startWeekdays[month.Weekday()] = true

			cells := BuildGrid(month, mustDate(t, "2024-06-15"), mondayPattern(), NewOverrideCache())
			require.Len(t, cells, domain.GridCells)

			inMonth := 0
			for _, c := range cells {
				if c.IsCurrentMonth {
					inMonth++
				}
			}
			assert.Equal(t, domain.MonthEnd(month).Day(), inMonth)

			assert.Equal(t, time.Monday, cells[0].Date.Weekday())
			assert.Equal(t, time.Sunday, cells[len(cells)-1].Date.Weekday())

			window := GridWindow(month)
			assert.True(t, window.From.Equal(cells[0].Date))
			assert.True(t, window.To.Equal(cells[len(cells)-1].Date))
		})
	}

	assert.Len(t, startWeekdays, 7)
}

func TestBuildGridCellFlags(t *testing.T) {
	month, err := domain.ParseMonth("2024-06")
	require.NoError(t, err)
	cache := NewOverrideCache()
	cache.Store(mustDate(t, "2024-06-10"), &domain.DateOverride{Ranges: nil})

	// время суток не влияет на isToday/isPast
	today := time.Date(2024, time.June, 12, 23, 59, 0, 0, time.UTC)
	cells := BuildGrid(month, today, mondayPattern(), cache)

	byDate := make(map[string]domain.CalendarCell, len(cells))
	for _, c := range cells {
		byDate[domain.FormatDate(c.Date)] = c
	}

	// 1 июня 2024 - суббота, сетка начинается с 27 мая
	assert.Equal(t, "2024-05-27", domain.FormatDate(cells[0].Date))
	assert.False(t, byDate["2024-05-27"].IsCurrentMonth)
	assert.True(t, byDate["2024-05-27"].IsOpen)

	assert.True(t, byDate["2024-06-12"].IsToday)
	assert.False(t, byDate["2024-06-12"].IsPast)
	assert.True(t, byDate["2024-06-11"].IsPast)

	assert.True(t, byDate["2024-06-10"].HasOverride)
	assert.False(t, byDate["2024-06-10"].IsOpen)
	assert.True(t, byDate["2024-06-17"].IsOpen)
	assert.False(t, byDate["2024-06-17"].HasOverride)
}

func TestViewWindow(t *testing.T) {
	month, err := domain.ParseMonth("2024-06")
	require.NoError(t, err)

	single := ViewWindow(month, 1)
	assert.True(t, single.Equal(GridWindow(month)))

	triple := ViewWindow(month, 3)
	assert.Equal(t, "2024-05-27", domain.FormatDate(triple.From))
	assert.Equal(t, "2024-09-08", domain.FormatDate(triple.To))
}

func TestEnumerateDates(t *testing.T) {
	dates := EnumerateDates(mustDate(t, "2024-02-27"), mustDate(t, "2024-03-02"))
	require.Len(t, dates, 5)
	assert.Equal(t, "2024-02-29", domain.FormatDate(dates[2]))

	assert.Empty(t, EnumerateDates(mustDate(t, "2024-03-02"), mustDate(t, "2024-02-27")))
}

func TestWarmIsIdempotentForOverlappingWindows(t *testing.T) {
	source := newFakeSource()
	source.set("2024-06-10")
	source.set("2024-06-14", domain.MustTimeRange("12:00", "16:00"))
	pattern := mondayPattern()
	prefetcher := NewPrefetcher(source, 4, nil, logger.NewNop())

	once := NewOverrideCache()
	prefetcher.Warm(context.Background(), mustDate(t, "2024-06-01"), mustDate(t, "2024-06-20"), once)

	twice := NewOverrideCache()
	prefetcher.Warm(context.Background(), mustDate(t, "2024-06-01"), mustDate(t, "2024-06-20"), twice)
	prefetcher.Warm(context.Background(), mustDate(t, "2024-06-08"), mustDate(t, "2024-06-30"), twice)

	for _, date := range EnumerateDates(mustDate(t, "2024-06-08"), mustDate(t, "2024-06-20")) {
		assert.Equal(t, Resolve(date, pattern, once), Resolve(date, pattern, twice), domain.FormatDate(date))
	}
	assert.Equal(t, 30, twice.Len())
}

func TestWarmSettlesAllOnSingleFailure(t *testing.T) {
	source := newFakeSource()
	for d := 1; d <= 30; d++ {
		if d%2 == 0 {
			source.set(fmt.Sprintf("2024-06-%02d", d))
		}
	}
	source.set("2024-06-10") // понедельник, закрыт
	source.failing["2024-06-17"] = true

	m := metrics.New("test")
	prefetcher := NewPrefetcher(source, 0, m, logger.NewNop())
	cache := NewOverrideCache()
	pattern := mondayPattern()

	prefetcher.Warm(context.Background(), mustDate(t, "2024-06-01"), mustDate(t, "2024-06-30"), cache)

	assert.EqualValues(t, 30, atomic.LoadInt32(&source.calls))
	assert.Equal(t, 29, cache.Len())

	_, known := cache.Lookup(mustDate(t, "2024-06-17"))
	assert.False(t, known)
	failed := Resolve(mustDate(t, "2024-06-17"), pattern, cache)
	assert.Equal(t, domain.SourcePattern, failed.Source)
	assert.True(t, failed.IsOpen)

	for d := 1; d <= 30; d++ {
		date := mustDate(t, fmt.Sprintf("2024-06-%02d", d))
		if d == 17 {
			continue
		}
		res := Resolve(date, pattern, cache)
		assert.Equal(t, d%2 == 0, res.Source == domain.SourceOverride, domain.FormatDate(date))
	}
}

func TestWarmDoesNotOverrideConfirmedSave(t *testing.T) {
	source := newFakeSource()
	date := mustDate(t, "2024-06-10")
	cache := NewOverrideCache()
	cache.Confirm(domain.DateOverride{Date: date})

	NewPrefetcher(source, 2, nil, logger.NewNop()).Warm(context.Background(), date, date, cache)

	override, known := cache.Lookup(date)
	require.True(t, known)
	require.NotNil(t, override)
	assert.True(t, override.IsClosed())
}

func TestWarmEmptyWindow(t *testing.T) {
	source := newFakeSource()
	cache := NewOverrideCache()

	NewPrefetcher(source, 2, nil, logger.NewNop()).
		Warm(context.Background(), mustDate(t, "2024-06-10"), mustDate(t, "2024-06-01"), cache)

	assert.Zero(t, atomic.LoadInt32(&source.calls))
	assert.Zero(t, cache.Len())
}

func TestWarmConcurrentReentry(t *testing.T) {
	source := newFakeSource()
	source.set("2024-06-05", domain.MustTimeRange("10:00", "14:00"))
	prefetcher := NewPrefetcher(source, 3, nil, logger.NewNop())
	cache := NewOverrideCache()
	from, to := mustDate(t, "2024-06-01"), mustDate(t, "2024-06-10")

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			prefetcher.Warm(context.Background(), from, to, cache)
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, cache.Len())
	override, known := cache.Lookup(mustDate(t, "2024-06-05"))
	require.True(t, known)
	require.NotNil(t, override)
	assert.Equal(t, "2024-06-05", domain.FormatDate(override.Date))
}
