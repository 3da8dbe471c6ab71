package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
)

type fakeRepo struct {
	rules     map[domain.Weekday]domain.WeeklyRule
	overrides map[string]domain.DateOverride
	writeErr  error
	writes    int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		rules:     make(map[domain.Weekday]domain.WeeklyRule),
		overrides: make(map[string]domain.DateOverride),
	}
}

func (r *fakeRepo) GetWeeklyRules(context.Context) ([]domain.WeeklyRule, error) {
	return domain.WeeklyPattern(r.rules).Rules(), nil
}

func (r *fakeRepo) ReplaceWeeklyRule(_ context.Context, rule domain.WeeklyRule) error {
	if r.writeErr != nil {
		return r.writeErr
	}
	r.writes++
	r.rules[rule.Weekday] = rule
	return nil
}

func (r *fakeRepo) GetDateOverride(_ context.Context, date time.Time) (*domain.DateOverride, error) {
	o, ok := r.overrides[domain.FormatDate(date)]
	if !ok {
		return nil, scheduleRepo.ErrOverrideNotFound
	}
	return &o, nil
}

func (r *fakeRepo) ReplaceDateOverride(_ context.Context, o domain.DateOverride) error {
	if r.writeErr != nil {
		return r.writeErr
	}
	r.writes++
	r.overrides[domain.FormatDate(o.Date)] = o
	return nil
}

type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

func newTestService(repo *fakeRepo) (*Service, *fakeTxManager) {
	tx := &fakeTxManager{}
	svc := NewService(repo, tx, logger.NewNop())
	svc.timeProvider = fixedTime{t: time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)}
	return svc, tx
}

func TestReplaceWeeklyPattern(t *testing.T) {
	repo := newFakeRepo()
	svc, tx := newTestService(repo)

	rules, err := svc.ReplaceWeeklyPattern(context.Background(), domain.Monday,
		[]domain.TimeRange{domain.MustTimeRange("09:00", "17:00")})
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.True(t, rules[0].Active)
	assert.Equal(t, 1, tx.calls)
	assert.False(t, rules[0].UpdatedAt.IsZero())

	rules, err = svc.ReplaceWeeklyPattern(context.Background(), domain.Monday, nil)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.False(t, rules[0].Active)
	assert.Empty(t, rules[0].Ranges)
}

func TestReplaceWeeklyPatternValidation(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)

	_, err := svc.ReplaceWeeklyPattern(context.Background(), domain.Weekday("FUNDAY"), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ReplaceWeeklyPattern(context.Background(), domain.Monday, []domain.TimeRange{
		{StartTime: "17:00", EndTime: "09:00"},
	})
	vErr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "ranges[0].endTime", vErr.Field)
	assert.Zero(t, repo.writes)
}

func TestReplaceWeeklyPatternRepositoryError(t *testing.T) {
	repo := newFakeRepo()
	repo.writeErr = errors.New("connection refused")
	svc, _ := newTestService(repo)

	_, err := svc.ReplaceWeeklyPattern(context.Background(), domain.Friday,
		[]domain.TimeRange{domain.MustTimeRange("10:00", "18:00")})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestDateOverrideRoundTrip(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)
	date := time.Date(2024, time.June, 10, 15, 30, 0, 0, time.UTC)

	override, err := svc.GetDateOverride(context.Background(), date)
	require.NoError(t, err)
	assert.Nil(t, override)

	require.NoError(t, svc.SetDateOverride(context.Background(), date, nil))

	override, err = svc.GetDateOverride(context.Background(), date)
	require.NoError(t, err)
	require.NotNil(t, override)
	assert.True(t, override.IsClosed())
	assert.Equal(t, "2024-06-10", domain.FormatDate(override.Date))
}

func TestSetDateOverrideValidation(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)

	err := svc.SetDateOverride(context.Background(), time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
		[]domain.TimeRange{
			domain.MustTimeRange("09:00", "13:00"),
			domain.MustTimeRange("12:00", "15:00"),
		})
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
	assert.Zero(t, repo.writes)

	err = svc.SetDateOverride(context.Background(), time.Time{}, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
