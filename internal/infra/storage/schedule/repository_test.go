package schedule

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

type execCall struct {
	query string
	args  []interface{}
}

// recordingExecutor запоминает выполненные запросы вместо обращения к БД
type recordingExecutor struct {
	calls   []execCall
	execErr error
}

func (e *recordingExecutor) ExecContext(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	e.calls = append(e.calls, execCall{query: query, args: args})
	if e.execErr != nil {
		return nil, e.execErr
	}
	return driver.RowsAffected(1), nil
}

func (e *recordingExecutor) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, errors.New("not supported")
}

func (e *recordingExecutor) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

type recordingTx struct {
	recordingExecutor
}

func (tx *recordingTx) Commit() error   { return nil }
func (tx *recordingTx) Rollback() error { return nil }

func TestReplaceWeeklyRuleQueries(t *testing.T) {
	db := &recordingExecutor{}
	repo := NewRepository(db)
	updatedAt := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)

	err := repo.ReplaceWeeklyRule(context.Background(), domain.WeeklyRule{
		Weekday: domain.Monday,
		Ranges: []domain.TimeRange{
			domain.MustTimeRange("09:00", "12:00"),
			domain.MustTimeRange("13:00", "17:00"),
		},
		Active:    true,
		UpdatedAt: updatedAt,
	})
	require.NoError(t, err)
	require.Len(t, db.calls, 3)

	assert.Equal(t, "INSERT INTO weekly_rules (weekday,active,updated_at) VALUES ($1,$2,$3) "+
		"ON CONFLICT (weekday) DO UPDATE SET active = EXCLUDED.active, updated_at = EXCLUDED.updated_at",
		db.calls[0].query)
	assert.Equal(t, []interface{}{"MONDAY", true, updatedAt}, db.calls[0].args)

	assert.Equal(t, "DELETE FROM weekly_rule_ranges WHERE weekday = $1", db.calls[1].query)
	assert.Equal(t, []interface{}{"MONDAY"}, db.calls[1].args)

	assert.Equal(t, "INSERT INTO weekly_rule_ranges (weekday,position,start_time,end_time) "+
		"VALUES ($1,$2,$3,$4),($5,$6,$7,$8)", db.calls[2].query)
	assert.Equal(t, []interface{}{
		"MONDAY", 0, types.TimeString("09:00"), types.TimeString("12:00"),
		"MONDAY", 1, types.TimeString("13:00"), types.TimeString("17:00"),
	}, db.calls[2].args)
}

func TestReplaceWeeklyRuleWithoutRanges(t *testing.T) {
	db := &recordingExecutor{}
	repo := NewRepository(db)

	err := repo.ReplaceWeeklyRule(context.Background(), domain.WeeklyRule{Weekday: domain.Sunday})
	require.NoError(t, err)

	// интервалы только удаляются, вставки нет
	require.Len(t, db.calls, 2)
	assert.Equal(t, "DELETE FROM weekly_rule_ranges WHERE weekday = $1", db.calls[1].query)
	assert.Equal(t, []interface{}{"SUNDAY"}, db.calls[1].args)
}

func TestReplaceDateOverrideQueries(t *testing.T) {
	db := &recordingExecutor{}
	repo := NewRepository(db)
	date := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	updatedAt := time.Date(2024, time.June, 9, 8, 30, 0, 0, time.UTC)

	err := repo.ReplaceDateOverride(context.Background(), domain.DateOverride{
		// время суток отбрасывается
		Date:      date.Add(15 * time.Hour),
		Ranges:    []domain.TimeRange{domain.MustTimeRange("10:00", "14:00")},
		UpdatedAt: updatedAt,
	})
	require.NoError(t, err)
	require.Len(t, db.calls, 3)

	assert.Equal(t, "INSERT INTO date_overrides (date,updated_at) VALUES ($1,$2) "+
		"ON CONFLICT (date) DO UPDATE SET updated_at = EXCLUDED.updated_at", db.calls[0].query)
	assert.Equal(t, []interface{}{date, updatedAt}, db.calls[0].args)

	assert.Equal(t, "DELETE FROM date_override_ranges WHERE date = $1", db.calls[1].query)
	assert.Equal(t, []interface{}{date}, db.calls[1].args)

	assert.Equal(t, "INSERT INTO date_override_ranges (date,position,start_time,end_time) VALUES ($1,$2,$3,$4)",
		db.calls[2].query)
	assert.Equal(t, []interface{}{date, 0, types.TimeString("10:00"), types.TimeString("14:00")}, db.calls[2].args)
}

func TestReplaceDateOverrideClosedDay(t *testing.T) {
	db := &recordingExecutor{}
	repo := NewRepository(db)
	date := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)

	// пустой список - день закрыт: строка переопределения есть, интервалов нет
	err := repo.ReplaceDateOverride(context.Background(), domain.DateOverride{Date: date, Ranges: []domain.TimeRange{}})
	require.NoError(t, err)
	require.Len(t, db.calls, 2)
	assert.Contains(t, db.calls[0].query, "INSERT INTO date_overrides")
	assert.Equal(t, "DELETE FROM date_override_ranges WHERE date = $1", db.calls[1].query)
}

func TestReplaceUsesTransactionFromContext(t *testing.T) {
	db := &recordingExecutor{}
	tx := &recordingTx{}
	repo := NewRepository(db)
	ctx := dbmetrics.WithTx(context.Background(), tx)

	require.NoError(t, repo.ReplaceWeeklyRule(ctx, domain.WeeklyRule{Weekday: domain.Monday}))
	assert.Empty(t, db.calls)
	assert.Len(t, tx.calls, 2)
}

func TestReplaceExecError(t *testing.T) {
	db := &recordingExecutor{execErr: errors.New("connection reset")}
	repo := NewRepository(db)

	err := repo.ReplaceDateOverride(context.Background(), domain.DateOverride{Date: time.Now()})
	assert.ErrorIs(t, err, ErrExecQuery)
	// после ошибки upsert остальные запросы не выполняются
	assert.Len(t, db.calls, 1)
}
