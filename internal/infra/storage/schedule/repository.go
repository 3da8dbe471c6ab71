package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

const (
	weeklyRulesTable    = "weekly_rules"
	weeklyRangesTable   = "weekly_rule_ranges"
	overridesTable      = "date_overrides"
	overrideRangesTable = "date_override_ranges"
)

// Repository репозиторий недельного расписания и переопределений дат
// Методы замены не открывают транзакцию сами: вызывающий код оборачивает их в txmanager
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWeeklyRules возвращает все сохранённые правила дней недели с интервалами
func (r *Repository) GetWeeklyRules(ctx context.Context) ([]domain.WeeklyRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("weekday", "active", "updated_at").
		From(weeklyRulesTable).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklyRules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklyRules - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make(map[domain.Weekday]*domain.WeeklyRule)
	for rows.Next() {
		var (
			weekday   string
			active    bool
			updatedAt sql.NullTime
		)
		if err := rows.Scan(&weekday, &active, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: GetWeeklyRules - scan row: %v", ErrScanRow, err)
		}

		wd := domain.Weekday(weekday)
		if !wd.IsValid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownWeekday, weekday)
		}
		rules[wd] = &domain.WeeklyRule{
			Weekday:   wd,
			Ranges:    []domain.TimeRange{},
			Active:    active,
			UpdatedAt: updatedAt.Time,
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeeklyRules - rows error: %v", ErrScanRow, err)
	}

	ranges, err := r.getWeeklyRanges(ctx, executor)
	if err != nil {
		return nil, err
	}
	for wd, list := range ranges {
		if rule, ok := rules[wd]; ok {
			rule.Ranges = list
		}
	}

	result := make([]domain.WeeklyRule, 0, len(rules))
	for _, wd := range domain.Weekdays {
		if rule, ok := rules[wd]; ok {
			result = append(result, *rule)
		}
	}

	return result, nil
}

func (r *Repository) getWeeklyRanges(ctx context.Context, executor DBExecutor) (map[domain.Weekday][]domain.TimeRange, error) {
	query, args, err := psqlbuilder.Select("weekday", "start_time", "end_time").
		From(weeklyRangesTable).
		OrderBy("weekday", "position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getWeeklyRanges - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getWeeklyRanges - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ranges := make(map[domain.Weekday][]domain.TimeRange)
	for rows.Next() {
		var (
			weekday string
			tr      domain.TimeRange
		)
		if err := rows.Scan(&weekday, &tr.StartTime, &tr.EndTime); err != nil {
			return nil, fmt.Errorf("%w: getWeeklyRanges - scan row: %v", ErrScanRow, err)
		}
		wd := domain.Weekday(weekday)
		ranges[wd] = append(ranges[wd], tr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getWeeklyRanges - rows error: %v", ErrScanRow, err)
	}

	return ranges, nil
}

// ReplaceWeeklyRule полностью заменяет правило дня недели и его интервалы
// Должен вызываться внутри транзакции
func (r *Repository) ReplaceWeeklyRule(ctx context.Context, rule domain.WeeklyRule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(weeklyRulesTable).
		Columns("weekday", "active", "updated_at").
		Values(rule.Weekday.String(), rule.Active, rule.UpdatedAt).
		Suffix("ON CONFLICT (weekday) DO UPDATE SET active = EXCLUDED.active, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWeeklyRule - build upsert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceWeeklyRule - execute upsert: %v", ErrExecQuery, err)
	}

	query, args, err = psqlbuilder.Delete(weeklyRangesTable).
		Where(squirrel.Eq{"weekday": rule.Weekday.String()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWeeklyRule - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceWeeklyRule - execute delete: %v", ErrExecQuery, err)
	}

	if len(rule.Ranges) == 0 {
		return nil
	}

	insert := psqlbuilder.Insert(weeklyRangesTable).
		Columns("weekday", "position", "start_time", "end_time")
	for i, tr := range rule.Ranges {
		insert = insert.Values(rule.Weekday.String(), i, tr.StartTime, tr.EndTime)
	}

	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWeeklyRule - build insert ranges query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceWeeklyRule - execute insert ranges: %v", ErrExecQuery, err)
	}

	return nil
}

// GetDateOverride получает переопределение даты
// Возвращает ErrOverrideNotFound, если для даты переопределения нет
func (r *Repository) GetDateOverride(ctx context.Context, date time.Time) (*domain.DateOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	date = domain.DateOf(date)

	query, args, err := psqlbuilder.Select("updated_at").
		From(overridesTable).
		Where(squirrel.Eq{"date": date}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDateOverride - build select query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrOverrideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDateOverride - scan override: %v", ErrScanRow, err)
	}

	query, args, err = psqlbuilder.Select("start_time", "end_time").
		From(overrideRangesTable).
		Where(squirrel.Eq{"date": date}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDateOverride - build select ranges query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetDateOverride - execute ranges query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	override := &domain.DateOverride{
		Date:      date,
		Ranges:    []domain.TimeRange{},
		UpdatedAt: updatedAt.Time,
	}
	for rows.Next() {
		var start, end types.TimeString
		if err := rows.Scan(&start, &end); err != nil {
			return nil, fmt.Errorf("%w: GetDateOverride - scan range: %v", ErrScanRow, err)
		}
		override.Ranges = append(override.Ranges, domain.TimeRange{StartTime: start, EndTime: end})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetDateOverride - rows error: %v", ErrScanRow, err)
	}

	return override, nil
}

// ReplaceDateOverride создает или полностью заменяет переопределение даты
// Пустой список интервалов сохраняется как "закрыто"
// Должен вызываться внутри транзакции
func (r *Repository) ReplaceDateOverride(ctx context.Context, override domain.DateOverride) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	date := domain.DateOf(override.Date)

	query, args, err := psqlbuilder.Insert(overridesTable).
		Columns("date", "updated_at").
		Values(date, override.UpdatedAt).
		Suffix("ON CONFLICT (date) DO UPDATE SET updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceDateOverride - build upsert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceDateOverride - execute upsert: %v", ErrExecQuery, err)
	}

	query, args, err = psqlbuilder.Delete(overrideRangesTable).
		Where(squirrel.Eq{"date": date}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceDateOverride - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceDateOverride - execute delete: %v", ErrExecQuery, err)
	}

	if len(override.Ranges) == 0 {
		return nil
	}

	insert := psqlbuilder.Insert(overrideRangesTable).
		Columns("date", "position", "start_time", "end_time")
	for i, tr := range override.Ranges {
		insert = insert.Values(date, i, tr.StartTime, tr.EndTime)
	}

	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceDateOverride - build insert ranges query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceDateOverride - execute insert ranges: %v", ErrExecQuery, err)
	}

	return nil
}
