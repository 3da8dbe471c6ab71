package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/schedule"
)

// Service локальное хранилище доступности: недельное расписание и переопределения дат
// Реализует тот же контракт, что и HTTP клиент availabilityservice
type Service struct {
	repo         Repository
	txManager    TxManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(repo Repository, txManager TxManager, logger Logger) *Service {
	return &Service{
		repo:         repo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetWeeklyPattern возвращает все правила недельного расписания
// Дни недели без правила в ответе отсутствуют (студия закрыта)
func (s *Service) GetWeeklyPattern(ctx context.Context) ([]domain.WeeklyRule, error) {
	rules, err := s.repo.GetWeeklyRules(ctx)
	if err != nil {
		s.logger.Error("GetWeeklyPattern: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetWeeklyPattern - repository error: %v", ErrInternal, err)
	}

	return rules, nil
}

// ReplaceWeeklyPattern полностью заменяет интервалы дня недели
// Пустой список делает день неактивным. Возвращает расписание после записи
func (s *Service) ReplaceWeeklyPattern(ctx context.Context, weekday domain.Weekday, ranges []domain.TimeRange) ([]domain.WeeklyRule, error) {
	s.logger.Info("ReplaceWeeklyPattern: weekday=%s, ranges=%v", weekday, ranges)

	if !weekday.IsValid() {
		s.logger.Warn("ReplaceWeeklyPattern: invalid weekday %q", weekday)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, domain.ErrInvalidWeekday)
	}
	if err := domain.ValidateRanges(ranges); err != nil {
		s.logger.Warn("ReplaceWeeklyPattern: validation failed for weekday=%s: %v", weekday, err)
		return nil, err
	}

	rule := domain.NewWeeklyRule(weekday, ranges)
	rule.UpdatedAt = s.now()

	var rules []domain.WeeklyRule
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.repo.ReplaceWeeklyRule(ctx, rule); err != nil {
			return err
		}

		var err error
		rules, err = s.repo.GetWeeklyRules(ctx)
		return err
	})
	if err != nil {
		s.logger.Error("ReplaceWeeklyPattern: failed to replace weekday=%s: %v", weekday, err)
		return nil, fmt.Errorf("%w: ReplaceWeeklyPattern - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ReplaceWeeklyPattern: weekday=%s replaced, active=%t", weekday, rule.Active)
	return rules, nil
}

// GetDateOverride возвращает переопределение даты или nil, если его нет
func (s *Service) GetDateOverride(ctx context.Context, date time.Time) (*domain.DateOverride, error) {
	override, err := s.repo.GetDateOverride(ctx, date)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrOverrideNotFound) {
			return nil, nil
		}
		s.logger.Error("GetDateOverride: repository error for date=%s: %v", domain.FormatDate(date), err)
		return nil, fmt.Errorf("%w: GetDateOverride - repository error: %v", ErrInternal, err)
	}

	return override, nil
}

// SetDateOverride создает или заменяет переопределение даты
// Пустой список интервалов помечает дату закрытой
func (s *Service) SetDateOverride(ctx context.Context, date time.Time, ranges []domain.TimeRange) error {
	dateStr := domain.FormatDate(date)
	s.logger.Info("SetDateOverride: date=%s, ranges=%v", dateStr, ranges)

	if date.IsZero() {
		return fmt.Errorf("%w: %v", ErrInvalidInput, domain.ErrInvalidDate)
	}
	if err := domain.ValidateRanges(ranges); err != nil {
		s.logger.Warn("SetDateOverride: validation failed for date=%s: %v", dateStr, err)
		return err
	}

	override := domain.DateOverride{
		Date:      domain.DateOf(date),
		Ranges:    domain.CloneRanges(ranges),
		UpdatedAt: s.now(),
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.repo.ReplaceDateOverride(ctx, override)
	})
	if err != nil {
		s.logger.Error("SetDateOverride: failed to save date=%s: %v", dateStr, err)
		return fmt.Errorf("%w: SetDateOverride - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetDateOverride: date=%s saved, closed=%t", dateStr, override.IsClosed())
	return nil
}

func (s *Service) now() time.Time {
	return s.timeProvider.Now().UTC()
}
