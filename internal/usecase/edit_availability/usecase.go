package edit_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/availability"
	"github.com/m04kA/SMC-ScheduleService/internal/service/views"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
)

// UseCase редактор рабочих часов: выбор области (день недели или дата) и сохранение
type UseCase struct {
	writer       AvailabilityWriter
	registry     ViewRegistry
	defaultRange domain.TimeRange
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// defaultRange предзаполняет редактор для дня недели без расписания
func NewUseCase(writer AvailabilityWriter, registry ViewRegistry, defaultRange domain.TimeRange, logger Logger) *UseCase {
	return &UseCase{
		writer:       writer,
		registry:     registry,
		defaultRange: defaultRange,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Open открывает редактор для даты
// Если в кэше есть переопределение даты - режим date с его интервалами,
// иначе режим week с интервалами дня недели или интервалом по умолчанию
func (uc *UseCase) Open(ctx context.Context, req *OpenRequest) (*SessionResponse, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	view, err := uc.getView(req.ViewID, req.UserID)
	if err != nil {
		return nil, err
	}

	date := domain.DateOf(req.Date)
	weekday := domain.WeekdayOf(date)
	now := uc.timeProvider.Now()

	session := domain.EditorSession{
		ID:        uuid.New(),
		Date:      date,
		Weekday:   weekday,
		UserID:    req.UserID,
		OpenedAt:  now,
		UpdatedAt: now,
	}

	pattern := view.Pattern()
	if override, known := view.Cache().Lookup(date); known && override != nil {
		session.Mode = domain.ModeDate
		session.Ranges = domain.CloneRanges(override.Ranges)
	} else if rule, ok := pattern.Rule(weekday); ok && rule.IsOpen() {
		session.Mode = domain.ModeWeek
		session.Ranges = domain.CloneRanges(rule.Ranges)
	} else {
		session.Mode = domain.ModeWeek
		session.Ranges = []domain.TimeRange{uc.defaultRange}
	}

	view.PutSession(session)

	uc.logger.Info("Open: user=%d opened editor session=%s for date=%s, mode=%s",
		req.UserID, session.ID, domain.FormatDate(date), session.Mode)

	return &SessionResponse{
		Session:    session,
		Resolution: availability.Resolve(date, pattern, view.Cache()),
	}, nil
}

// Update меняет режим и/или черновик интервалов
// Смена режима сохраняет черновик; интервалы проверяются при сохранении
func (uc *UseCase) Update(ctx context.Context, req *UpdateRequest) (*SessionResponse, error) {
	view, session, err := uc.getSession(req.ViewID, req.SessionID, req.UserID)
	if err != nil {
		return nil, err
	}

	mode, err := domain.ParseEditorMode(string(ptr.Deref(req.Mode, session.Mode)))
	if err != nil {
		return nil, err
	}
	session.Mode = mode
	if req.Ranges != nil {
		session.Ranges = domain.CloneRanges(*req.Ranges)
	}
	session.UpdatedAt = uc.timeProvider.Now()

	view.PutSession(session)

	uc.logger.Info("Update: session=%s mode=%s, %d ranges in draft", session.ID, session.Mode, len(session.Ranges))

	return &SessionResponse{
		Session:    session,
		Resolution: availability.Resolve(session.Date, view.Pattern(), view.Cache()),
	}, nil
}

// Save записывает черновик в выбранную область
//   - week: полная замена правила дня недели, снимок расписания обновляется ответом бэкенда;
//     существующие переопределения дат этого дня недели не затрагиваются
//   - date: создание или замена переопределения даты, пустой список - "закрыто"
//
// Кэш и снимок меняются только после подтверждения записи. При ошибке сессия остаётся открытой
func (uc *UseCase) Save(ctx context.Context, req *SessionRequest) (*SaveResponse, error) {
	view, session, err := uc.getSession(req.ViewID, req.SessionID, req.UserID)
	if err != nil {
		return nil, err
	}

	// 1. Валидация до записи
	if err := validateSession(session); err != nil {
		uc.logger.Warn("Save: session=%s validation failed: %v", session.ID, err)
		return nil, err
	}

	dateStr := domain.FormatDate(session.Date)
	resp := &SaveResponse{Date: session.Date, Mode: session.Mode}

	// 2. Запись в бэкенд
	switch session.Mode {
	case domain.ModeWeek:
		rules, err := uc.writer.ReplaceWeeklyPattern(ctx, session.Weekday, session.Ranges)
		if err != nil {
			return nil, uc.saveError(session, err)
		}
		view.SetPattern(domain.NewWeeklyPattern(rules))
		resp.Rules = rules

	case domain.ModeDate:
		if err := uc.writer.SetDateOverride(ctx, session.Date, session.Ranges); err != nil {
			return nil, uc.saveError(session, err)
		}
		view.Cache().Confirm(domain.DateOverride{
			Date:      session.Date,
			Ranges:    session.Ranges,
			UpdatedAt: uc.timeProvider.Now(),
		})
	}

	// 3. Закрываем сессию
	_ = view.DeleteSession(session.ID)

	resp.Resolution = availability.Resolve(session.Date, view.Pattern(), view.Cache())

	uc.logger.Info("Save: user=%d saved %s for date=%s (weekday=%s), open=%t",
		req.UserID, session.Mode, dateStr, session.Weekday, resp.Resolution.IsOpen)
	return resp, nil
}

// Cancel отбрасывает черновик; хранилища не меняются
func (uc *UseCase) Cancel(ctx context.Context, req *SessionRequest) error {
	view, err := uc.getView(req.ViewID, req.UserID)
	if err != nil {
		return err
	}

	if err := view.DeleteSession(req.SessionID); err != nil {
		uc.logger.Warn("Cancel: session=%s not found in view=%s", req.SessionID, req.ViewID)
		return ErrSessionNotFound
	}

	uc.logger.Info("Cancel: user=%d discarded session=%s", req.UserID, req.SessionID)
	return nil
}

func (uc *UseCase) saveError(session domain.EditorSession, err error) error {
	// Ошибка валидации от бэкенда остаётся ошибкой поля
	if vErr, ok := domain.AsValidationError(err); ok {
		uc.logger.Warn("Save: session=%s rejected by backend: %v", session.ID, vErr)
		return vErr
	}

	uc.logger.Error("Save: session=%s write failed for %s, date=%s: %v",
		session.ID, session.Mode, domain.FormatDate(session.Date), err)
	return fmt.Errorf("%w: %v", ErrSaveFailed, err)
}

func (uc *UseCase) getView(viewID uuid.UUID, userID int64) (*views.View, error) {
	view, err := uc.registry.Get(viewID, userID)
	if err != nil {
		switch {
		case errors.Is(err, views.ErrViewNotFound):
			return nil, ErrViewNotFound
		case errors.Is(err, views.ErrAccessDenied):
			return nil, ErrAccessDenied
		default:
			return nil, err
		}
	}
	return view, nil
}

func (uc *UseCase) getSession(viewID, sessionID uuid.UUID, userID int64) (*views.View, domain.EditorSession, error) {
	view, err := uc.getView(viewID, userID)
	if err != nil {
		return nil, domain.EditorSession{}, err
	}

	session, err := view.Session(sessionID)
	if err != nil {
		return nil, domain.EditorSession{}, ErrSessionNotFound
	}
	return view, session, nil
}

