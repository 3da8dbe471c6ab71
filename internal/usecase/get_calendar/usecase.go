package get_calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/availability"
	"github.com/m04kA/SMC-ScheduleService/internal/service/views"
)

// UseCase use case построения сеток календаря для представления оператора
type UseCase struct {
	patterns     PatternSource
	prefetcher   Prefetcher
	registry     ViewRegistry
	location     *time.Location
	maxMonths    int
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// location - часовой пояс студии, в нём вычисляется "сегодня"
func NewUseCase(
	patterns PatternSource,
	prefetcher Prefetcher,
	registry ViewRegistry,
	location *time.Location,
	maxMonths int,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	if maxMonths <= 0 {
		maxMonths = domain.MaxViewMonths
	}
	return &UseCase{
		patterns:     patterns,
		prefetcher:   prefetcher,
		registry:     registry,
		location:     location,
		maxMonths:    maxMonths,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute открывает или перемещает представление, прогревает кэш при смене окна
// и строит по сетке на каждый месяц
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	months, err := validateRequest(req, uc.maxMonths)
	if err != nil {
		uc.logger.Warn("GetCalendar: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем или создаем представление со снимком недельного расписания
	view, err := uc.resolveView(ctx, req)
	if err != nil {
		return nil, err
	}

	// 3. "Сегодня" в часовом поясе студии
	today := domain.DateOf(uc.timeProvider.Now().In(uc.location))
	month := req.Month
	if month.IsZero() {
		month = today
	}
	month = domain.MonthStart(month)

	uc.logger.Info("GetCalendar: user=%d, view=%s, month=%s, months=%d",
		req.UserID, view.ID, month.Format(domain.MonthFormat), months)

	// 4. Прогреваем кэш, только если окно изменилось; иначе ждём прогрев текущего окна
	warm, changed := view.MoveWindow(month, months)
	if changed {
		uc.warmWindow(ctx, view, warm)
	} else if err := warm.Wait(ctx); err != nil {
		uc.logger.Warn("GetCalendar: view=%s request cancelled while waiting for warm of %s: %v", view.ID, warm.Window, err)
		return nil, err
	}
	window := warm.Window

	// 5. Строим сетки
	pattern := view.Pattern()
	grids := make([]MonthGrid, 0, months)
	for i := 0; i < months; i++ {
		m := month.AddDate(0, i, 0)
		grids = append(grids, MonthGrid{
			Month: m,
			Cells: availability.BuildGrid(m, today, pattern, view.Cache()),
		})
	}

	uc.logger.Info("GetCalendar: view=%s built %d grids for window %s, warmed=%t",
		view.ID, len(grids), window, changed)

	return &Response{
		ViewID: view.ID,
		Window: window,
		Today:  today,
		Warmed: changed,
		Grids:  grids,
	}, nil
}

func (uc *UseCase) resolveView(ctx context.Context, req *Request) (*views.View, error) {
	if req.ViewID == nil {
		// Представление создается только после загрузки расписания
		rules, err := uc.patterns.GetWeeklyPattern(ctx)
		if err != nil {
			uc.logger.Error("GetCalendar: failed to load weekly pattern for new view, user=%d: %v", req.UserID, err)
			return nil, fmt.Errorf("%w: %v", ErrPatternUnavailable, err)
		}

		view := uc.registry.Create(req.UserID)
		view.SetPattern(domain.NewWeeklyPattern(rules))
		return view, nil
	}

	view, err := uc.registry.Get(*req.ViewID, req.UserID)
	if err != nil {
		if errors.Is(err, views.ErrViewNotFound) {
			uc.logger.Warn("GetCalendar: view=%s not found", *req.ViewID)
			return nil, ErrViewNotFound
		}
		if errors.Is(err, views.ErrAccessDenied) {
			uc.logger.Warn("GetCalendar: user=%d has no access to view=%s", req.UserID, *req.ViewID)
			return nil, ErrAccessDenied
		}
		return nil, err
	}

	if err := uc.refreshPattern(ctx, view); err != nil {
		return nil, err
	}
	return view, nil
}

// warmWindow прогревает окно представления; прогрев не отменяется вместе с запросом
func (uc *UseCase) warmWindow(ctx context.Context, view *views.View, warm *views.WindowWarm) {
	defer warm.Finish()

	uc.prefetcher.Warm(context.WithoutCancel(ctx), warm.Window.From, warm.Window.To, view.Cache())
}

// refreshPattern загружает расписание; при ошибке оставляет прежний снимок, если он есть
func (uc *UseCase) refreshPattern(ctx context.Context, view *views.View) error {
	rules, err := uc.patterns.GetWeeklyPattern(ctx)
	if err == nil {
		view.SetPattern(domain.NewWeeklyPattern(rules))
		return nil
	}

	if view.HasPattern() {
		uc.logger.Warn("GetCalendar: failed to refresh weekly pattern for view=%s, using snapshot: %v", view.ID, err)
		return nil
	}

	uc.logger.Error("GetCalendar: failed to load weekly pattern for view=%s: %v", view.ID, err)
	return fmt.Errorf("%w: %v", ErrPatternUnavailable, err)
}
