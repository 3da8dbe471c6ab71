package views

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/availability"
)

// View серверное представление календаря одного оператора
// Владеет кэшем переопределений своего окна, снимком недельного расписания
// и открытыми сессиями редактора. Все поля защищены mu
type View struct {
	ID      uuid.UUID
	OwnerID int64

	mu         sync.Mutex
	cache      *availability.OverrideCache
	pattern    domain.WeeklyPattern
	hasPattern bool
	window     domain.DateWindow
	warm       *WindowWarm
	sessions   map[uuid.UUID]*domain.EditorSession
	lastAccess time.Time
}

func newView(ownerID int64, now time.Time) *View {
	return &View{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		cache:      availability.NewOverrideCache(),
		pattern:    domain.WeeklyPattern{},
		sessions:   make(map[uuid.UUID]*domain.EditorSession),
		lastAccess: now,
	}
}

// Cache кэш переопределений текущего окна
func (v *View) Cache() *availability.OverrideCache {
	return v.cache
}

// Pattern снимок недельного расписания
func (v *View) Pattern() domain.WeeklyPattern {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.pattern
}

// SetPattern заменяет снимок расписания (после загрузки или подтверждённой записи)
func (v *View) SetPattern(pattern domain.WeeklyPattern) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.pattern = pattern
	v.hasPattern = true
}

// HasPattern возвращает true, если снимок расписания уже загружался
func (v *View) HasPattern() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.hasPattern
}

// WindowWarm прогрев кэша одного окна представления
// Запросы к тому же окну ждут его завершения через Wait
type WindowWarm struct {
	Window domain.DateWindow

	done chan struct{}
	once sync.Once
}

func newWindowWarm(window domain.DateWindow) *WindowWarm {
	return &WindowWarm{Window: window, done: make(chan struct{})}
}

// Finish отмечает прогрев завершённым; повторные вызовы ничего не делают
func (w *WindowWarm) Finish() {
	w.once.Do(func() { close(w.done) })
}

// Wait ждёт завершения прогрева или отмены ctx
func (w *WindowWarm) Wait(ctx context.Context) error {
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// MoveWindow переводит представление на months месяцев начиная с month
// Если окно изменилось, кэш сбрасывается и возвращается changed == true:
// вызывающий должен прогреть новое окно и вызвать Finish.
// Иначе возвращается прогрев текущего окна, возможно ещё не завершённый
func (v *View) MoveWindow(month time.Time, months int) (warm *WindowWarm, changed bool) {
	month = domain.MonthStart(month)
	window := availability.ViewWindow(month, months)

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.warm != nil && v.window.Equal(window) {
		return v.warm, false
	}

	v.window = window
	v.warm = newWindowWarm(window)
	v.cache.Reset()
	return v.warm, true
}

// Session возвращает копию сессии редактора
func (v *View) Session(id uuid.UUID) (domain.EditorSession, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	session, ok := v.sessions[id]
	if !ok {
		return domain.EditorSession{}, ErrSessionNotFound
	}
	return cloneSession(session), nil
}

// PutSession сохраняет сессию редактора
func (v *View) PutSession(session domain.EditorSession) {
	v.mu.Lock()
	defer v.mu.Unlock()

	s := cloneSession(&session)
	v.sessions[session.ID] = &s
}

// DeleteSession удаляет сессию редактора
func (v *View) DeleteSession(id uuid.UUID) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, ok := v.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(v.sessions, id)
	return nil
}

// SessionCount количество открытых сессий
func (v *View) SessionCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return len(v.sessions)
}

func (v *View) touch(now time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.lastAccess = now
}

func (v *View) idleSince() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.lastAccess
}

func cloneSession(s *domain.EditorSession) domain.EditorSession {
	clone := *s
	clone.Ranges = domain.CloneRanges(s.Ranges)
	return clone
}
