package views

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// Registry хранит представления календаря в памяти процесса
// Представления, к которым не обращались дольше ttl, вытесняются janitor'ом
type Registry struct {
	mu    sync.RWMutex
	views map[uuid.UUID]*View

	ttl          time.Duration
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger

	cron *cron.Cron
}

// NewRegistry создает реестр представлений
// m может быть nil
func NewRegistry(ttl time.Duration, m MetricsRecorder, logger Logger) *Registry {
	return &Registry{
		views:        make(map[uuid.UUID]*View),
		ttl:          ttl,
		metrics:      m,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Create создает новое представление оператора
func (r *Registry) Create(ownerID int64) *View {
	view := newView(ownerID, r.timeProvider.Now())

	r.mu.Lock()
	r.views[view.ID] = view
	n := len(r.views)
	r.mu.Unlock()

	r.reportActive(n)
	r.logger.Info("Create: calendar view=%s opened by user=%d", view.ID, ownerID)
	return view
}

// Get возвращает представление и отмечает обращение к нему
// Чужое представление недоступно
func (r *Registry) Get(id uuid.UUID, userID int64) (*View, error) {
	r.mu.RLock()
	view, ok := r.views[id]
	r.mu.RUnlock()

	if !ok {
		return nil, ErrViewNotFound
	}
	if view.OwnerID != userID {
		return nil, ErrAccessDenied
	}

	view.touch(r.timeProvider.Now())
	return view, nil
}

// Delete закрывает представление
func (r *Registry) Delete(id uuid.UUID) {
	r.mu.Lock()
	delete(r.views, id)
	n := len(r.views)
	r.mu.Unlock()

	r.reportActive(n)
}

// Len количество активных представлений
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.views)
}

// EvictIdle удаляет представления, простаивающие дольше ttl, и возвращает их число
func (r *Registry) EvictIdle() int {
	if r.ttl <= 0 {
		return 0
	}
	deadline := r.timeProvider.Now().Add(-r.ttl)

	r.mu.Lock()
	evicted := 0
	for id, view := range r.views {
		if view.idleSince().Before(deadline) {
			delete(r.views, id)
			evicted++
		}
	}
	n := len(r.views)
	r.mu.Unlock()

	r.reportActive(n)
	if evicted > 0 {
		r.logger.Info("EvictIdle: evicted %d idle calendar views, %d remain", evicted, n)
	}
	return evicted
}

// Start запускает janitor по cron выражению spec
func (r *Registry) Start(spec string) error {
	c := cron.New(cron.WithLogger(cron.PrintfLogger(r.logger)))
	if _, err := c.AddFunc(spec, func() { r.EvictIdle() }); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidSchedule, spec, err)
	}

	r.cron = c
	c.Start()
	r.logger.Info("Start: view janitor scheduled at %q, ttl=%s", spec, r.ttl)
	return nil
}

// Stop останавливает janitor и дожидается выполняющегося прохода
func (r *Registry) Stop() {
	if r.cron == nil {
		return
	}
	<-r.cron.Stop().Done()
}

func (r *Registry) reportActive(n int) {
	if r.metrics != nil {
		r.metrics.SetActiveViews(n)
	}
}
