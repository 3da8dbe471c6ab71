package availability

import (
	"sync"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// cacheEntry состояние даты в кэше
// override == nil означает подтверждённое отсутствие переопределения
type cacheEntry struct {
	override  *domain.DateOverride
	confirmed bool // значение записано после успешного сохранения оператором
}

// OverrideCache кэш переопределений видимого окна календаря
// Ключ - дата YYYY-MM-DD. Даты без записи неизвестны (не загружались или загрузка упала)
type OverrideCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// NewOverrideCache создает пустой кэш
func NewOverrideCache() *OverrideCache {
	return &OverrideCache{entries: make(map[string]cacheEntry)}
}

// Lookup возвращает переопределение даты
// known == false - дата неизвестна кэшу; known == true и override == nil - переопределения нет
func (c *OverrideCache) Lookup(date time.Time) (override *domain.DateOverride, known bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[domain.FormatDate(date)]
	if !ok {
		return nil, false
	}
	return cloneOverride(entry.override), true
}

// Store записывает результат загрузки при прогреве (nil - переопределения нет)
// Последняя запись побеждает, но значение, подтверждённое сохранением, не перезаписывается
func (c *OverrideCache) Store(date time.Time, override *domain.DateOverride) {
	key := domain.FormatDate(date)

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.entries[key]; ok && existing.confirmed {
		return
	}
	c.entries[key] = cacheEntry{override: cloneOverride(override)}
}

// Confirm записывает переопределение после успешного сохранения оператором
func (c *OverrideCache) Confirm(override domain.DateOverride) {
	key := domain.FormatDate(override.Date)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{override: cloneOverride(&override), confirmed: true}
}

// Reset очищает кэш при смене видимого окна
func (c *OverrideCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]cacheEntry)
}

// Len количество известных дат
func (c *OverrideCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

func cloneOverride(o *domain.DateOverride) *domain.DateOverride {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Date = domain.DateOf(o.Date)
	clone.Ranges = domain.CloneRanges(o.Ranges)
	return &clone
}
