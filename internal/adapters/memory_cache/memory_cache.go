package memory_cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"autofinder-client/internal/core/port"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// MemoryCacheAdapter — потокобезопасный кэш в памяти с истечением по времени.
// Просроченность проверяется лениво при Get; политики вытеснения по размеру
// нет — записи живут ровно свой TTL.
type MemoryCacheAdapter struct {
	mu      sync.Mutex
	entries map[string]entry

	// для подмены времени в тестах
	now func() time.Time
}

var _ port.CacheStorePort = (*MemoryCacheAdapter)(nil)

func NewMemoryCacheAdapter() *MemoryCacheAdapter {
	return &MemoryCacheAdapter{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (c *MemoryCacheAdapter) Get(_ context.Context, key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		// Просроченную запись убираем сразу
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

func (c *MemoryCacheAdapter) Set(_ context.Context, key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		value:     value,
		expiresAt: c.now().Add(ttl),
	}
}

func (c *MemoryCacheAdapter) RemoveAllMatchingPrefix(_ context.Context, prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}

// Len возвращает количество записей (включая еще не вычищенные просроченные).
func (c *MemoryCacheAdapter) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
