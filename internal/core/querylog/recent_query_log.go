package querylog

import (
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"autofinder-client/internal/core/domain"
	"autofinder-client/internal/core/port"
)

// maxEntries — максимальный размер журнала; старые записи отбрасываются с хвоста.
const maxEntries = 20

// RecentQueryLog — ограниченный журнал последних поисковых запросов.
// Порядок: самые свежие в начале. Дубликаты по точной строке запроса
// не хранятся — повторный запрос поднимается в начало.
//
// Журнал загружается из хранилища один раз при создании и переписывается
// после каждой мутации. Ошибки персистентности проглатываются: на время
// сессии источником правды остается список в памяти.
type RecentQueryLog struct {
	mu      sync.Mutex
	entries []domain.RecentQuery
	store   port.KeyValueStorePort
	logger  port.LoggerPort

	// для подмены времени в тестах
	now func() time.Time
}

func NewRecentQueryLog(store port.KeyValueStorePort, logger port.LoggerPort) *RecentQueryLog {
	l := &RecentQueryLog{
		store:  store,
		logger: logger.WithFields(port.Fields{"component": "RecentQueryLog"}),
		now:    time.Now,
	}
	l.restore()
	return l
}

// restore загружает журнал с диска. Любая ошибка оставляет журнал пустым.
func (l *RecentQueryLog) restore() {
	data, ok, err := l.store.Load()
	if err != nil {
		l.logger.Warn("Failed to load recent queries, starting empty", port.Fields{"error": err.Error()})
		return
	}
	if !ok {
		return
	}

	var entries []domain.RecentQuery
	if err := json.Unmarshal(data, &entries); err != nil {
		l.logger.Warn("Failed to decode recent queries, starting empty", port.Fields{"error": err.Error()})
		return
	}

	if len(entries) > maxEntries {
		entries = entries[:maxEntries]
	}
	l.entries = entries
}

// Add добавляет запрос в начало журнала.
// Пустой (после обрезки пробелов) запрос игнорируется.
func (l *RecentQueryLog) Add(query string, resultCount int) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Убираем существующую запись с тем же запросом
	for i, e := range l.entries {
		if e.Query == query {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			break
		}
	}

	entry := domain.RecentQuery{
		Query:       query,
		SearchedAt:  l.now(),
		ResultCount: resultCount,
	}
	l.entries = append([]domain.RecentQuery{entry}, l.entries...)

	if len(l.entries) > maxEntries {
		l.entries = l.entries[:maxEntries]
	}

	l.persistLocked()
}

// Clear полностью очищает журнал.
func (l *RecentQueryLog) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = nil
	l.persistLocked()
}

// RemoveAt удаляет записи по позициям. Невалидные индексы игнорируются.
func (l *RecentQueryLog) RemoveAt(indices []int) {
	if len(indices) == 0 {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Удаляем с конца, чтобы индексы не сдвигались
	sorted := append([]int(nil), indices...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	prev := -1
	for _, idx := range sorted {
		if idx == prev {
			continue
		}
		prev = idx
		if idx < 0 || idx >= len(l.entries) {
			continue
		}
		l.entries = append(l.entries[:idx], l.entries[idx+1:]...)
	}

	l.persistLocked()
}

// Entries возвращает копию журнала (самые свежие в начале).
func (l *RecentQueryLog) Entries() []domain.RecentQuery {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]domain.RecentQuery, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *RecentQueryLog) persistLocked() {
	data, err := json.Marshal(l.entries)
	if err != nil {
		l.logger.Warn("Failed to encode recent queries", port.Fields{"error": err.Error()})
		return
	}
	if err := l.store.Save(data); err != nil {
		// Не пробрасываем: журнал в памяти остается актуальным
		l.logger.Warn("Failed to persist recent queries", port.Fields{"error": err.Error()})
	}
}
