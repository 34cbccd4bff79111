package coordinator

import (
	"autofinder-client/internal/core/domain"
)

// Наблюдение за состоянием: либо опрос через Snapshot, либо подписка.
// Каждая мутация состояния рассылается подписчикам уже после снятия
// блокировки, поэтому из колбэка можно безопасно дергать Snapshot.

// Snapshot возвращает копию текущего состояния поиска.
func (c *Coordinator) Snapshot() domain.SearchState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe регистрирует слушателя состояния.
// Возвращает функцию отписки; повторный вызов отписки безопасен.
func (c *Coordinator) Subscribe(fn func(domain.SearchState)) (unsubscribe func()) {
	c.subMu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn
	c.subMu.Unlock()

	return func() {
		c.subMu.Lock()
		delete(c.subscribers, id)
		c.subMu.Unlock()
	}
}

// snapshotLocked копирует состояние; срез результатов клонируется,
// чтобы наблюдатели не делили память с координатором.
func (c *Coordinator) snapshotLocked() domain.SearchState {
	snap := c.state
	snap.Results = append([]domain.CarSummary(nil), c.state.Results...)
	return snap
}

func (c *Coordinator) notify(state domain.SearchState) {
	c.subMu.Lock()
	listeners := make([]func(domain.SearchState), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		listeners = append(listeners, fn)
	}
	c.subMu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
}
