package packing

import (
	"context"
	"sync"
)

// MemoryRepository keeps packing lists for the lifetime of the process.
type MemoryRepository struct {
	mu    sync.RWMutex
	lists map[string]*List
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{lists: make(map[string]*List)}
}

func (m *MemoryRepository) Load(ctx context.Context, sessionId string) (List, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.lists[sessionId]
	if !ok {
		return List{}, ErrListNotFound
	}
	return l.clone(), nil
}

func (m *MemoryRepository) Seed(ctx context.Context, sessionId string, list List) (List, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l, ok := m.lists[sessionId]; ok {
		return l.clone(), nil
	}
	stored := list.clone()
	m.lists[sessionId] = &stored
	return stored.clone(), nil
}

func (m *MemoryRepository) update(sessionId string, fn func(l *List) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.lists[sessionId]
	if !ok {
		return ErrListNotFound
	}
	return fn(l)
}

func (m *MemoryRepository) SetChecked(ctx context.Context, sessionId string, item string, checked bool) error {
	return m.update(sessionId, func(l *List) error { return l.setChecked(item, checked) })
}

func (m *MemoryRepository) AddItem(ctx context.Context, sessionId string, category string, item string) error {
	return m.update(sessionId, func(l *List) error { return l.addItem(category, item) })
}

func (m *MemoryRepository) RemoveItem(ctx context.Context, sessionId string, category string, item string) error {
	return m.update(sessionId, func(l *List) error { return l.removeItem(category, item) })
}

func (m *MemoryRepository) AddCategory(ctx context.Context, sessionId string, name string) error {
	return m.update(sessionId, func(l *List) error { return l.addCategory(name) })
}

func (m *MemoryRepository) RemoveCategory(ctx context.Context, sessionId string, name string) error {
	return m.update(sessionId, func(l *List) error { return l.removeCategory(name) })
}
