package voucher

import (
	"context"
	"sort"
	"sync"
)

type sessionKey struct {
	sessionId string
	key       string
}

// MemoryRepository keeps vouchers for the lifetime of the process.
type MemoryRepository struct {
	mu       sync.RWMutex
	vouchers map[sessionKey]Voucher
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{vouchers: make(map[sessionKey]Voucher)}
}

func (m *MemoryRepository) Get(ctx context.Context, sessionId string, key string) (Voucher, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.vouchers[sessionKey{sessionId, key}]
	if !ok {
		return Voucher{}, ErrVoucherNotFound
	}
	return v, nil
}

func (m *MemoryRepository) CreateIfAbsent(ctx context.Context, sessionId string, v Voucher) (Voucher, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := sessionKey{sessionId, v.Key}
	if existing, ok := m.vouchers[k]; ok {
		return existing, nil
	}
	m.vouchers[k] = v
	return v, nil
}

func (m *MemoryRepository) Store(ctx context.Context, sessionId string, v Voucher) (Voucher, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vouchers[sessionKey{sessionId, v.Key}] = v
	return v, nil
}

func (m *MemoryRepository) List(ctx context.Context, sessionId string) ([]Voucher, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	vouchers := make([]Voucher, 0)
	for k, v := range m.vouchers {
		if k.sessionId == sessionId {
			vouchers = append(vouchers, v)
		}
	}
	sort.Slice(vouchers, func(i, j int) bool {
		return vouchers[i].Key < vouchers[j].Key
	})
	return vouchers, nil
}
