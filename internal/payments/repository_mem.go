package payments

import (
	"context"
	"sync"
	"time"
)

type memRegistry struct {
	mu      sync.Mutex
	pending map[string]PendingPayment
}

func NewMemoryRegistry() Registry {
	return &memRegistry{
		pending: make(map[string]PendingPayment),
	}
}

func (m *memRegistry) Put(ctx context.Context, p PendingPayment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending[p.ID] = p
	return nil
}

func (m *memRegistry) Get(ctx context.Context, id string) (PendingPayment, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pending[id]
	return p, ok, nil
}

func (m *memRegistry) Remove(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pending, id)
	return nil
}

func (m *memRegistry) ExpireStale(ctx context.Context, maxAge time.Duration) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge).UnixMilli()
	removed := 0
	for id, p := range m.pending {
		if p.Timestamp < cutoff {
			delete(m.pending, id)
			removed++
		}
	}
	return removed, nil
}
