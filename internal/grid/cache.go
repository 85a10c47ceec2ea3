package grid

import (
	"context"
	"slices"
	"sync"
	"time"

	"embarques/internal/model"
)

// Cache holds the last loaded active row set. Get reports false when nothing
// has been loaded yet.
type Cache interface {
	Get(ctx context.Context) ([]model.Operacion, bool, error)
	Set(ctx context.Context, ops []model.Operacion) error
	Delete(ctx context.Context) error
}

// MemoryCache is a process-local Cache. A set older than ttl reads as
// missing, like an expired Redis key; ttl <= 0 keeps it until deleted.
type MemoryCache struct {
	mu      sync.RWMutex
	ops     []model.Operacion
	cargado bool
	expira  time.Time
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{ttl: ttl, now: time.Now}
}

func (m *MemoryCache) Get(_ context.Context) ([]model.Operacion, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.cargado || (m.ttl > 0 && !m.now().Before(m.expira)) {
		return nil, false, nil
	}
	return slices.Clone(m.ops), true, nil
}

func (m *MemoryCache) Set(_ context.Context, ops []model.Operacion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = slices.Clone(ops)
	m.cargado = true
	m.expira = m.now().Add(m.ttl)
	return nil
}

func (m *MemoryCache) Delete(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = nil
	m.cargado = false
	return nil
}
