package i18n

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by a Storage when nothing is stored under a key.
var ErrNotFound = errors.New("i18n: key not found")

// Storage persists small string values.
type Storage interface {
	Load(ctx context.Context, key string) (string, error)
	Save(ctx context.Context, key, value string) error
}

// MemoryStorage is a process-local Storage.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (m *MemoryStorage) Load(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryStorage) Save(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Preferences is the load/save pair for a user's locale.
type Preferences struct {
	store    Storage
	fallback Locale
}

func NewPreferences(store Storage, fallback Locale) *Preferences {
	if _, ok := messages[fallback]; !ok {
		fallback = ES
	}
	return &Preferences{store: store, fallback: fallback}
}

// Fallback is the locale used when nothing valid is stored.
func (p *Preferences) Fallback() Locale { return p.fallback }

// Load returns the stored locale and whether one was found. Storage errors
// and unparseable values yield the fallback.
func (p *Preferences) Load(ctx context.Context, userID string) (Locale, bool) {
	v, err := p.store.Load(ctx, storageKey(userID))
	if err != nil {
		return p.fallback, false
	}
	l, ok := Parse(v)
	if !ok {
		return p.fallback, false
	}
	return l, true
}

func (p *Preferences) Save(ctx context.Context, userID string, l Locale) error {
	return p.store.Save(ctx, storageKey(userID), string(l))
}

func storageKey(userID string) string {
	if userID == "" {
		return StorageKey
	}
	return StorageKey + ":" + userID
}
