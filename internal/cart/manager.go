package cart

import (
	"context"
	"sync"
)

// Manager hands out one Store per session so the cart handlers and the
// checkout flow mutate the same aggregate. Stores are hydrated from durable
// storage on first access.
type Manager struct {
	mu      sync.Mutex
	storage Storage
	stores  map[string]*Store
}

func NewManager(storage Storage) *Manager {
	return &Manager{
		storage: storage,
		stores:  make(map[string]*Store),
	}
}

func (m *Manager) Get(ctx context.Context, sessionID string) (*Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if store, ok := m.stores[sessionID]; ok {
		return store, nil
	}

	store, err := Hydrate(ctx, sessionID, m.storage)
	if err != nil {
		return nil, err
	}

	m.stores[sessionID] = store

	return store, nil
}

// Release drops the in-memory handle; the persisted copy is untouched.
func (m *Manager) Release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.stores, sessionID)
}
