package checkout

import (
	"context"
	"sync"

	"github.com/strixcommerce/storefront-platform/internal/cart"
	"github.com/strixcommerce/storefront-platform/internal/pricing"
)

// Manager keeps one Flow per session. A flow is created lazily against the
// session's cart and dropped once the order is placed or the shopper
// abandons checkout.
type Manager struct {
	mu        sync.Mutex
	carts     *cart.Manager
	engine    *pricing.Engine
	submitter *Submitter
	flows     map[string]*Flow
}

func NewManager(carts *cart.Manager, engine *pricing.Engine, submitter *Submitter) *Manager {
	return &Manager{
		carts:     carts,
		engine:    engine,
		submitter: submitter,
		flows:     make(map[string]*Flow),
	}
}

func (m *Manager) Flow(ctx context.Context, sessionID string) (*Flow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if flow, ok := m.flows[sessionID]; ok {
		return flow, nil
	}

	store, err := m.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	flow := NewFlow(store, m.engine, m.submitter)
	m.flows[sessionID] = flow

	return flow, nil
}

// Drop destroys the checkout draft for the session; the cart survives.
func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.flows, sessionID)
}
