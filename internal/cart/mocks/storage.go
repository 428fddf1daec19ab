package mocks

import (
	"context"

	"github.com/strixcommerce/storefront-platform/internal/models"
	"github.com/stretchr/testify/mock"
)

// Storage is a testify mock of cart.Storage.
type Storage struct {
	mock.Mock
}

func (m *Storage) Load(ctx context.Context, sessionID string) (*models.Cart, error) {
	args := m.Called(ctx, sessionID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *Storage) Save(ctx context.Context, sessionID string, cart *models.Cart) error {
	args := m.Called(ctx, sessionID, cart)

	return args.Error(0)
}

func (m *Storage) Clear(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)

	return args.Error(0)
}
