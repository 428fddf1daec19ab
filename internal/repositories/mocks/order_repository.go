package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/strixcommerce/storefront-platform/internal/models"
	"github.com/stretchr/testify/mock"
)

// OrderRepository is a testify mock of repository.OrderRepository.
type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)

	return args.Error(0)
}

func (m *OrderRepository) InsertOrderItems(ctx context.Context, orderID uuid.UUID, items []models.OrderItem) error {
	args := m.Called(ctx, orderID, items)

	return args.Error(0)
}

func (m *OrderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Order), args.Error(1)
}
