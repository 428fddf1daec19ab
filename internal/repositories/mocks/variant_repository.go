package mocks

import (
	"context"

	"github.com/strixcommerce/storefront-platform/internal/models"
	"github.com/stretchr/testify/mock"
)

// VariantRepository is a testify mock of repository.VariantRepository.
type VariantRepository struct {
	mock.Mock
}

func (m *VariantRepository) ReadVariants(ctx context.Context, productID int64) ([]models.ProductVariant, error) {
	args := m.Called(ctx, productID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.ProductVariant), args.Error(1)
}

func (m *VariantRepository) ListSizes(ctx context.Context) ([]models.Size, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Size), args.Error(1)
}

func (m *VariantRepository) ListColors(ctx context.Context) ([]models.Color, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Color), args.Error(1)
}
