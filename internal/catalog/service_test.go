package catalog_test

import (
	"errors"
	"testing"

	"github.com/strixcommerce/storefront-platform/internal/cache"
	cacheMocks "github.com/strixcommerce/storefront-platform/internal/cache/mocks"
	"github.com/strixcommerce/storefront-platform/internal/catalog"
	appErrors "github.com/strixcommerce/storefront-platform/internal/errors"
	"github.com/strixcommerce/storefront-platform/internal/models"
	repoMocks "github.com/strixcommerce/storefront-platform/internal/repositories/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupServiceTest() (*repoMocks.VariantRepository, *cacheMocks.Cache, *catalog.Service) {
	mockRepo := new(repoMocks.VariantRepository)
	mockCache := new(cacheMocks.Cache)
	service := catalog.NewService(mockRepo, mockCache)

	return mockRepo, mockCache, service
}

func TestAvailability(t *testing.T) {
	t.Run("Success - Cache Miss Reads Repository", func(t *testing.T) {
		// Arrange
		mockRepo, mockCache, service := setupServiceTest()
		ctx := t.Context()
		variants := testVariants()

		mockCache.On("Get", mock.Anything, cache.VariantsKey(7), mock.Anything).Return(false, nil).Once()
		mockRepo.On("ReadVariants", mock.Anything, int64(7)).Return(variants, nil).Once()
		mockCache.On("Set", mock.Anything, cache.VariantsKey(7), variants, mock.Anything).Return(nil).Once()

		// Act
		availability, err := service.Availability(ctx, 7)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(7), availability.ProductID)
		assert.Equal(t, 16, availability.TotalStock)
		assert.Equal(t, []int64{10, 20}, availability.Sizes)
		assert.Equal(t, []int64{100, 101, 102}, availability.Colors)
		assert.Len(t, availability.Variants, 4)

		mockRepo.AssertExpectations(t)
		mockCache.AssertExpectations(t)
	})

	t.Run("Success - Cache Errors Are Not Fatal", func(t *testing.T) {
		// Arrange
		mockRepo, mockCache, service := setupServiceTest()
		ctx := t.Context()

		mockCache.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(false, errors.New("redis down")).Once()
		mockRepo.On("ReadVariants", mock.Anything, int64(7)).Return(testVariants(), nil).Once()
		mockCache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down")).Once()

		// Act
		availability, err := service.Availability(ctx, 7)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 16, availability.TotalStock)

		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Repository Error", func(t *testing.T) {
		// Arrange
		mockRepo, mockCache, service := setupServiceTest()
		ctx := t.Context()

		mockCache.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(false, nil).Once()
		mockRepo.On("ReadVariants", mock.Anything, int64(7)).Return(nil, errors.New("connection refused")).Once()

		// Act
		_, err := service.Availability(ctx, 7)

		// Assert
		require.Error(t, err)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)

		mockRepo.AssertExpectations(t)
	})
}

func TestServiceStockMatrix(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockRepo, mockCache, service := setupServiceTest()
		ctx := t.Context()

		sizes := []models.Size{{ID: 10, Name: "M"}, {ID: 20, Name: "L"}}
		colors := []models.Color{{ID: 100, Name: "Black"}, {ID: 101, Name: "White"}, {ID: 102, Name: "Red"}}

		mockCache.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(false, nil).Once()
		mockRepo.On("ReadVariants", mock.Anything, int64(7)).Return(testVariants(), nil).Once()
		mockCache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		mockRepo.On("ListSizes", mock.Anything).Return(sizes, nil).Once()
		mockRepo.On("ListColors", mock.Anything).Return(colors, nil).Once()

		// Act
		rows, err := service.StockMatrix(ctx, 7)

		// Assert
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "M", rows[0].Size.Name)

		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Sizes Query Error", func(t *testing.T) {
		// Arrange
		mockRepo, mockCache, service := setupServiceTest()
		ctx := t.Context()

		mockCache.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(false, nil).Once()
		mockRepo.On("ReadVariants", mock.Anything, int64(7)).Return(testVariants(), nil).Once()
		mockCache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		mockRepo.On("ListSizes", mock.Anything).Return(nil, errors.New("connection refused")).Once()

		// Act
		_, err := service.StockMatrix(ctx, 7)

		// Assert
		require.Error(t, err)

		mockRepo.AssertExpectations(t)
	})
}

func TestIndex(t *testing.T) {
	t.Run("Success - Empty Variant List Is Not An Error", func(t *testing.T) {
		// Arrange
		mockRepo, mockCache, service := setupServiceTest()
		ctx := t.Context()

		mockCache.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(false, nil).Once()
		mockRepo.On("ReadVariants", mock.Anything, int64(42)).Return(nil, nil).Once()
		mockCache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

		// Act
		index, err := service.Index(ctx, 42)

		// Assert
		require.NoError(t, err)
		assert.True(t, index.Empty())
	})
}
