package cart_test

import (
	"testing"

	"github.com/strixcommerce/storefront-platform/internal/cart"
	"github.com/strixcommerce/storefront-platform/internal/cart/mocks"
	"github.com/strixcommerce/storefront-platform/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSessionID = "3f1c9a0e-cart-test"

// permissiveStorage accepts every call; for tests that only care about the
// in-memory aggregate.
func permissiveStorage() *mocks.Storage {
	storage := new(mocks.Storage)
	storage.On("Save", mock.Anything, testSessionID, mock.Anything).Return(nil).Maybe()
	storage.On("Clear", mock.Anything, testSessionID).Return(nil).Maybe()

	return storage
}

func testItem(variantID int64, quantity int) models.CartItem {
	return models.CartItem{
		VariantID: variantID,
		ProductID: 7,
		Name:      "Tee",
		UnitPrice: 1000,
		Size:      "M",
		Color:     "Black",
		Quantity:  quantity,
	}
}

func TestAdd(t *testing.T) {
	t.Run("Success - New Line Appended", func(t *testing.T) {
		// Arrange
		store := cart.NewStore(testSessionID, permissiveStorage())
		ctx := t.Context()

		// Act
		store.Add(ctx, testItem(1, 2))
		store.Add(ctx, testItem(2, 1))

		// Assert
		items := store.Items()
		require.Len(t, items, 2)
		assert.Equal(t, int64(1), items[0].VariantID)
		assert.Equal(t, int64(2), items[1].VariantID)
		assert.Equal(t, 3, store.ItemCount())
	})

	t.Run("Success - Same Variant Merges Quantities", func(t *testing.T) {
		// Arrange
		store := cart.NewStore(testSessionID, permissiveStorage())
		ctx := t.Context()

		// Act
		store.Add(ctx, testItem(1, 2))
		store.Add(ctx, testItem(1, 3))

		// Assert
		items := store.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 5, items[0].Quantity)
	})

	t.Run("Success - Quantity Below One Clamps To One", func(t *testing.T) {
		// Arrange
		store := cart.NewStore(testSessionID, permissiveStorage())
		ctx := t.Context()

		// Act
		store.Add(ctx, testItem(1, 0))
		store.Add(ctx, testItem(2, -5))

		// Assert
		items := store.Items()
		require.Len(t, items, 2)
		assert.Equal(t, 1, items[0].Quantity)
		assert.Equal(t, 1, items[1].Quantity)
	})
}

func TestRemove(t *testing.T) {
	t.Run("Success - Removes The Line", func(t *testing.T) {
		// Arrange
		store := cart.NewStore(testSessionID, permissiveStorage())
		ctx := t.Context()
		store.Add(ctx, testItem(1, 2))
		store.Add(ctx, testItem(2, 1))

		// Act
		store.Remove(ctx, 1)

		// Assert
		items := store.Items()
		require.Len(t, items, 1)
		assert.Equal(t, int64(2), items[0].VariantID)
	})

	t.Run("Success - Unknown Variant Is A No-Op", func(t *testing.T) {
		// Arrange
		store := cart.NewStore(testSessionID, permissiveStorage())
		ctx := t.Context()
		store.Add(ctx, testItem(1, 2))

		// Act
		store.Remove(ctx, 999)

		// Assert
		assert.Len(t, store.Items(), 1)
	})

	t.Run("Success - Remove And Re-Add Starts A Fresh Line", func(t *testing.T) {
		// Arrange
		store := cart.NewStore(testSessionID, permissiveStorage())
		ctx := t.Context()
		store.Add(ctx, testItem(1, 5))
		store.Remove(ctx, 1)

		// Act
		store.Add(ctx, testItem(1, 1))

		// Assert
		items := store.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 1, items[0].Quantity)
	})

	t.Run("Success - Removing Last Line Clears Persisted Copy", func(t *testing.T) {
		// Arrange
		storage := new(mocks.Storage)
		storage.On("Save", mock.Anything, testSessionID, mock.Anything).Return(nil).Once()
		storage.On("Clear", mock.Anything, testSessionID).Return(nil).Once()

		store := cart.NewStore(testSessionID, storage)
		ctx := t.Context()
		store.Add(ctx, testItem(1, 2))

		// Act
		store.Remove(ctx, 1)

		// Assert
		assert.True(t, store.Empty())
		storage.AssertExpectations(t)
	})
}

func TestUpdateQuantity(t *testing.T) {
	t.Run("Success - Sets The Quantity", func(t *testing.T) {
		// Arrange
		store := cart.NewStore(testSessionID, permissiveStorage())
		ctx := t.Context()
		store.Add(ctx, testItem(1, 2))

		// Act
		store.UpdateQuantity(ctx, 1, 7)

		// Assert
		assert.Equal(t, 7, store.Items()[0].Quantity)
	})

	t.Run("Success - Zero Clamps To One Instead Of Removing", func(t *testing.T) {
		// Arrange
		store := cart.NewStore(testSessionID, permissiveStorage())
		ctx := t.Context()
		store.Add(ctx, testItem(1, 4))

		// Act
		store.UpdateQuantity(ctx, 1, 0)

		// Assert
		items := store.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 1, items[0].Quantity)
	})

	t.Run("Success - Unknown Variant Is A No-Op", func(t *testing.T) {
		// Arrange
		store := cart.NewStore(testSessionID, permissiveStorage())
		ctx := t.Context()
		store.Add(ctx, testItem(1, 2))

		// Act
		store.UpdateQuantity(ctx, 999, 5)

		// Assert
		items := store.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 2, items[0].Quantity)
	})
}

func TestClear(t *testing.T) {
	// Arrange
	store := cart.NewStore(testSessionID, permissiveStorage())
	ctx := t.Context()
	store.Add(ctx, testItem(1, 2))
	store.ApplyCoupon(ctx, models.Coupon{Code: "SAVE10", Discount: 10, Kind: models.CouponKindPercentage})

	// Act
	store.Clear(ctx)

	// Assert
	assert.True(t, store.Empty())
	assert.Nil(t, store.Coupon())
	assert.Zero(t, store.ItemCount())
}

func TestCoupon(t *testing.T) {
	t.Run("Success - Apply Replaces Previous Coupon", func(t *testing.T) {
		// Arrange
		store := cart.NewStore(testSessionID, permissiveStorage())
		ctx := t.Context()
		store.Add(ctx, testItem(1, 1))
		store.ApplyCoupon(ctx, models.Coupon{Code: "FIRST", Discount: 10, Kind: models.CouponKindPercentage})

		// Act
		store.ApplyCoupon(ctx, models.Coupon{Code: "SECOND", Discount: 200, Kind: models.CouponKindFixed})

		// Assert
		coupon := store.Coupon()
		require.NotNil(t, coupon)
		assert.Equal(t, "SECOND", coupon.Code)
	})

	t.Run("Success - Remove", func(t *testing.T) {
		// Arrange
		store := cart.NewStore(testSessionID, permissiveStorage())
		ctx := t.Context()
		store.Add(ctx, testItem(1, 1))
		store.ApplyCoupon(ctx, models.Coupon{Code: "SAVE10", Discount: 10, Kind: models.CouponKindPercentage})

		// Act
		store.RemoveCoupon(ctx)

		// Assert
		assert.Nil(t, store.Coupon())
	})
}

func TestTotal(t *testing.T) {
	// Arrange
	store := cart.NewStore(testSessionID, permissiveStorage())
	ctx := t.Context()
	store.Add(ctx, testItem(1, 2))

	other := testItem(2, 3)
	other.UnitPrice = 500
	store.Add(ctx, other)

	// Act & Assert
	assert.InDelta(t, 3500.0, store.Total(), 0.001)
}

func TestHydrate(t *testing.T) {
	t.Run("Success - Restores Items And Coupon", func(t *testing.T) {
		// Arrange
		saved := &models.Cart{
			Items:  []models.CartItem{testItem(1, 2)},
			Coupon: &models.Coupon{Code: "SAVE10", Discount: 10, Kind: models.CouponKindPercentage},
		}

		storage := new(mocks.Storage)
		storage.On("Load", mock.Anything, testSessionID).Return(saved, nil).Once()

		// Act
		store, err := cart.Hydrate(t.Context(), testSessionID, storage)

		// Assert
		require.NoError(t, err)
		assert.Len(t, store.Items(), 1)
		require.NotNil(t, store.Coupon())
		assert.Equal(t, "SAVE10", store.Coupon().Code)

		storage.AssertExpectations(t)
	})

	t.Run("Success - Nothing Persisted Yields Empty Store", func(t *testing.T) {
		// Arrange
		storage := new(mocks.Storage)
		storage.On("Load", mock.Anything, testSessionID).Return(nil, nil).Once()

		// Act
		store, err := cart.Hydrate(t.Context(), testSessionID, storage)

		// Assert
		require.NoError(t, err)
		assert.True(t, store.Empty())
	})

	t.Run("Failure - Storage Error Propagates", func(t *testing.T) {
		// Arrange
		storage := new(mocks.Storage)
		storage.On("Load", mock.Anything, testSessionID).Return(nil, assert.AnError).Once()

		// Act
		store, err := cart.Hydrate(t.Context(), testSessionID, storage)

		// Assert
		require.Error(t, err)
		assert.Nil(t, store)
	})
}

func TestSnapshotIsDetached(t *testing.T) {
	// Arrange
	store := cart.NewStore(testSessionID, permissiveStorage())
	ctx := t.Context()
	store.Add(ctx, testItem(1, 2))

	// Act
	snapshot := store.Snapshot()
	snapshot.Items[0].Quantity = 99

	// Assert
	assert.Equal(t, 2, store.Items()[0].Quantity)
}
