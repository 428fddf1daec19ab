package catalog_test

import (
	"testing"

	"github.com/strixcommerce/storefront-platform/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelection(t *testing.T) {

	t.Run("Selecting Size Resets Color And Quantity", func(t *testing.T) {
		// Arrange
		sel := catalog.NewSelection(catalog.NewVariantIndex(testVariants()))
		sel.SelectSize(10)
		sel.SelectColor(100)
		sel.IncrementQuantity()

		// Act
		sel.SelectSize(20)

		// Assert
		assert.Equal(t, int64(20), sel.SizeID())
		assert.Zero(t, sel.ColorID())
		assert.Equal(t, 1, sel.Quantity())
	})

	t.Run("Selecting Color Resets Quantity", func(t *testing.T) {
		// Arrange
		sel := catalog.NewSelection(catalog.NewVariantIndex(testVariants()))
		sel.SelectSize(20)
		sel.SelectColor(100)
		sel.IncrementQuantity()
		require.Equal(t, 2, sel.Quantity())

		// Act
		sel.SelectColor(102)

		// Assert
		assert.Equal(t, 1, sel.Quantity())
	})

	t.Run("Quantity Capped At Variant Stock", func(t *testing.T) {
		// Arrange - variant (10, 100) has stock 3
		sel := catalog.NewSelection(catalog.NewVariantIndex(testVariants()))
		sel.SelectSize(10)
		sel.SelectColor(100)

		// Act
		for i := 0; i < 10; i++ {
			sel.IncrementQuantity()
		}

		// Assert
		assert.Equal(t, 3, sel.Quantity())
	})

	t.Run("Quantity Never Below One", func(t *testing.T) {
		// Arrange
		sel := catalog.NewSelection(catalog.NewVariantIndex(testVariants()))
		sel.SelectSize(10)
		sel.SelectColor(100)

		// Act
		sel.DecrementQuantity()
		sel.DecrementQuantity()

		// Assert
		assert.Equal(t, 1, sel.Quantity())
	})

	t.Run("Increment Without Resolved Variant Is No-Op", func(t *testing.T) {
		// Arrange
		sel := catalog.NewSelection(catalog.NewVariantIndex(testVariants()))
		sel.SelectSize(10)

		// Act
		sel.IncrementQuantity()

		// Assert
		assert.Equal(t, 1, sel.Quantity())
	})

	t.Run("CanAddToCart - In Stock Variant", func(t *testing.T) {
		sel := catalog.NewSelection(catalog.NewVariantIndex(testVariants()))
		sel.SelectSize(10)
		sel.SelectColor(100)

		assert.True(t, sel.CanAddToCart())
	})

	t.Run("CanAddToCart - Sold Out Variant", func(t *testing.T) {
		// Variant (10, 101) exists but has zero stock; the color of the
		// same size in stock does not make it purchasable.
		sel := catalog.NewSelection(catalog.NewVariantIndex(testVariants()))
		sel.SelectSize(10)
		sel.SelectColor(101)

		assert.False(t, sel.CanAddToCart())
	})

	t.Run("CanAddToCart - Incomplete Selection", func(t *testing.T) {
		sel := catalog.NewSelection(catalog.NewVariantIndex(testVariants()))
		sel.SelectSize(10)

		assert.False(t, sel.CanAddToCart())
	})

	t.Run("CanAddToCart - Nonexistent Combination", func(t *testing.T) {
		sel := catalog.NewSelection(catalog.NewVariantIndex(testVariants()))
		sel.SelectSize(10)
		sel.SelectColor(102)

		assert.False(t, sel.CanAddToCart())
	})
}
