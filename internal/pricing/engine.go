package pricing

import "github.com/strixcommerce/storefront-platform/internal/models"

// Quote is the priced breakdown of a cart snapshot. Discount never exceeds
// Subtotal and Total never goes below zero.
type Quote struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// Engine prices cart snapshots. Shipping is a flat fee regardless of weight
// or destination.
type Engine struct {
	shippingFee float64
}

func NewEngine(shippingFee float64) *Engine {
	return &Engine{shippingFee: shippingFee}
}

// Quote recomputes the full breakdown from scratch on every call; nothing
// is cached.
func (e *Engine) Quote(items []models.CartItem, coupon *models.Coupon) Quote {

	var subtotal float64

	for _, item := range items {
		subtotal += item.LineTotal()
	}

	discount := e.discount(subtotal, coupon)

	total := subtotal - discount + e.shippingFee
	if total < 0 {
		total = 0
	}

	return Quote{
		Subtotal: subtotal,
		Discount: discount,
		Shipping: e.shippingFee,
		Total:    total,
	}
}

func (e *Engine) discount(subtotal float64, coupon *models.Coupon) float64 {

	if coupon == nil {
		return 0
	}

	if coupon.MinimumSubtotal > 0 && subtotal < coupon.MinimumSubtotal {
		return 0
	}

	var discount float64

	switch coupon.Kind {
	case models.CouponKindPercentage:
		discount = subtotal * (coupon.Discount / 100)
	case models.CouponKindFixed:
		discount = coupon.Discount
	}

	if discount < 0 {
		discount = 0
	}

	if discount > subtotal {
		discount = subtotal
	}

	return discount
}
