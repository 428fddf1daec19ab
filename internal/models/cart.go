package models

import "time"

type CouponKind string

const (
	CouponKindPercentage CouponKind = "percentage"
	CouponKindFixed      CouponKind = "fixed"
)

// Coupon is a whole-cart discount rule. MinimumSubtotal of zero means the
// coupon applies at any cart size.
type Coupon struct {
	Code            string     `json:"code" validate:"required"`
	Discount        float64    `json:"discount" validate:"required,gte=0"`
	Kind            CouponKind `json:"kind" validate:"required,oneof=percentage fixed"`
	MinimumSubtotal float64    `json:"minimum_subtotal,omitempty" validate:"gte=0"`
}

// CartItem is one cart line. VariantID is the unique key within a cart;
// the display fields are snapshotted from the catalog at add time.
type CartItem struct {
	VariantID int64   `json:"variant_id"`
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	ColorHex  string  `json:"color_hex"`
	Quantity  int     `json:"quantity"`
}

func (i CartItem) LineTotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// Cart is the persisted aggregate: line items in insertion order plus at
// most one applied coupon.
type Cart struct {
	Items     []CartItem `json:"items"`
	Coupon    *Coupon    `json:"coupon,omitempty"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type AddItemRequest struct {
	VariantID int64   `json:"variant_id" validate:"required"`
	ProductID int64   `json:"product_id" validate:"required"`
	Name      string  `json:"name" validate:"required"`
	UnitPrice float64 `json:"unit_price" validate:"required,gte=0"`
	Size      string  `json:"size" validate:"required"`
	Color     string  `json:"color" validate:"required"`
	ColorHex  string  `json:"color_hex"`
	Quantity  int     `json:"quantity" validate:"required,min=1"`
}

type UpdateQuantityRequest struct {
	VariantID int64 `json:"variant_id" validate:"required"`
	Quantity  int   `json:"quantity"`
}

type ApplyCouponRequest struct {
	Code            string     `json:"code" validate:"required"`
	Discount        float64    `json:"discount" validate:"required,gte=0"`
	Kind            CouponKind `json:"kind" validate:"required,oneof=percentage fixed"`
	MinimumSubtotal float64    `json:"minimum_subtotal,omitempty" validate:"gte=0"`
}
