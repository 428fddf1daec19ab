package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is the header row written at checkout. Customer contact and address
// are snapshotted as plain strings so later catalog or profile edits never
// rewrite order history.
type Order struct {
	ID              uuid.UUID   `json:"id"`
	Status          OrderStatus `json:"status"`
	Subtotal        float64     `json:"subtotal"`
	Discount        float64     `json:"discount"`
	ShippingFee     float64     `json:"shipping_fee"`
	Total           float64     `json:"total"`
	CustomerName    string      `json:"customer_name"`
	CustomerEmail   string      `json:"customer_email"`
	CustomerPhone   string      `json:"customer_phone"`
	ShippingAddress string      `json:"shipping_address"`
	CouponCode      string      `json:"coupon_code,omitempty"`
	Items           []OrderItem `json:"items"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// OrderItem captures one cart line at the moment of purchase.
type OrderItem struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"order_id"`
	ProductID int64     `json:"product_id"`
	VariantID int64     `json:"variant_id"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
	Size      string    `json:"size"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

type OrderResponse struct {
	Order *Order `json:"order"`
}
