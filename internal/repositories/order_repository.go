package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/strixcommerce/storefront-platform/internal/models"
	"github.com/strixcommerce/storefront-platform/internal/utils"
)

// OrderRepository is the persistence collaborator for the two-step order
// commit. CreateOrder and InsertOrderItems are separate calls because the
// backing store offers no transaction spanning both tables.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	InsertOrderItems(ctx context.Context, orderID uuid.UUID, items []models.OrderItem) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO orders (id, status, subtotal, discount, shipping_fee, total, customer_name, customer_email, customer_phone, shipping_address, coupon_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		order.ID, order.Status, order.Subtotal, order.Discount, order.ShippingFee, order.Total,
		order.CustomerName, order.CustomerEmail, order.CustomerPhone, order.ShippingAddress,
		sql.NullString{String: order.CouponCode, Valid: order.CouponCode != ""},
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
}

func (r *orderRepository) InsertOrderItems(ctx context.Context, orderID uuid.UUID, items []models.OrderItem) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO order_items (id, order_id, product_id, variant_id, quantity, unit_price, size, color, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`

	for _, item := range items {

		_, err := r.DB.ExecContext(dbCtx, query,
			item.ID, orderID, item.ProductID, item.VariantID, item.Quantity, item.UnitPrice, item.Size, item.Color)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	return nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	order := &models.Order{ID: id}

	query := `
		SELECT status, subtotal, discount, shipping_fee, total, customer_name, customer_email, customer_phone, shipping_address, coupon_code, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	var couponCode sql.NullString

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(
		&order.Status, &order.Subtotal, &order.Discount, &order.ShippingFee, &order.Total,
		&order.CustomerName, &order.CustomerEmail, &order.CustomerPhone, &order.ShippingAddress,
		&couponCode, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("failed to get the order: %w", err)
	}

	order.CouponCode = couponCode.String

	query = `
		SELECT id, product_id, variant_id, quantity, unit_price, size, color, created_at
		FROM order_items
		WHERE order_id = $1
	`

	rows, err := r.DB.QueryContext(dbCtx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get the order items: %w", err)
	}

	defer rows.Close()

	var items []models.OrderItem

	for rows.Next() {

		var item models.OrderItem

		if err := rows.Scan(&item.ID, &item.ProductID, &item.VariantID, &item.Quantity, &item.UnitPrice, &item.Size, &item.Color, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		item.OrderID = order.ID

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read order items: %w", err)
	}

	order.Items = items

	return order, nil
}
