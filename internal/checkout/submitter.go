package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	appErrors "github.com/strixcommerce/storefront-platform/internal/errors"
	"github.com/strixcommerce/storefront-platform/internal/metrics"
	"github.com/strixcommerce/storefront-platform/internal/models"
	"github.com/strixcommerce/storefront-platform/internal/pricing"
	repository "github.com/strixcommerce/storefront-platform/internal/repositories"
	"github.com/strixcommerce/storefront-platform/pkg/sendgrid"
)

// Submission is the point-in-time snapshot handed over at confirmation:
// cart lines, the computed quote, the shipping form and the coupon, all
// detached from live state.
type Submission struct {
	Items    []models.CartItem
	Quote    pricing.Quote
	Shipping models.ShippingInfo
	Coupon   *models.Coupon
}

// Submitter performs the two-step order commit. The backing store has no
// transaction spanning the header and the line items, so a failure between
// the two writes leaves a header-only order behind; the submitter logs the
// order ID for reconciliation and reports a retryable error without
// attempting a compensating delete.
type Submitter struct {
	orders repository.OrderRepository
	emails sendgrid.EmailService
}

func NewSubmitter(orders repository.OrderRepository, emails sendgrid.EmailService) *Submitter {
	return &Submitter{orders: orders, emails: emails}
}

// Submit writes the order header, then the line items. On a header failure
// nothing is persisted and the caller may retry as-is.
func (s *Submitter) Submit(ctx context.Context, sub *Submission) (*models.Order, error) {

	if len(sub.Items) == 0 {
		return nil, appErrors.EmptyCartError()
	}

	order := buildOrder(sub)

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		metrics.OrderSubmitFailures.WithLabelValues("header").Inc()

		return nil, appErrors.OrderWriteError("Failed to register the order").WithError(err)
	}

	items := buildOrderItems(order.ID, sub.Items)

	if err := s.orders.InsertOrderItems(ctx, order.ID, items); err != nil {
		metrics.OrderSubmitFailures.WithLabelValues("lines").Inc()
		slog.Error("Order header persisted without line items; manual reconciliation required",
			slog.String("order_id", order.ID.String()),
			slog.String("error", err.Error()))

		return nil, appErrors.OrderLinesWriteError("Failed to register the order items").WithError(err)
	}

	order.Items = items

	metrics.OrdersPlaced.Inc()

	s.sendConfirmation(ctx, order)

	return order, nil
}

func buildOrder(sub *Submission) *models.Order {

	order := &models.Order{
		ID:            uuid.New(),
		Status:        models.OrderStatusPending,
		Subtotal:      sub.Quote.Subtotal,
		Discount:      sub.Quote.Discount,
		ShippingFee:   sub.Quote.Shipping,
		Total:         sub.Quote.Total,
		CustomerName:  sub.Shipping.FirstName + " " + sub.Shipping.LastName,
		CustomerEmail: sub.Shipping.Email,
		CustomerPhone: sub.Shipping.Phone,
		ShippingAddress: fmt.Sprintf("%s, %s, %s (%s)",
			sub.Shipping.Address, sub.Shipping.City, sub.Shipping.Province, sub.Shipping.PostalCode),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if sub.Coupon != nil && sub.Quote.Discount > 0 {
		order.CouponCode = sub.Coupon.Code
	}

	return order
}

func buildOrderItems(orderID uuid.UUID, items []models.CartItem) []models.OrderItem {

	orderItems := make([]models.OrderItem, 0, len(items))

	for _, item := range items {
		orderItems = append(orderItems, models.OrderItem{
			ID:        uuid.New(),
			OrderID:   orderID,
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Size:      item.Size,
			Color:     item.Color,
			CreatedAt: time.Now(),
		})
	}

	return orderItems
}

// sendConfirmation is best effort: the order is already committed, so a
// failed email only gets logged.
func (s *Submitter) sendConfirmation(ctx context.Context, order *models.Order) {

	if s.emails == nil {
		return
	}

	if err := s.emails.SendOrderConfirmation(ctx, order); err != nil {
		slog.Warn("Failed to send order confirmation email",
			slog.String("order_id", order.ID.String()),
			slog.String("error", err.Error()))
	}
}
