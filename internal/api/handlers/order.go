package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/strixcommerce/storefront-platform/internal/api/middleware"
	appErrors "github.com/strixcommerce/storefront-platform/internal/errors"
	"github.com/strixcommerce/storefront-platform/internal/models"
	repository "github.com/strixcommerce/storefront-platform/internal/repositories"
	"github.com/strixcommerce/storefront-platform/internal/utils/response"
)

type OrderHandler struct {
	orderRepo repository.OrderRepository
}

func NewOrderHandler(orderRepo repository.OrderRepository) *OrderHandler {
	return &OrderHandler{orderRepo: orderRepo}
}

// GetOrder godoc
//	@Summary		Get a placed order
//	@Description	Returns the order header and line items for the post-purchase confirmation view.
//	@Tags			Orders
//	@Produce		json
//	@Param			id	path		string	true	"Order ID"
//	@Success		200	{object}	models.OrderResponse
//	@Failure		400	{object}	response.ErrorResponse	"Invalid order ID"
//	@Failure		404	{object}	response.ErrorResponse	"Order not found"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/orders/{id} [get]
func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		orderID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			response.Error(w, appErrors.BadRequestError("Invalid order ID"))

			return
		}

		order, err := h.orderRepo.GetOrderByID(r.Context(), orderID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				response.Error(w, appErrors.NotFoundError("Order not found"))

				return
			}

			logger.Error("Failed to fetch order", slog.String("order_id", orderID.String()), slog.Any("error", err))
			response.Error(w, appErrors.DatabaseError("Failed to fetch order").WithError(err))

			return
		}

		response.Success(w, http.StatusOK, models.OrderResponse{Order: order})
	}
}
