package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/strixcommerce/storefront-platform/internal/api/middleware"
	"github.com/strixcommerce/storefront-platform/internal/checkout"
	appErrors "github.com/strixcommerce/storefront-platform/internal/errors"
	"github.com/strixcommerce/storefront-platform/internal/models"
	"github.com/strixcommerce/storefront-platform/internal/utils"
	"github.com/strixcommerce/storefront-platform/internal/utils/response"
)

type OrderPlacedResponse struct {
	OrderID uuid.UUID `json:"order_id"`
	Total   float64   `json:"total"`
}

type CheckoutHandler struct {
	flows *checkout.Manager
}

func NewCheckoutHandler(flows *checkout.Manager) *CheckoutHandler {
	return &CheckoutHandler{flows: flows}
}

func (h *CheckoutHandler) flow(w http.ResponseWriter, r *http.Request) (*checkout.Flow, *slog.Logger, bool) {

	logger := middleware.LoggerFromContext(r.Context())

	sessionID, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		logger.Warn("Checkout request without session")
		response.Error(w, appErrors.InternalError("Session is not initialized"))

		return nil, logger, false
	}

	flow, err := h.flows.Flow(r.Context(), sessionID)
	if err != nil {
		logger.Error("Failed to load checkout flow", slog.Any("error", err))
		response.Error(w, appErrors.DatabaseError("Failed to load checkout").WithError(err))

		return nil, logger, false
	}

	return flow, logger.With(slog.String("session_id", sessionID)), true
}

// GetState godoc
//	@Summary	Get the current checkout step and totals
//	@Tags		Checkout
//	@Produce	json
//	@Success	200	{object}	models.CheckoutStateResponse
//	@Router		/checkout [get]
func (h *CheckoutHandler) GetState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		flow, _, ok := h.flow(w, r)
		if !ok {
			return
		}

		response.Success(w, http.StatusOK, flow.State())
	}
}

// SubmitShipping godoc
//	@Summary		Submit the shipping form and advance to payment
//	@Description	All fields are required and the email must contain an '@'. An empty cart aborts checkout entirely.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			shipping	body		models.ShippingInfo	true	"Shipping details"
//	@Success		200			{object}	models.CheckoutStateResponse
//	@Failure		400			{object}	response.ErrorResponse	"Validation error"
//	@Failure		409			{object}	response.ErrorResponse	"Empty cart or wrong step"
//	@Router			/checkout/shipping [post]
func (h *CheckoutHandler) SubmitShipping() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		flow, logger, ok := h.flow(w, r)
		if !ok {
			return
		}

		var info models.ShippingInfo
		if err := utils.DecodeJSONBody(r, &info); err != nil {
			response.WriteJson(w, http.StatusBadRequest, response.GeneralError(err))

			return
		}

		if err := flow.SubmitShipping(info); err != nil {
			logger.Warn("Shipping step rejected", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Checkout advanced to payment")

		response.Success(w, http.StatusOK, flow.State())
	}
}

// SubmitPayment godoc
//	@Summary		Submit the payment form and advance to confirmation
//	@Description	Format checks only: 16-digit card number (spaces stripped), MM/YY expiry, CVV of at least 3 characters. The card is never charged.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			payment	body		models.PaymentInfo	true	"Payment details"
//	@Success		200		{object}	models.CheckoutStateResponse
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		409		{object}	response.ErrorResponse	"Empty cart or wrong step"
//	@Router			/checkout/payment [post]
func (h *CheckoutHandler) SubmitPayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		flow, logger, ok := h.flow(w, r)
		if !ok {
			return
		}

		var info models.PaymentInfo
		if err := utils.DecodeJSONBody(r, &info); err != nil {
			response.WriteJson(w, http.StatusBadRequest, response.GeneralError(err))

			return
		}

		if err := flow.SubmitPayment(info); err != nil {
			logger.Warn("Payment step rejected", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Checkout advanced to confirmation")

		response.Success(w, http.StatusOK, flow.State())
	}
}

// Back godoc
//	@Summary	Navigate one checkout step backwards
//	@Tags		Checkout
//	@Produce	json
//	@Success	200	{object}	models.CheckoutStateResponse
//	@Failure	409	{object}	response.ErrorResponse	"Cannot navigate back"
//	@Router		/checkout/back [post]
func (h *CheckoutHandler) Back() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		flow, logger, ok := h.flow(w, r)
		if !ok {
			return
		}

		if err := flow.Back(); err != nil {
			logger.Warn("Back navigation rejected", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, flow.State())
	}
}

// Submit godoc
//	@Summary		Place the order
//	@Description	Commits the order header and line items. On failure the cart is preserved and the attempt may be retried; a second submit while one is in flight is refused.
//	@Tags			Checkout
//	@Produce		json
//	@Success		201	{object}	handlers.OrderPlacedResponse
//	@Failure		409	{object}	response.ErrorResponse	"Empty cart, wrong step or submission in progress"
//	@Failure		502	{object}	response.ErrorResponse	"Order write failed"
//	@Router			/checkout/submit [post]
func (h *CheckoutHandler) Submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		flow, logger, ok := h.flow(w, r)
		if !ok {
			return
		}

		order, err := flow.Submit(r.Context())
		if err != nil {
			if errors.Is(err, checkout.ErrSubmitInProgress) {
				response.Error(w, appErrors.ConflictError("An order submission is already in progress"))

				return
			}

			logger.Error("Order submission failed", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Order placed", slog.String("order_id", order.ID.String()))

		response.Success(w, http.StatusCreated, OrderPlacedResponse{
			OrderID: order.ID,
			Total:   order.Total,
		})
	}
}

// Abandon godoc
//	@Summary	Discard the checkout draft
//	@Tags		Checkout
//	@Produce	json
//	@Success	204	"Draft discarded; the cart is untouched"
//	@Router		/checkout [delete]
func (h *CheckoutHandler) Abandon() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sessionID, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			response.Error(w, appErrors.InternalError("Session is not initialized"))

			return
		}

		h.flows.Drop(sessionID)

		logger.Info("Checkout draft discarded")

		w.WriteHeader(http.StatusNoContent)
	}
}
