package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/strixcommerce/storefront-platform/internal/api/middleware"
	"github.com/strixcommerce/storefront-platform/internal/cart"
	"github.com/strixcommerce/storefront-platform/internal/catalog"
	"github.com/strixcommerce/storefront-platform/internal/errors"
	"github.com/strixcommerce/storefront-platform/internal/metrics"
	"github.com/strixcommerce/storefront-platform/internal/models"
	"github.com/strixcommerce/storefront-platform/internal/pricing"
	"github.com/strixcommerce/storefront-platform/internal/utils"
	"github.com/strixcommerce/storefront-platform/internal/utils/response"
)

type CartResponse struct {
	Items     []models.CartItem `json:"items"`
	Coupon    *models.Coupon    `json:"coupon,omitempty"`
	ItemCount int               `json:"item_count"`
	Quote     pricing.Quote     `json:"quote"`
}

type CartHandler struct {
	carts          *cart.Manager
	catalogService *catalog.Service
	engine         *pricing.Engine
	validator      *validator.Validate
}

func NewCartHandler(carts *cart.Manager, catalogService *catalog.Service, engine *pricing.Engine) *CartHandler {
	return &CartHandler{
		carts:          carts,
		catalogService: catalogService,
		engine:         engine,
		validator:      validator.New(),
	}
}

func (h *CartHandler) store(w http.ResponseWriter, r *http.Request) (*cart.Store, *slog.Logger, bool) {

	logger := middleware.LoggerFromContext(r.Context())

	sessionID, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		logger.Warn("Cart request without session")
		response.Error(w, errors.InternalError("Session is not initialized"))

		return nil, logger, false
	}

	store, err := h.carts.Get(r.Context(), sessionID)
	if err != nil {
		logger.Error("Failed to load cart", slog.Any("error", err))
		response.Error(w, errors.DatabaseError("Failed to load cart").WithError(err))

		return nil, logger, false
	}

	return store, logger.With(slog.String("session_id", sessionID)), true
}

func (h *CartHandler) cartResponse(store *cart.Store) CartResponse {

	snapshot := store.Snapshot()

	return CartResponse{
		Items:     snapshot.Items,
		Coupon:    snapshot.Coupon,
		ItemCount: store.ItemCount(),
		Quote:     h.engine.Quote(snapshot.Items, snapshot.Coupon),
	}
}

// GetCart godoc
//	@Summary	Get the session's cart with live totals
//	@Tags		Cart
//	@Produce	json
//	@Success	200	{object}	handlers.CartResponse
//	@Router		/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		store, _, ok := h.store(w, r)
		if !ok {
			return
		}

		response.Success(w, http.StatusOK, h.cartResponse(store))
	}
}

// AddItem godoc
//	@Summary		Add a variant to the cart
//	@Description	Merges into an existing line for the same variant. The requested quantity is checked against current stock as an advisory guard; stock is not reserved.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.AddItemRequest	true	"Line to add"
//	@Success		200		{object}	handlers.CartResponse
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		409		{object}	response.ErrorResponse	"Insufficient stock"
//	@Router			/cart/items [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		store, logger, ok := h.store(w, r)
		if !ok {
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.checkStock(r, store, &req); err != nil {
			logger.Warn("Add to cart rejected", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		store.Add(r.Context(), models.CartItem{
			VariantID: req.VariantID,
			ProductID: req.ProductID,
			Name:      req.Name,
			UnitPrice: req.UnitPrice,
			Size:      req.Size,
			Color:     req.Color,
			ColorHex:  req.ColorHex,
			Quantity:  req.Quantity,
		})

		logger.Info("Item added to cart",
			slog.Int64("variant_id", req.VariantID),
			slog.Int("quantity", req.Quantity))

		response.Success(w, http.StatusOK, h.cartResponse(store))
	}
}

// checkStock is the selection-time advisory guard: the requested quantity,
// on top of what the cart already holds for the variant, must not exceed
// the variant's current stock.
func (h *CartHandler) checkStock(r *http.Request, store *cart.Store, req *models.AddItemRequest) error {

	index, err := h.catalogService.Index(r.Context(), req.ProductID)
	if err != nil {
		return err
	}

	if index.Empty() {
		return errors.NotFoundError("Product has no purchasable variants")
	}

	variant, found := index.VariantByID(req.VariantID)
	if !found {
		return errors.NotFoundError("Variant not found")
	}

	inCart := 0

	for _, item := range store.Items() {
		if item.VariantID == req.VariantID {
			inCart = item.Quantity

			break
		}
	}

	if req.Quantity+inCart > variant.Stock {
		return errors.OutOfStockError("Not enough stock for the selected variant")
	}

	return nil
}

// UpdateQuantity godoc
//	@Summary		Set a line's quantity
//	@Description	Quantities below one clamp to one; removal is a separate operation. Unknown variants are ignored.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.UpdateQuantityRequest	true	"Line to update"
//	@Success		200		{object}	handlers.CartResponse
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Router			/cart/items [put]
func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		store, logger, ok := h.store(w, r)
		if !ok {
			return
		}

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		store.UpdateQuantity(r.Context(), req.VariantID, req.Quantity)

		logger.Info("Cart quantity updated",
			slog.Int64("variant_id", req.VariantID),
			slog.Int("quantity", req.Quantity))

		response.Success(w, http.StatusOK, h.cartResponse(store))
	}
}

// RemoveItem godoc
//	@Summary	Remove a line from the cart
//	@Tags		Cart
//	@Produce	json
//	@Param		variantId	path		int	true	"Variant ID"
//	@Success	200			{object}	handlers.CartResponse
//	@Failure	400			{object}	response.ErrorResponse	"Invalid variant ID"
//	@Router		/cart/items/{variantId} [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		store, logger, ok := h.store(w, r)
		if !ok {
			return
		}

		variantID, err := utils.ParseInt64PathValue(r, "variantId")
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid variant ID"))

			return
		}

		store.Remove(r.Context(), variantID)

		logger.Info("Cart item removed", slog.Int64("variant_id", variantID))

		response.Success(w, http.StatusOK, h.cartResponse(store))
	}
}

// ClearCart godoc
//	@Summary	Empty the cart and drop any coupon
//	@Tags		Cart
//	@Produce	json
//	@Success	200	{object}	handlers.CartResponse
//	@Router		/cart [delete]
func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		store, logger, ok := h.store(w, r)
		if !ok {
			return
		}

		store.Clear(r.Context())

		logger.Info("Cart cleared")

		response.Success(w, http.StatusOK, h.cartResponse(store))
	}
}

// ApplyCoupon godoc
//	@Summary		Apply a coupon to the cart
//	@Description	Replaces any previously applied coupon. Whether the discount takes effect is decided at pricing time against the coupon's minimum subtotal.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			coupon	body		models.ApplyCouponRequest	true	"Coupon"
//	@Success		200		{object}	handlers.CartResponse
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Router			/cart/coupon [post]
func (h *CartHandler) ApplyCoupon() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		store, logger, ok := h.store(w, r)
		if !ok {
			return
		}

		var req models.ApplyCouponRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		store.ApplyCoupon(r.Context(), models.Coupon{
			Code:            req.Code,
			Discount:        req.Discount,
			Kind:            req.Kind,
			MinimumSubtotal: req.MinimumSubtotal,
		})

		metrics.CouponsApplied.Inc()

		logger.Info("Coupon applied", slog.String("code", req.Code))

		response.Success(w, http.StatusOK, h.cartResponse(store))
	}
}

// RemoveCoupon godoc
//	@Summary	Remove the applied coupon
//	@Tags		Cart
//	@Produce	json
//	@Success	200	{object}	handlers.CartResponse
//	@Router		/cart/coupon [delete]
func (h *CartHandler) RemoveCoupon() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		store, logger, ok := h.store(w, r)
		if !ok {
			return
		}

		store.RemoveCoupon(r.Context())

		logger.Info("Coupon removed")

		response.Success(w, http.StatusOK, h.cartResponse(store))
	}
}
