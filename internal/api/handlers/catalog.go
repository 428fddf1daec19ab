package handlers

import (
	"log/slog"
	"net/http"

	"github.com/strixcommerce/storefront-platform/internal/api/middleware"
	"github.com/strixcommerce/storefront-platform/internal/catalog"
	"github.com/strixcommerce/storefront-platform/internal/errors"
	"github.com/strixcommerce/storefront-platform/internal/utils"
	"github.com/strixcommerce/storefront-platform/internal/utils/response"
)

type CatalogHandler struct {
	catalogService *catalog.Service
}

func NewCatalogHandler(catalogService *catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// GetAvailability godoc
//	@Summary		Get variant availability for a product
//	@Description	Returns the sizes, colors, per-variant stock and total stock for a product. Sizes and colors are listed even when sold out.
//	@Tags			Catalog
//	@Produce		json
//	@Param			id	path		int	true	"Product ID"
//	@Success		200	{object}	models.ProductAvailabilityResponse
//	@Failure		400	{object}	response.ErrorResponse	"Invalid product ID"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/products/{id}/availability [get]
func (h *CatalogHandler) GetAvailability() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		productID, err := utils.ParseInt64PathValue(r, "id")
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid product ID"))

			return
		}

		availability, err := h.catalogService.Availability(r.Context(), productID)
		if err != nil {
			logger.Error("Failed to fetch product availability", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, availability)
	}
}

// GetStockMatrix godoc
//	@Summary		Get the size-by-color stock table for a product
//	@Tags			Catalog
//	@Produce		json
//	@Param			id	path		int	true	"Product ID"
//	@Success		200	{array}		catalog.StockRow
//	@Failure		400	{object}	response.ErrorResponse	"Invalid product ID"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/products/{id}/stock-matrix [get]
func (h *CatalogHandler) GetStockMatrix() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		productID, err := utils.ParseInt64PathValue(r, "id")
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid product ID"))

			return
		}

		matrix, err := h.catalogService.StockMatrix(r.Context(), productID)
		if err != nil {
			logger.Error("Failed to build stock matrix", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, matrix)
	}
}
