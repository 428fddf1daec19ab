package catalog

import (
	"context"
	"log/slog"

	"github.com/strixcommerce/storefront-platform/internal/cache"
	appErrors "github.com/strixcommerce/storefront-platform/internal/errors"
	"github.com/strixcommerce/storefront-platform/internal/models"
	repository "github.com/strixcommerce/storefront-platform/internal/repositories"
)

// Service reads the variant list for a product through a short-lived cache.
// Stock values served from cache are advisory only; checkout never relies
// on them.
type Service struct {
	repo  repository.VariantRepository
	cache cache.Cache
}

func NewService(repo repository.VariantRepository, c cache.Cache) *Service {
	return &Service{repo: repo, cache: c}
}

// Index returns the VariantIndex for the product. An empty variant list is
// not an error: the caller treats the product as unavailable.
func (s *Service) Index(ctx context.Context, productID int64) (*VariantIndex, error) {

	variants, err := s.variants(ctx, productID)
	if err != nil {
		return nil, err
	}

	return NewVariantIndex(variants), nil
}

// Availability assembles the product page payload: sizes, colors, total
// stock and the raw variants.
func (s *Service) Availability(ctx context.Context, productID int64) (*models.ProductAvailabilityResponse, error) {

	variants, err := s.variants(ctx, productID)
	if err != nil {
		return nil, err
	}

	index := NewVariantIndex(variants)

	return &models.ProductAvailabilityResponse{
		ProductID:  productID,
		TotalStock: index.TotalStock(),
		Sizes:      index.AvailableSizes(),
		Colors:     index.AvailableColors(0),
		Variants:   variants,
	}, nil
}

// StockMatrix returns the size-by-color table for the product page.
func (s *Service) StockMatrix(ctx context.Context, productID int64) ([]StockRow, error) {

	index, err := s.Index(ctx, productID)
	if err != nil {
		return nil, err
	}

	sizes, err := s.repo.ListSizes(ctx)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch sizes").WithError(err)
	}

	colors, err := s.repo.ListColors(ctx)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch colors").WithError(err)
	}

	return index.StockMatrix(sizes, colors), nil
}

func (s *Service) variants(ctx context.Context, productID int64) ([]models.ProductVariant, error) {

	key := cache.VariantsKey(productID)

	if s.cache != nil {

		var cached []models.ProductVariant

		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			slog.Warn("Variant cache read failed", slog.String("error", err.Error()))
		}

		if found {
			return cached, nil
		}
	}

	variants, err := s.repo.ReadVariants(ctx, productID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch product variants").WithError(err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, variants, 0); err != nil {
			slog.Warn("Variant cache write failed", slog.String("error", err.Error()))
		}
	}

	return variants, nil
}
