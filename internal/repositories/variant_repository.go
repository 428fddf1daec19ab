package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/strixcommerce/storefront-platform/internal/models"
	"github.com/strixcommerce/storefront-platform/internal/utils"
)

type VariantRepository interface {
	ReadVariants(ctx context.Context, productID int64) ([]models.ProductVariant, error)
	ListSizes(ctx context.Context) ([]models.Size, error)
	ListColors(ctx context.Context) ([]models.Color, error)
}

type variantRepository struct {
	DB *sql.DB
}

func NewVariantRepo(db *sql.DB) VariantRepository {
	return &variantRepository{DB: db}
}

func (r *variantRepository) ReadVariants(ctx context.Context, productID int64) ([]models.ProductVariant, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, product_id, size_id, color_id, stock
		FROM product_variants
		WHERE product_id = $1
		ORDER BY id
	`

	rows, err := r.DB.QueryContext(dbCtx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query product variants: %w", err)
	}

	defer rows.Close()

	var variants []models.ProductVariant

	for rows.Next() {

		var v models.ProductVariant

		if err := rows.Scan(&v.ID, &v.ProductID, &v.SizeID, &v.ColorID, &v.Stock); err != nil {
			return nil, fmt.Errorf("failed to scan product variant: %w", err)
		}

		variants = append(variants, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read product variants: %w", err)
	}

	return variants, nil
}

func (r *variantRepository) ListSizes(ctx context.Context) ([]models.Size, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT id, name FROM sizes ORDER BY id`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sizes: %w", err)
	}

	defer rows.Close()

	var sizes []models.Size

	for rows.Next() {

		var s models.Size

		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("failed to scan size: %w", err)
		}

		sizes = append(sizes, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sizes: %w", err)
	}

	return sizes, nil
}

func (r *variantRepository) ListColors(ctx context.Context) ([]models.Color, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT id, name, hex_code FROM colors ORDER BY id`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query colors: %w", err)
	}

	defer rows.Close()

	var colors []models.Color

	for rows.Next() {

		var c models.Color

		if err := rows.Scan(&c.ID, &c.Name, &c.HexCode); err != nil {
			return nil, fmt.Errorf("failed to scan color: %w", err)
		}

		colors = append(colors, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read colors: %w", err)
	}

	return colors, nil
}
