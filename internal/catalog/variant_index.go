package catalog

import (
	"github.com/strixcommerce/storefront-platform/internal/models"
)

// VariantIndex answers availability queries over the full variant list of a
// single product. It is a pure lookup structure: sizes and colors are
// reported regardless of stock so the UI can render sold-out options as
// disabled instead of hiding them.
type VariantIndex struct {
	variants []models.ProductVariant
}

func NewVariantIndex(variants []models.ProductVariant) *VariantIndex {
	return &VariantIndex{variants: variants}
}

func (x *VariantIndex) Empty() bool {
	return len(x.variants) == 0
}

// AvailableSizes returns the distinct size IDs in first-seen order.
func (x *VariantIndex) AvailableSizes() []int64 {

	seen := make(map[int64]struct{}, len(x.variants))
	sizes := make([]int64, 0, len(x.variants))

	for _, v := range x.variants {
		if _, ok := seen[v.SizeID]; ok {
			continue
		}

		seen[v.SizeID] = struct{}{}
		sizes = append(sizes, v.SizeID)
	}

	return sizes
}

// AvailableColors returns the distinct color IDs carried by the given size.
// A sizeID of zero means "no size selected" and yields every color across
// all variants.
func (x *VariantIndex) AvailableColors(sizeID int64) []int64 {

	seen := make(map[int64]struct{}, len(x.variants))
	colors := make([]int64, 0, len(x.variants))

	for _, v := range x.variants {
		if sizeID != 0 && v.SizeID != sizeID {
			continue
		}

		if _, ok := seen[v.ColorID]; ok {
			continue
		}

		seen[v.ColorID] = struct{}{}
		colors = append(colors, v.ColorID)
	}

	return colors
}

// Variant returns the unique variant for the (size, color) pair.
func (x *VariantIndex) Variant(sizeID, colorID int64) (models.ProductVariant, bool) {

	for _, v := range x.variants {
		if v.SizeID == sizeID && v.ColorID == colorID {
			return v, true
		}
	}

	return models.ProductVariant{}, false
}

// VariantByID resolves a variant by its row ID.
func (x *VariantIndex) VariantByID(id int64) (models.ProductVariant, bool) {

	for _, v := range x.variants {
		if v.ID == id {
			return v, true
		}
	}

	return models.ProductVariant{}, false
}

// StockFor returns the remaining units for the (size, color) pair, or zero
// when no such variant exists.
func (x *VariantIndex) StockFor(sizeID, colorID int64) int {

	v, ok := x.Variant(sizeID, colorID)
	if !ok {
		return 0
	}

	return v.Stock
}

// TotalStock sums stock over every variant; the product page uses it for
// the in-stock badge.
func (x *VariantIndex) TotalStock() int {

	var total int

	for _, v := range x.variants {
		total += v.Stock
	}

	return total
}

type StockCell struct {
	Color models.Color `json:"color"`
	Stock int          `json:"stock"`
}

type StockRow struct {
	Size  models.Size `json:"size"`
	Cells []StockCell `json:"cells"`
}

// StockMatrix builds the size-by-color availability table rendered on the
// product page. Sizes and colors with no variant at all are dropped; cells
// for existing variants carry their stock even when it is zero.
func (x *VariantIndex) StockMatrix(sizes []models.Size, colors []models.Color) []StockRow {

	var rows []StockRow

	for _, size := range sizes {
		if !contains(x.AvailableSizes(), size.ID) {
			continue
		}

		row := StockRow{Size: size}

		sizeColors := x.AvailableColors(size.ID)

		for _, color := range colors {
			if !contains(sizeColors, color.ID) {
				continue
			}

			row.Cells = append(row.Cells, StockCell{
				Color: color,
				Stock: x.StockFor(size.ID, color.ID),
			})
		}

		rows = append(rows, row)
	}

	return rows
}

func contains(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}

	return false
}
