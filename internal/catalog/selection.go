package catalog

import "github.com/strixcommerce/storefront-platform/internal/models"

// Selection tracks the shopper's current (size, color, quantity) choice for
// a product. Picking a new size invalidates the color (the old color may
// not exist for it) and picking a color resets the quantity to one.
type Selection struct {
	index    *VariantIndex
	sizeID   int64
	colorID  int64
	quantity int
}

func NewSelection(index *VariantIndex) *Selection {
	return &Selection{index: index, quantity: 1}
}

func (s *Selection) SizeID() int64 {
	return s.sizeID
}

func (s *Selection) ColorID() int64 {
	return s.colorID
}

func (s *Selection) Quantity() int {
	return s.quantity
}

func (s *Selection) SelectSize(sizeID int64) {
	s.sizeID = sizeID
	s.colorID = 0
	s.quantity = 1
}

func (s *Selection) SelectColor(colorID int64) {
	s.colorID = colorID
	s.quantity = 1
}

// Variant resolves the currently selected pair, if both parts are chosen
// and the combination exists.
func (s *Selection) Variant() (models.ProductVariant, bool) {

	if s.sizeID == 0 || s.colorID == 0 {
		return models.ProductVariant{}, false
	}

	return s.index.Variant(s.sizeID, s.colorID)
}

// IncrementQuantity steps the requested quantity up, capped at the selected
// variant's stock. Without a resolved variant it is a no-op.
func (s *Selection) IncrementQuantity() {

	v, ok := s.Variant()
	if !ok {
		return
	}

	if s.quantity < v.Stock {
		s.quantity++
	}
}

func (s *Selection) DecrementQuantity() {
	if s.quantity > 1 {
		s.quantity--
	}
}

// CanAddToCart reports whether the selection resolves to a variant with
// stock for the requested quantity. The check is advisory: stock is not
// reserved and may change before checkout.
func (s *Selection) CanAddToCart() bool {

	v, ok := s.Variant()
	if !ok {
		return false
	}

	return v.Stock > 0 && s.quantity <= v.Stock
}
