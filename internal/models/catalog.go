package models

import "time"

type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Product struct {
	ID          int64     `json:"id"`
	CategoryID  int64     `json:"category_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Category    *Category `json:"category,omitempty"`
}

type Size struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Color struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	HexCode string `json:"hex_code"`
}

// ProductVariant is one purchasable (size, color) configuration of a product.
// At most one variant exists per (ProductID, SizeID, ColorID) triple; the
// catalog admin owns these rows, the storefront only reads them.
type ProductVariant struct {
	ID        int64 `json:"id"`
	ProductID int64 `json:"product_id"`
	SizeID    int64 `json:"size_id"`
	ColorID   int64 `json:"color_id"`
	Stock     int   `json:"stock"`
}

type ProductAvailabilityResponse struct {
	ProductID  int64            `json:"product_id"`
	TotalStock int              `json:"total_stock"`
	Sizes      []int64          `json:"sizes"`
	Colors     []int64          `json:"colors"`
	Variants   []ProductVariant `json:"variants"`
}
