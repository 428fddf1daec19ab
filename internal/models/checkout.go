package models

// ShippingInfo is the step-one checkout form. Every field must be present
// before the flow advances; the email only needs to contain an '@'.
type ShippingInfo struct {
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Province   string `json:"province" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	Email      string `json:"email" validate:"required,contains=@"`
}

// PaymentInfo is the step-two checkout form. These are format checks only:
// the card is never charged and the number never leaves this process.
type PaymentInfo struct {
	CardHolder string `json:"card_holder" validate:"required"`
	CardNumber string `json:"card_number" validate:"required"`
	Expiry     string `json:"expiry" validate:"required"`
	CVV        string `json:"cvv" validate:"required,min=3"`
}

type CheckoutStateResponse struct {
	Step       string  `json:"step"`
	Submitting bool    `json:"submitting"`
	OrderID    string  `json:"order_id,omitempty"`
	LastError  string  `json:"last_error,omitempty"`
	Subtotal   float64 `json:"subtotal"`
	Discount   float64 `json:"discount"`
	Shipping   float64 `json:"shipping"`
	Total      float64 `json:"total"`
}
