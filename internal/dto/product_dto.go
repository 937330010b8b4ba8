package dto

import "github.com/shopspring/decimal"

type AddProductRequest struct {
	Name        string           `json:"name"         validate:"required,min=1,max=255"`
	Price       decimal.Decimal  `json:"price"        validate:"required,min=0"`
	BuyingPrice *decimal.Decimal `json:"buying_price" validate:"omitempty,min=0"`
	Quantity    int              `json:"quantity"     validate:"min=0"`
}

// UpdateStockRequest is a partial patch: only non-nil fields are applied.
type UpdateStockRequest struct {
	Quantity    *int             `json:"quantity"     validate:"omitempty,min=0"`
	Price       *decimal.Decimal `json:"price"        validate:"omitempty,min=0"`
	BuyingPrice *decimal.Decimal `json:"buying_price" validate:"omitempty,min=0"`
}

type ProductResponse struct {
	ID          uint             `json:"id"`
	Name        string           `json:"name"`
	Price       decimal.Decimal  `json:"price"`
	BuyingPrice *decimal.Decimal `json:"buying_price,omitempty"`
	Quantity    int              `json:"quantity"`
	CreatedAt   string           `json:"created_at"`
}
