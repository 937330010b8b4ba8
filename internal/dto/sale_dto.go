package dto

import "github.com/shopspring/decimal"

type SaleItemRequest struct {
	ProductName  string          `json:"product_name"  validate:"required"`
	Quantity     int             `json:"quantity"      validate:"required,min=1"`
	SellingPrice decimal.Decimal `json:"selling_price" validate:"required"`
}

type RecordSaleRequest struct {
	ClientName  string            `json:"client_name"  validate:"omitempty,max=100"`
	SalesPerson string            `json:"sales_person" validate:"omitempty,max=100"`
	Items       []SaleItemRequest `json:"items"        validate:"required,min=1,dive"`
}

type SaleLineResponse struct {
	ProductName  string          `json:"product_name"`
	QuantitySold int             `json:"quantity_sold"`
	TotalPrice   decimal.Decimal `json:"total_price"`
}

type RecordSaleResponse struct {
	OrderCode   string             `json:"order_code"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	TotalProfit decimal.Decimal    `json:"total_profit"`
	IsDemo      bool               `json:"is_demo"`
	Lines       []SaleLineResponse `json:"lines"`
}

// SalesItemRow is one flattened Order x Sale x Product row of the sales
// report, newest first. Demo rows are included; the UI badges them.
type SalesItemRow struct {
	OrderCode   string          `json:"order_code"`
	ClientName  string          `json:"client_name"`
	SalesPerson string          `json:"sales_person"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	IsDemo      bool            `json:"is_demo"`
	CreatedAt   string          `json:"created_at"`
}
