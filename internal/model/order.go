package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order aggregates the line items of one sale transaction. OrderCode is a
// sequential human-readable identifier ("ORD-00001") allocated from a
// database sequence inside the order transaction.
type Order struct {
	ID          uint            `gorm:"primaryKey"`
	OrderCode   string          `gorm:"type:varchar(20);uniqueIndex;not null"`
	BusinessID  uint            `gorm:"index;not null"`
	ClientName  string          `gorm:"type:varchar(100)"`
	SalesPerson string          `gorm:"type:varchar(100)"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// IsDemo marks onboarding preview orders: persisted and reported, but
	// stock-neutral and purged on the first real sale.
	IsDemo    bool `gorm:"not null;default:false"`
	CreatedAt time.Time

	Lines []Sale `gorm:"foreignKey:OrderID"`
}

// Sale is one order line item referencing a product. TotalPrice is
// quantity x the selling price quoted at sale time, not the product's
// current catalog price.
type Sale struct {
	ID         uint            `gorm:"primaryKey"`
	OrderID    uint            `gorm:"index;not null"`
	BusinessID uint            `gorm:"index;not null"`
	ProductID  uint            `gorm:"not null"`
	Quantity   int             `gorm:"not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	IsDemo     bool            `gorm:"not null;default:false"`
	CreatedAt  time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
	Order   *Order   `gorm:"foreignKey:OrderID"`
}
