package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product belongs to one business; Name is unique within that business.
// Invariant: Price >= BuyingPrice whenever BuyingPrice is set.
type Product struct {
	ID         uint            `gorm:"primaryKey"`
	BusinessID uint            `gorm:"not null;uniqueIndex:uq_product_name_business"`
	Name       string          `gorm:"type:varchar(255);not null;uniqueIndex:uq_product_name_business"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// BuyingPrice is nullable: products imported without cost tracking have
	// no price floor and report zero profit margin.
	BuyingPrice *decimal.Decimal `gorm:"type:decimal(10,2)"`
	Quantity    int              `gorm:"not null;default:0"`
	CreatedAt   time.Time
}
