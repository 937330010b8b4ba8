package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubscriptionStatus is the closed lifecycle set for a subscription.
type SubscriptionStatus string

const (
	SubscriptionTrial     SubscriptionStatus = "trial"
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionExpired   SubscriptionStatus = "expired"
	SubscriptionSuspended SubscriptionStatus = "suspended"
)

// Subscription is 1:1 with Business. Created at registration with a trial
// window; expires lazily on the login check, and transitions to
// active/suspended only through superadmin actions.
type Subscription struct {
	ID         uint               `gorm:"primaryKey"`
	BusinessID uint               `gorm:"uniqueIndex;not null"`
	PlanName   string             `gorm:"type:varchar(50);default:'monthly'"`
	Amount     decimal.Decimal    `gorm:"type:decimal(10,2);default:0"`
	StartDate  time.Time          `gorm:"not null"`
	EndDate    time.Time          `gorm:"not null"`
	Status     SubscriptionStatus `gorm:"type:varchar(20);not null;default:'trial'"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsActive derives the legacy is_active boolean from Status. The stored
// column was redundant with status and always written in lockstep, so only
// Status is persisted.
func (s *Subscription) IsActive() bool {
	return s.Status == SubscriptionTrial || s.Status == SubscriptionActive
}
