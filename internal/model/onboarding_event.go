package model

import "time"

// Onboarding event vocabulary. Steps that leave no database trace of their
// own (page views) are recorded as events; the rest are derived from data.
const (
	EventViewStock  = "view_stock"
	EventViewReport = "view_report"
)

// OnboardingEvent records a milestone per business. The composite unique
// index makes recording idempotent: duplicate inserts are no-ops.
type OnboardingEvent struct {
	ID         uint   `gorm:"primaryKey"`
	BusinessID uint   `gorm:"not null;uniqueIndex:uq_onboarding_business_event"`
	Event      string `gorm:"type:varchar(50);not null;uniqueIndex:uq_onboarding_business_event"`
	CreatedAt  time.Time
}
