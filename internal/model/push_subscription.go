package model

import "time"

// PushSubscription stores one browser push endpoint. Endpoint is the upsert
// key: re-subscribing from the same device updates keys and ownership
// instead of accumulating stale rows.
type PushSubscription struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     uint   `gorm:"not null"`
	BusinessID uint   `gorm:"index;not null"`
	Endpoint   string `gorm:"type:varchar(512);uniqueIndex;not null"`
	P256dh     string `gorm:"type:varchar(255);not null"`
	Auth       string `gorm:"type:varchar(255);not null"`
	CreatedAt  time.Time
}
