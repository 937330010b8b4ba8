package model

import "time"

// RevokedToken blocklists a session token on logout. Only the SHA-256 hash
// of the token is stored. ExpiresAt mirrors the token's own expiry so the
// eviction cron can drop rows that no longer need blocking.
type RevokedToken struct {
	ID        uint      `gorm:"primaryKey"`
	TokenHash string    `gorm:"type:char(64);uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time
}
