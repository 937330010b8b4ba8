package model

import (
	"time"
)

// Business is the tenant root. Every other entity (except the superadmin
// user) is scoped to exactly one business via BusinessID.
type Business struct {
	ID uint `gorm:"primaryKey"`
	// BusinessCode is derived post-insert as "RP" + id.
	BusinessCode string `gorm:"type:varchar(20);uniqueIndex"`
	BusinessName string `gorm:"type:varchar(100);not null"`
	Email        string `gorm:"type:varchar(100);uniqueIndex;not null"`
	Phone        string `gorm:"type:varchar(20)"`
	// PasswordHash is a legacy column kept for schema compatibility; logins
	// go through users.password_hash.
	PasswordHash string `gorm:"type:varchar(255)"`
	CreatedAt    time.Time

	Subscription *Subscription `gorm:"foreignKey:BusinessID"`
}
