package model

import (
	"time"
)

// Role is the closed set of user roles. Role checks go through exhaustive
// switches on this type rather than scattered string comparisons.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleStaff      Role = "staff"
	RoleSuperadmin Role = "superadmin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff, RoleSuperadmin:
		return true
	}
	return false
}

// User belongs to exactly one business. A superadmin user has no business
// (BusinessID == nil) and holds cross-tenant privileges.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	BusinessID   *uint  `gorm:"index"`
	Username     string `gorm:"type:varchar(50);uniqueIndex;not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Role         Role   `gorm:"type:varchar(20);not null"`
	Active       bool   `gorm:"not null;default:true"`
	LastLogin    *time.Time
	CreatedAt    time.Time
}
