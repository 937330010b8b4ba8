package dto

import "time"

// ClientSummary is one row of the superadmin client list: business,
// subscription state, and the owner admin's last login.
type ClientSummary struct {
	BusinessID         uint       `json:"business_id"`
	BusinessCode       string     `json:"business_code"`
	BusinessName       string     `json:"business_name"`
	Phone              string     `json:"phone"`
	SubscriptionStatus string     `json:"subscription_status"` // "none" when missing
	DaysLeft           *int       `json:"days_left"`
	IsActive           bool       `json:"is_active"`
	OwnerLastLogin     *time.Time `json:"owner_last_login"`
}

type SubscriptionActionResponse struct {
	BusinessID uint      `json:"business_id"`
	Status     string    `json:"status"`
	EndDate    time.Time `json:"end_date"`
	Message    string    `json:"message"`
}

type PushReminderRequest struct {
	Title string `json:"title" validate:"omitempty,max=100"`
	Body  string `json:"body"  validate:"omitempty,max=500"`
}
