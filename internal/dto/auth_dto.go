package dto

import "time"

// RegisterRequest creates a Business, its admin User, and a trial
// Subscription in a single transaction.
type RegisterRequest struct {
	BusinessName string `json:"business_name" form:"business_name" validate:"required,min=2,max=100"`
	Username     string `json:"username"      form:"username"      validate:"required,min=3,max=50"`
	Email        string `json:"email"         form:"email"         validate:"required,email"`
	Phone        string `json:"phone"         form:"phone"         validate:"omitempty,max=20"`
	Password     string `json:"password"      form:"password"      validate:"required,min=6"`
}

type RegisterResponse struct {
	BusinessID   uint   `json:"business_id"`
	BusinessCode string `json:"business_code"`
	BusinessName string `json:"business_name"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	RedirectTo   string `json:"redirect_to"`
}

type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
}

// LoginResponse carries the session token alongside the role-dependent
// redirect target. The handler also sets the token as an HTTP-only cookie.
type LoginResponse struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	ExpiresIn   int        `json:"expires_in"` // seconds
	Username    string     `json:"username"`
	Role        string     `json:"role"`
	BusinessID  *uint      `json:"business_id,omitempty"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
	RedirectTo  string     `json:"redirect_to"`
}

type CreateSuperadminRequest struct {
	Username string `json:"username" form:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" form:"password" validate:"required,min=8"`
}
