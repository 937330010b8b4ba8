package service

import "errors"

// Sentinel errors shared across services. Handlers translate them into HTTP
// status codes at the request boundary; services wrap them with context via
// fmt.Errorf("...: %w", Err...).
var (
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrForbidden           = errors.New("insufficient permissions")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("already exists")
	ErrInvalidPrice        = errors.New("selling price below buying price")
	ErrPriceFloorViolation = errors.New("selling price below buying price")
	ErrInsufficientStock   = errors.New("not enough stock")
)

// SubscriptionBlockedError is returned by the subscription gate when a login
// must be refused. Reason is one of "missing subscription", "suspended",
// "expired".
type SubscriptionBlockedError struct {
	Reason string
}

func (e *SubscriptionBlockedError) Error() string {
	return "subscription blocked: " + e.Reason
}
