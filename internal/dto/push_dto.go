package dto

// PushSubscribeRequest mirrors the browser PushSubscription.toJSON() shape.
type PushSubscribeRequest struct {
	Endpoint string `json:"endpoint" validate:"required,url"`
	Keys     struct {
		P256dh string `json:"p256dh" validate:"required"`
		Auth   string `json:"auth"   validate:"required"`
	} `json:"keys"`
}

type VAPIDKeyResponse struct {
	PublicKey string `json:"public_key"`
}
