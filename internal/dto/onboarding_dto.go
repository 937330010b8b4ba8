package dto

type RecordEventRequest struct {
	Event string `json:"event" validate:"required,oneof=view_stock view_report"`
}

type OnboardingSteps struct {
	AddProduct  bool `json:"add_product"`
	UpdateStock bool `json:"update_stock"`
	SellProduct bool `json:"sell_product"`
	ViewReport  bool `json:"view_report"`
}

type OnboardingStatusResponse struct {
	Steps    OnboardingSteps `json:"steps"`
	Progress int             `json:"progress"` // 0..100
}
