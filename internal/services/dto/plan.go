package dto

// CreatePlanRequest - POST /plan/create
type CreatePlanRequest struct {
	Name          string            `json:"name" validate:"required,max=64"`
	Price         float64           `json:"price" validate:"gte=0"`
	ScriptCredits int               `json:"script_credits" validate:"gte=0"`
	VoiceCredits  int               `json:"voice_credits" validate:"gte=0"`
	ImageCredits  int               `json:"image_credits" validate:"gte=0"`
	VideoCredits  int               `json:"video_credits" validate:"gte=0"`
	Descriptions  map[string]string `json:"descriptions"`
	Popular       bool              `json:"popular"`
}

// UpdatePlanRequest - PUT /plan/update/:id.
// Coalesce-семантика: nil-поля сохраняют прежние значения.
type UpdatePlanRequest struct {
	Name          *string           `json:"name" validate:"omitempty,max=64"`
	Price         *float64          `json:"price" validate:"omitempty,gte=0"`
	ScriptCredits *int              `json:"script_credits" validate:"omitempty,gte=0"`
	VoiceCredits  *int              `json:"voice_credits" validate:"omitempty,gte=0"`
	ImageCredits  *int              `json:"image_credits" validate:"omitempty,gte=0"`
	VideoCredits  *int              `json:"video_credits" validate:"omitempty,gte=0"`
	Descriptions  map[string]string `json:"descriptions"`
	Popular       *bool             `json:"popular"`
}
