package dto

// CreateSubscriptionRequest - POST /subscription/create.
// Платеж уже авторизован снаружи; сюда приходит только его ссылка.
type CreateSubscriptionRequest struct {
	PlanName      string  `json:"plan_name" validate:"required"`
	Price         float64 `json:"price" validate:"gte=0"`
	EndDate       string  `json:"end_date" validate:"required"` // RFC3339
	PaymentMethod string  `json:"payment_method" validate:"required"`
	TransactionID string  `json:"transaction_id" validate:"required"`
}

// GenerateRequest - POST /generate/:category
type GenerateRequest struct {
	Prompt string `json:"prompt" validate:"required,max=10000"`
}

// GenerateResponse - результат генерации + списанная стоимость
type GenerateResponse struct {
	Result    string `json:"result"`
	Cost      int    `json:"cost"`
	Remaining int    `json:"remaining"`
}
