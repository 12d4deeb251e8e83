package dto

import "aiforge_backend/internal/models"

// UpdateProfileRequest - PUT /auth/update-user.
// Через этот путь меняются только имя/телефон/адрес.
type UpdateProfileRequest struct {
	Name    string `json:"name" validate:"required,max=128"`
	Phone   string `json:"phone" validate:"max=32"`
	Address string `json:"address" validate:"max=256"`
}

// AdminUpdateUserRequest - PUT /admin/users/:id
type AdminUpdateUserRequest struct {
	Role   *string `json:"role" validate:"omitempty,user_role"`
	Status *string `json:"status" validate:"omitempty,oneof=active inactive blocked"`
}

// CurrentUserResponse - GET /auth/get-current-user: профиль + entitlement.
// Plan == nil означает "сначала выберите план".
type CurrentUserResponse struct {
	User *UserResponse    `json:"user"`
	Plan *PlanEntitlement `json:"plan"`
}

// PlanEntitlement - активный план и остатки кредитов по категориям
type PlanEntitlement struct {
	PlanID    uint    `json:"plan_id"`
	PlanName  string  `json:"plan_name"`
	Price     float64 `json:"price"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`

	Credits map[models.CreditCategory]CreditUsage `json:"credits"`
}

// CreditUsage - потребление одной категории
type CreditUsage struct {
	Used      int `json:"used"`
	Limit     int `json:"limit"`
	Remaining int `json:"remaining"`
}

// UserListResponse - GET /admin/users
type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
