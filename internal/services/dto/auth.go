package dto

import "aiforge_backend/internal/models"

// RegisterRequest - тело POST /auth/register
type RegisterRequest struct {
	UserType  string `json:"user_type" binding:"required" validate:"required,user_role"`
	FirstName string `json:"firstName" validate:"required,max=64"`
	LastName  string `json:"lastName" validate:"required,max=64"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
}

// RegisterResponse намеренно содержит только email - пароль назад не эхоится
type RegisterResponse struct {
	Email string `json:"email"`
}

// VerifyEmailRequest - тело POST /auth/verify
type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6"`
}

// ResendCodeRequest - тело POST /auth/resend
type ResendCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// LoginRequest - тело POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	UserType string `json:"user_type" validate:"required,user_role"`
}

// LoginResponse - сессионный токен + данные аккаунта.
// Токен доставляется и в cookie, и в теле (для bearer-клиентов).
type LoginResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// ForgotPasswordRequest - тело POST /auth/forgot-password
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest - тело POST /auth/reset-password
type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required,len=6"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// UserResponse - публичное представление аккаунта
type UserResponse struct {
	ID         uint              `json:"id"`
	Email      string            `json:"email"`
	Name       string            `json:"name"`
	Role       models.UserRole   `json:"role"`
	Status     models.UserStatus `json:"status"`
	IsVerified bool              `json:"is_verified"`
	Phone      string            `json:"phone,omitempty"`
	Address    string            `json:"address,omitempty"`
}
