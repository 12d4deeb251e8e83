package apperrors

import (
	"net/http"
)

/*
Этот файл содержит фабрики и предопределенные переменные
для ошибок бизнес-логики аккаунтов и подписок.
*/

// =========================================================================
// Фабричные функции (оборачивают ошибки нижних слоев)
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404)
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// =========================================================================
// Аутентификация и доступ
// =========================================================================

// ErrInvalidCredentials - неверный email или пароль (400)
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusBadRequest,
)

// ErrMissingCredentials - в запросе нет session cookie (400)
var ErrMissingCredentials = New(
	CodeMissingCredentials,
	"auth",
	"You are not logged in",
	http.StatusBadRequest,
)

// ErrUnauthorized - единая непрозрачная ошибка для битых/просроченных/осиротевших токенов.
// Клиенту не раскрывается, что именно не так с токеном.
var ErrUnauthorized = New(
	CodeUnauthorized,
	"auth",
	"Unauthorized",
	http.StatusUnauthorized,
)

// ErrInsufficientPermissions - не-админ пытается выполнить админ-действие (403)
var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// ErrAccountBlocked - логин в заблокированный аккаунт.
// Осознанно отличается от ErrInvalidCredentials: саппорту нужен внятный сигнал.
var ErrAccountBlocked = New(
	CodeAccountBlocked,
	"auth",
	"Your account has been blocked, please contact support",
	http.StatusForbidden,
)

// ErrInvalidUserRole - user_type не входит в закрытый список {admin, user}
var ErrInvalidUserRole = New(
	CodeValidationFailed,
	"validation",
	"Invalid user role",
	http.StatusBadRequest,
)

// ErrWeakPassword - пароль не проходит минимальные требования
var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password must be at least 8 characters long",
	http.StatusBadRequest,
)

// ErrEmailDomainNotAllowed - email вне разрешенного домена провайдера
var ErrEmailDomainNotAllowed = New(
	CodeValidationFailed,
	"validation",
	"Email domain is not supported",
	http.StatusBadRequest,
)

// ErrEmailAlreadyExists - на email уже существует верифицированный аккаунт
var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"This email already exists and is verified",
	http.StatusBadRequest,
)

// =========================================================================
// Верификация email
// =========================================================================

// ErrNoPendingRecord - для email нет ожидающей регистрации
var ErrNoPendingRecord = New(
	CodeNoPendingRecord,
	"verification",
	"No pending registration found for this email, please register first",
	http.StatusBadRequest,
)

// ErrCodeMismatch - присланный код не совпал
var ErrCodeMismatch = New(
	CodeCodeMismatch,
	"verification",
	"Invalid verification code",
	http.StatusBadRequest,
)

// ErrCodeExpired - код корректный, но просрочен
var ErrCodeExpired = New(
	CodeCodeExpired,
	"verification",
	"Verification code has expired, please request a new one",
	http.StatusBadRequest,
)

// ErrResetCodeInvalid - код сброса пароля не найден, использован или просрочен
var ErrResetCodeInvalid = New(
	CodeCodeMismatch,
	"verification",
	"Invalid or expired reset code",
	http.StatusBadRequest,
)

// =========================================================================
// Подписки и кредиты
// =========================================================================

// ErrPopularPlanExists - попытка пометить второй план как popular
var ErrPopularPlanExists = New(
	CodeConflict,
	"plan",
	"Another plan is already marked as popular",
	http.StatusBadRequest,
)

// ErrPlanInUse - план нельзя удалить, на него ссылаются подписки
var ErrPlanInUse = New(
	CodeConflict,
	"plan",
	"Plan is referenced by existing subscriptions and cannot be deleted",
	http.StatusConflict,
)

// ErrNoActiveSubscription - у аккаунта нет активной подписки
var ErrNoActiveSubscription = New(
	CodeForbidden,
	"subscription",
	"No active subscription, please choose a plan first",
	http.StatusForbidden,
)

// ErrCreditLimitExceeded - запрошенное потребление выходит за потолок категории
var ErrCreditLimitExceeded = New(
	CodeLimitExceeded,
	"subscription",
	"Credit limit for this category has been reached",
	http.StatusForbidden,
)

// ErrRateLimited - сработал rate limit; message уточняется на месте
func ErrRateLimited(message string) *AppError {
	return New(CodeRateLimited, "ratelimit", message, http.StatusTooManyRequests)
}
