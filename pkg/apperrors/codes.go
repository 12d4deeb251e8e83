package apperrors

// ErrorCode - тип для кодов ошибок
type ErrorCode string

// Общие, не-доменные коды ошибок
const (
	// Системные и неизвестные ошибки
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"

	// Общие ошибки бизнес-логики
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeLimitExceeded    ErrorCode = "LIMIT_EXCEEDED"
	CodeRateLimited      ErrorCode = "RATE_LIMITED"
	CodeInvalidOperation ErrorCode = "INVALID_OPERATION"

	// Аутентификация и авторизация (сквозные)
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeMissingCredentials ErrorCode = "MISSING_CREDENTIALS"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeAccountBlocked     ErrorCode = "ACCOUNT_BLOCKED"

	// Верификация email
	CodeNoPendingRecord ErrorCode = "NO_PENDING_RECORD"
	CodeCodeMismatch    ErrorCode = "CODE_MISMATCH"
	CodeCodeExpired     ErrorCode = "CODE_EXPIRED"
)
