package services

import (
	"strings"
	"time"

	"aiforge_backend/internal/auth"
	"aiforge_backend/internal/email"
	"aiforge_backend/internal/logger"
	"aiforge_backend/internal/models"
	"aiforge_backend/internal/repositories"
	"aiforge_backend/internal/services/dto"
	"aiforge_backend/pkg/apperrors"
)

type AuthService interface {
	Register(req *dto.RegisterRequest, ip string) (*dto.RegisterResponse, error)
	ResendCode(emailAddr string) error
	VerifyEmail(req *dto.VerifyEmailRequest) (*dto.LoginResponse, error)
	Login(req *dto.LoginRequest) (*dto.LoginResponse, error)
	ForgotPassword(emailAddr string) error
	ResetPassword(req *dto.ResetPasswordRequest) error
}

// AuthConfig - параметры машины верификации
type AuthConfig struct {
	AllowedEmailDomain  string
	VerificationCodeTTL time.Duration
	ResetCodeTTL        time.Duration
}

type AuthServiceImpl struct {
	userRepo      repositories.UserRepository
	pendingRepo   repositories.PendingRegistrationRepository
	resetRepo     repositories.PasswordResetRepository
	emailProvider email.Provider
	tokens        *auth.TokenIssuer
	cfg           AuthConfig
}

func NewAuthService(
	userRepo repositories.UserRepository,
	pendingRepo repositories.PendingRegistrationRepository,
	resetRepo repositories.PasswordResetRepository,
	emailProvider email.Provider,
	tokens *auth.TokenIssuer,
	cfg AuthConfig,
) AuthService {
	return &AuthServiceImpl{
		userRepo:      userRepo,
		pendingRepo:   pendingRepo,
		resetRepo:     resetRepo,
		emailProvider: emailProvider,
		tokens:        tokens,
		cfg:           cfg,
	}
}

// Register - первая фаза регистрации: создание pending-записи и отправка кода.
// Если pending для email уже есть - затирается целиком (last-writer-wins).
// В ответе только email; пароль назад не эхоится.
func (s *AuthServiceImpl) Register(req *dto.RegisterRequest, ip string) (*dto.RegisterResponse, error) {
	role := models.UserRole(req.UserType)
	if !models.ValidRole(role) {
		return nil, apperrors.ErrInvalidUserRole
	}

	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	if !s.emailDomainAllowed(req.Email) {
		return nil, apperrors.ErrEmailDomainNotAllowed
	}

	// Верифицированный аккаунт на этот email уже существует
	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	} else if !apperrors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	code, err := auth.GenerateVerificationCode()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	pending := &models.PendingRegistration{
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Name:         strings.TrimSpace(req.FirstName + " " + req.LastName),
		Role:         role,
		IP:           ip,
		Code:         code,
		ExpiresAt:    time.Now().Add(s.cfg.VerificationCodeTTL),
	}

	if err := s.pendingRepo.Replace(pending); err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Email best-effort: неудачная отправка не откатывает pending-запись
	s.sendVerificationEmail(pending.Email, code)

	return &dto.RegisterResponse{Email: pending.Email}, nil
}

// ResendCode перегенерирует код для существующей pending-записи.
// Старый код становится невалидным немедленно.
func (s *AuthServiceImpl) ResendCode(emailAddr string) error {
	if _, err := s.pendingRepo.FindByEmail(emailAddr); err != nil {
		if apperrors.Is(err, repositories.ErrPendingNotFound) {
			return apperrors.ErrNoPendingRecord
		}
		return apperrors.InternalError(err)
	}

	code, err := auth.GenerateVerificationCode()
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.pendingRepo.UpdateCode(emailAddr, code, time.Now().Add(s.cfg.VerificationCodeTTL)); err != nil {
		return apperrors.InternalError(err)
	}

	s.sendVerificationEmail(emailAddr, code)
	return nil
}

// VerifyEmail - вторая фаза: сверка кода и промоушен pending -> Account.
// После успеха pending-запись удаляется и сразу выдается сессия (auto-login).
func (s *AuthServiceImpl) VerifyEmail(req *dto.VerifyEmailRequest) (*dto.LoginResponse, error) {
	pending, err := s.pendingRepo.FindByEmail(req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPendingNotFound) {
			return nil, apperrors.ErrNoPendingRecord
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.SecureCompare(pending.Code, req.Code) {
		return nil, apperrors.ErrCodeMismatch
	}

	// Просроченный код: pending-запись остается, пользователь может
	// запросить новый код через resend
	if time.Now().After(pending.ExpiresAt) {
		return nil, apperrors.ErrCodeExpired
	}

	user := &models.User{
		Email:        pending.Email,
		PasswordHash: pending.PasswordHash,
		Name:         pending.Name,
		Role:         pending.Role,
		Status:       models.UserStatusActive,
		IsVerified:   true,
		RegisteredIP: pending.IP,
	}

	if err := s.userRepo.Create(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	// Конкурентный verify того же email просто не найдет pending-запись
	// и сойдется к ErrNoPendingRecord
	if err := s.pendingRepo.DeleteByEmail(pending.Email); err != nil &&
		!apperrors.Is(err, repositories.ErrPendingNotFound) {
		logger.Warn("failed to delete pending registration after promotion", "email", pending.Email, "error", err)
	}

	return s.issueSession(user)
}

// Login - аутентификация по email/паролю
func (s *AuthServiceImpl) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if !models.ValidRole(models.UserRole(req.UserType)) {
		return nil, apperrors.ErrInvalidUserRole
	}

	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.Role != models.UserRole(req.UserType) {
		return nil, apperrors.ErrInvalidCredentials
	}

	// Заблокированный аккаунт отсекается до выдачи токена.
	// Отличимый 403 - осознанный выбор: саппорту нужен внятный сигнал.
	if user.Status == models.UserStatusBlocked {
		return nil, apperrors.ErrAccountBlocked
	}

	return s.issueSession(user)
}

// ForgotPassword создает одноразовый код сброса.
// Существование email не раскрывается: ответ всегда одинаковый.
func (s *AuthServiceImpl) ForgotPassword(emailAddr string) error {
	user, err := s.userRepo.FindByEmail(emailAddr)
	if err != nil {
		return nil
	}

	code, err := auth.GenerateVerificationCode()
	if err != nil {
		return apperrors.InternalError(err)
	}

	resetCode := &models.PasswordResetCode{
		Email:     user.Email,
		Code:      code,
		ExpiresAt: time.Now().Add(s.cfg.ResetCodeTTL),
	}
	if err := s.resetRepo.Create(resetCode); err != nil {
		return apperrors.InternalError(err)
	}

	s.sendPasswordResetEmail(user.Email, code)
	return nil
}

// ResetPassword потребляет код сброса ровно один раз
func (s *AuthServiceImpl) ResetPassword(req *dto.ResetPasswordRequest) error {
	resetCode, err := s.resetRepo.FindLatestByEmail(req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrResetCodeNotFound) {
			return apperrors.ErrResetCodeInvalid
		}
		return apperrors.InternalError(err)
	}

	if !auth.SecureCompare(resetCode.Code, req.Code) {
		return apperrors.ErrResetCodeInvalid
	}
	if time.Now().After(resetCode.ExpiresAt) {
		return apperrors.ErrResetCodeInvalid
	}

	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	// MarkUsed с guard'ом used=false: конкурентный reset тем же кодом
	// получит ErrResetCodeInvalid
	if err := s.resetRepo.MarkUsed(resetCode.ID); err != nil {
		if apperrors.Is(err, repositories.ErrResetCodeNotFound) {
			return apperrors.ErrResetCodeInvalid
		}
		return apperrors.InternalError(err)
	}

	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return apperrors.InternalError(err)
	}

	hashedPassword, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user.PasswordHash = hashedPassword
	if err := s.userRepo.Update(user); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// --- Helpers ---

func (s *AuthServiceImpl) emailDomainAllowed(emailAddr string) bool {
	if s.cfg.AllowedEmailDomain == "" {
		return true
	}
	return strings.HasSuffix(strings.ToLower(emailAddr), "@"+strings.ToLower(s.cfg.AllowedEmailDomain))
}

// issueSession выдает подписанный токен и собирает ответ
func (s *AuthServiceImpl) issueSession(user *models.User) (*dto.LoginResponse, error) {
	token, err := s.tokens.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		Token: token,
		User:  BuildUserResponse(user),
	}, nil
}

// BuildUserResponse строит публичное представление аккаунта
func BuildUserResponse(user *models.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:         user.ID,
		Email:      user.Email,
		Name:       user.Name,
		Role:       user.Role,
		Status:     user.Status,
		IsVerified: user.IsVerified,
		Phone:      user.Phone,
		Address:    user.Address,
	}
}

// sendVerificationEmail отправляет код верификации (в письме только код)
func (s *AuthServiceImpl) sendVerificationEmail(emailAddr, code string) {
	if s.emailProvider == nil {
		return
	}

	go func() {
		if err := s.emailProvider.SendVerification(emailAddr, code); err != nil {
			logger.Warn("failed to send verification email", "email", emailAddr, "error", err)
		}
	}()
}

// sendPasswordResetEmail отправляет код сброса пароля
func (s *AuthServiceImpl) sendPasswordResetEmail(emailAddr, code string) {
	if s.emailProvider == nil {
		return
	}

	go func() {
		if err := s.emailProvider.SendPasswordReset(emailAddr, code); err != nil {
			logger.Warn("failed to send password reset email", "email", emailAddr, "error", err)
		}
	}()
}
