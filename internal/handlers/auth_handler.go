package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aiforge_backend/internal/services"
	"aiforge_backend/internal/services/dto"
)

// SessionCookieName - имя cookie с сессионным токеном
const SessionCookieName = "token"

// CookieConfig - параметры доставки сессионной cookie
type CookieConfig struct {
	MaxAge int  // секунды, совпадает с TTL токена
	Secure bool // true в production
}

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
	userService services.UserService
	cookies     CookieConfig
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService, userService services.UserService, cookies CookieConfig) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
		userService: userService,
		cookies:     cookies,
	}
}

// setSessionCookie кладет токен в HTTP-only cookie.
// Токен дублируется в теле ответа для bearer-клиентов.
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookieName, token, h.cookies.MaxAge, "/", "", h.cookies.Secure, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", h.cookies.Secure, true)
}

// Register - POST /auth/register: первая фаза регистрации
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.Register(&req, c.ClientIP())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Success(c, http.StatusCreated, "Verification code sent", resp)
}

// VerifyEmail - POST /auth/verify: сверка кода и авто-логин
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.VerifyEmail(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setSessionCookie(c, resp.Token)
	h.OK(c, "Email verified", resp)
}

// ResendCode - POST /auth/resend: перегенерация кода верификации
func (h *AuthHandler) ResendCode(c *gin.Context) {
	var req dto.ResendCodeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.ResendCode(req.Email); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, "Verification code sent", nil)
}

// Login - POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setSessionCookie(c, resp.Token)
	h.OK(c, "Login successful", resp)
}

// Logout - POST /auth/logout: гасит сессионную cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	h.clearSessionCookie(c)
	h.OK(c, "Logged out", nil)
}

// ForgotPassword - POST /auth/forgot-password.
// Ответ не раскрывает, существует ли email.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.ForgotPassword(req.Email); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, "If the email exists, a reset code has been sent", nil)
}

// ResetPassword - POST /auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.ResetPassword(&req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, "Password updated", nil)
}

// GetCurrentUser - GET /auth/get-current-user: профиль + entitlement
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.userService.GetCurrentUser(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, "Current user", resp)
}

// UpdateProfile - PUT /auth/update-user
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.userService.UpdateProfile(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, "Profile updated", resp)
}
