package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aiforge_backend/internal/auth"
	"aiforge_backend/internal/models"
)

type staticAccounts map[uint]*models.User

func (a staticAccounts) FindByID(id uint) (*models.User, error) {
	if u, ok := a[id]; ok {
		return u, nil
	}
	return nil, assert.AnError
}

func gateRouter(tokens *auth.TokenIssuer, accounts AccountResolver, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	chain := append([]gin.HandlerFunc{AuthMiddleware(tokens, accounts)}, extra...)
	chain = append(chain, func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/protected", chain...)
	return router
}

func sendWithCookie(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/protected", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddlewareMissingCookie(t *testing.T) {
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	router := gateRouter(tokens, staticAccounts{})

	rec := sendWithCookie(router, "")
	// Отсутствие cookie - ошибка клиента, не провал аутентификации
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	router := gateRouter(tokens, staticAccounts{})

	rec := sendWithCookie(router, "garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareForgedToken(t *testing.T) {
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	forged := auth.NewTokenIssuer("other-secret", time.Hour)
	accounts := staticAccounts{1: {BaseModel: models.BaseModel{ID: 1}, Role: models.UserRoleUser, Status: models.UserStatusActive}}
	router := gateRouter(tokens, accounts)

	token, err := forged.GenerateToken(1, "user")
	require.NoError(t, err)

	rec := sendWithCookie(router, token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareDeletedAccount(t *testing.T) {
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	router := gateRouter(tokens, staticAccounts{})

	token, err := tokens.GenerateToken(42, "user")
	require.NoError(t, err)

	// Токен валиден, но аккаунта больше нет
	rec := sendWithCookie(router, token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareBlockedAccount(t *testing.T) {
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	accounts := staticAccounts{1: {BaseModel: models.BaseModel{ID: 1}, Role: models.UserRoleUser, Status: models.UserStatusBlocked}}
	router := gateRouter(tokens, accounts)

	token, err := tokens.GenerateToken(1, "user")
	require.NoError(t, err)

	// Блокировка действует немедленно, без отзыва токена
	rec := sendWithCookie(router, token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthMiddlewarePassesValidSession(t *testing.T) {
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	accounts := staticAccounts{1: {BaseModel: models.BaseModel{ID: 1}, Role: models.UserRoleUser, Status: models.UserStatusActive}}
	router := gateRouter(tokens, accounts)

	token, err := tokens.GenerateToken(1, "user")
	require.NoError(t, err)

	rec := sendWithCookie(router, token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRolesDeniesNonAdmin(t *testing.T) {
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	accounts := staticAccounts{1: {BaseModel: models.BaseModel{ID: 1}, Role: models.UserRoleUser, Status: models.UserStatusActive}}
	router := gateRouter(tokens, accounts, AdminOnly())

	token, err := tokens.GenerateToken(1, "user")
	require.NoError(t, err)

	rec := sendWithCookie(router, token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRolesUsesLiveRole(t *testing.T) {
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	// В базе роль уже admin, в токене все еще user:
	// gate проверяет живое состояние
	accounts := staticAccounts{1: {BaseModel: models.BaseModel{ID: 1}, Role: models.UserRoleAdmin, Status: models.UserStatusActive}}
	router := gateRouter(tokens, accounts, AdminOnly())

	token, err := tokens.GenerateToken(1, "user")
	require.NoError(t, err)

	rec := sendWithCookie(router, token)
	assert.Equal(t, http.StatusOK, rec.Code)
}
