package middleware

import (
	"github.com/gin-gonic/gin"

	"aiforge_backend/internal/auth"
	"aiforge_backend/internal/logger"
	"aiforge_backend/internal/models"
	"aiforge_backend/pkg/apperrors"
	"aiforge_backend/pkg/contextkeys"
)

// SessionCookieName - имя cookie, в которой живет сессионный токен
const SessionCookieName = "token"

// AccountResolver отдает живое состояние аккаунта по ID из токена.
// Роль и статус берутся из базы, а не из claims: смена роли или
// блокировка действуют немедленно, без отзыва токенов.
type AccountResolver interface {
	FindByID(id uint) (*models.User, error)
}

// AuthMiddleware - access gate. Отсутствие cookie - это ошибка клиента
// (400), все причины отклонения самого токена схлопываются в один
// непрозрачный 401.
func AuthMiddleware(tokens *auth.TokenIssuer, accounts AccountResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(SessionCookieName)
		if err != nil || tokenStr == "" {
			apperrors.HandleError(c, apperrors.ErrMissingCredentials)
			c.Abort()
			return
		}

		claims, err := tokens.ParseToken(tokenStr)
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		user, err := accounts.FindByID(claims.UserID)
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		if user.Status == models.UserStatusBlocked {
			logger.CtxWarn(c.Request.Context(), "blocked account attempted access",
				"user_id", user.ID, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ErrAccountBlocked)
			c.Abort()
			return
		}

		c.Set(string(contextkeys.UserIDContextKey), user.ID)
		c.Set(string(contextkeys.UserRoleContextKey), user.Role)
		c.Set(string(contextkeys.ClaimsContextKey), claims)
		c.Next()
	}
}

// RequireRoles пропускает только перечисленные роли.
// Ставится после AuthMiddleware.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool)
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		roleVal, exists := c.Get(string(contextkeys.UserRoleContextKey))
		if !exists {
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			c.Abort()
			return
		}

		role, ok := roleVal.(models.UserRole)
		if !ok {
			roleStr, isString := roleVal.(string)
			if !isString {
				apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
				c.Abort()
				return
			}
			role = models.UserRole(roleStr)
		}

		if !roleSet[role] {
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminOnly - шорткат для админских групп
func AdminOnly() gin.HandlerFunc {
	return RequireRoles(models.UserRoleAdmin)
}
