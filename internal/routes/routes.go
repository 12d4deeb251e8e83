package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"aiforge_backend/internal/auth"
	"aiforge_backend/internal/handlers"
	"aiforge_backend/internal/middleware"
	"aiforge_backend/internal/models"
)

// RateLimits - бюджеты перебора кодов на IP
type RateLimits struct {
	VerifyLimit  int
	VerifyWindow time.Duration
	ResendLimit  int
	ResendWindow time.Duration
}

// Deps - зависимости, нужные маршрутам помимо хэндлеров
type Deps struct {
	Tokens   *auth.TokenIssuer
	Accounts middleware.AccountResolver
	Limiter  *middleware.RateLimiter
	Limits   RateLimits
}

// RegisterRoutes регистрирует все HTTP-маршруты API.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers, deps Deps) {
	authGate := middleware.AuthMiddleware(deps.Tokens, deps.Accounts)
	adminGate := middleware.AdminOnly()

	api := ginRouter.Group("/api/v1")

	// Публичная часть auth: до выдачи сессии
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", appHandlers.AuthHandler.Register)
		authGroup.POST("/verify",
			middleware.RateLimit(deps.Limiter, "verify", deps.Limits.VerifyLimit, deps.Limits.VerifyWindow),
			appHandlers.AuthHandler.VerifyEmail)
		authGroup.POST("/resend",
			middleware.RateLimit(deps.Limiter, "resend", deps.Limits.ResendLimit, deps.Limits.ResendWindow),
			appHandlers.AuthHandler.ResendCode)
		authGroup.POST("/login", appHandlers.AuthHandler.Login)
		authGroup.POST("/logout", appHandlers.AuthHandler.Logout)
		authGroup.POST("/forgot-password", appHandlers.AuthHandler.ForgotPassword)
		authGroup.POST("/reset-password", appHandlers.AuthHandler.ResetPassword)

		// Защищенная часть auth: профиль текущего аккаунта
		authGroup.GET("/get-current-user", authGate, appHandlers.AuthHandler.GetCurrentUser)
		authGroup.PUT("/update-user", authGate, appHandlers.AuthHandler.UpdateProfile)
	}

	// Каталог тарифов: чтение публично, мутации только админу
	planGroup := api.Group("/plan")
	{
		planGroup.GET("/all", appHandlers.PlanHandler.GetAllPlans)
		planGroup.GET("/:id", appHandlers.PlanHandler.GetPlan)

		planGroup.POST("/create", authGate, adminGate, appHandlers.PlanHandler.CreatePlan)
		planGroup.PUT("/update/:id", authGate, adminGate, appHandlers.PlanHandler.UpdatePlan)
		planGroup.DELETE("/delete/:id", authGate, adminGate, appHandlers.PlanHandler.DeletePlan)
	}

	// Подписки: только под сессией; полный список - только админу
	subscriptionGroup := api.Group("/subscription", authGate)
	{
		subscriptionGroup.POST("/create", appHandlers.SubscriptionHandler.CreateSubscription)
		subscriptionGroup.GET("/", adminGate, appHandlers.SubscriptionHandler.ListSubscriptions)
		subscriptionGroup.GET("/my", appHandlers.SubscriptionHandler.GetMySubscription)
		subscriptionGroup.GET("/history", appHandlers.SubscriptionHandler.GetMySubscriptionHistory)
	}

	// Генерация: сессия + активная подписка (проверяется в сервисе)
	generateGroup := api.Group("/generate", authGate,
		middleware.RequireRoles(models.UserRoleUser, models.UserRoleAdmin))
	{
		generateGroup.POST("/:category", appHandlers.GenerationHandler.Generate)
	}

	// Админка
	adminGroup := api.Group("/admin", authGate, adminGate)
	{
		adminGroup.GET("/users", appHandlers.UserHandler.ListUsers)
		adminGroup.PUT("/users/:id", appHandlers.UserHandler.UpdateUser)
		adminGroup.DELETE("/users/:id", appHandlers.UserHandler.DeleteUser)
	}
}
