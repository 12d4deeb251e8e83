package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"aiforge_backend/database"
	"aiforge_backend/internal/auth"
	"aiforge_backend/internal/config"
	"aiforge_backend/internal/email"
	"aiforge_backend/internal/generation"
	"aiforge_backend/internal/handlers"
	"aiforge_backend/internal/logger"
	"aiforge_backend/internal/middleware"
	"aiforge_backend/internal/models"
	"aiforge_backend/internal/repositories"
	"aiforge_backend/internal/routes"
	"aiforge_backend/internal/services"
	"aiforge_backend/internal/validator"
	"aiforge_backend/internal/workers"
	"aiforge_backend/pkg/apperrors"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)
	apperrors.SetDebug(!cfg.IsProduction())

	logger.Info("Connecting to database...")
	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("AutoMigrate failed", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	serviceContainer := initializeServices(cfg, gormDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	worker := workers.NewSubscriptionWorker(
		serviceContainer.SubscriptionService,
		repositories.NewPasswordResetRepository(gormDB),
		time.Hour,
	)
	worker.Start(ctx)

	ginRouter := SetupRouter(cfg, gormDB, serviceContainer)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB, serviceContainer *services.ServiceContainer) *gin.Engine {
	appHandlers := initializeHandlers(cfg, serviceContainer)

	ginRouter := initializeGinRouter(cfg)

	tokens := auth.NewTokenIssuer(cfg.JWT.Secret, time.Duration(cfg.JWT.TTLHours)*time.Hour)
	limiter := middleware.NewRateLimiter()
	limiter.StartCleanup(10*time.Minute, make(chan struct{}))

	routes.RegisterRoutes(ginRouter, appHandlers, routes.Deps{
		Tokens:   tokens,
		Accounts: repositories.NewUserRepository(gormDB),
		Limiter:  limiter,
		Limits: routes.RateLimits{
			VerifyLimit:  cfg.RateLimit.VerifyLimit,
			VerifyWindow: time.Duration(cfg.RateLimit.VerifyWindowMinutes) * time.Minute,
			ResendLimit:  cfg.RateLimit.ResendLimit,
			ResendWindow: time.Duration(cfg.RateLimit.ResendWindowMinutes) * time.Minute,
		},
	})

	return ginRouter
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB) *services.ServiceContainer {
	emailService := initializeEmailProvider(cfg)

	userRepo := repositories.NewUserRepository(gormDB)
	pendingRepo := repositories.NewPendingRegistrationRepository(gormDB)
	resetRepo := repositories.NewPasswordResetRepository(gormDB)
	planRepo := repositories.NewPlanRepository(gormDB)
	subscriptionRepo := repositories.NewSubscriptionRepository(gormDB)

	tokens := auth.NewTokenIssuer(cfg.JWT.Secret, time.Duration(cfg.JWT.TTLHours)*time.Hour)

	authService := services.NewAuthService(userRepo, pendingRepo, resetRepo, emailService, tokens, services.AuthConfig{
		AllowedEmailDomain:  cfg.Auth.AllowedEmailDomain,
		VerificationCodeTTL: time.Duration(cfg.Auth.VerificationCodeTTL) * time.Minute,
		ResetCodeTTL:        time.Duration(cfg.Auth.ResetCodeTTL) * time.Minute,
	})
	userService := services.NewUserService(userRepo, subscriptionRepo)
	planService := services.NewPlanService(planRepo)
	subscriptionService := services.NewSubscriptionService(subscriptionRepo, planRepo)
	generationService := services.NewGenerationService(subscriptionService, &generation.StubGenerator{})

	return &services.ServiceContainer{
		AuthService:         authService,
		UserService:         userService,
		PlanService:         planService,
		SubscriptionService: subscriptionService,
		GenerationService:   generationService,
		EmailService:        emailService,
	}
}

// initializeEmailProvider поднимает SMTP-провайдер, а при пустом
// SMTP-конфиге откатывается на mock (локальная разработка, тесты)
func initializeEmailProvider(cfg *config.Config) email.Provider {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP is not configured, using mock email provider")
		return &MockEmailProvider{}
	}

	renderer, err := email.NewTemplateManager()
	if err != nil {
		logger.Fatal("Failed to load email templates", "error", err)
	}

	return email.NewSMTPProvider(&email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	}, renderer)
}

func initializeHandlers(cfg *config.Config, serviceContainer *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	cookies := handlers.CookieConfig{
		MaxAge: cfg.JWT.TTLHours * 3600,
		Secure: cfg.IsProduction(),
	}

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, serviceContainer.AuthService, serviceContainer.UserService, cookies),
		UserHandler:         handlers.NewUserHandler(baseHandler, serviceContainer.UserService),
		PlanHandler:         handlers.NewPlanHandler(baseHandler, serviceContainer.PlanService),
		SubscriptionHandler: handlers.NewSubscriptionHandler(baseHandler, serviceContainer.SubscriptionService),
		GenerationHandler:   handlers.NewGenerationHandler(baseHandler, serviceContainer.GenerationService),
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}

// seedFirstAdmin создает первого админа, если его еще нет.
// Пароль берется из конфига и никогда не логируется.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.Auth.AdminEmail
	adminPassword := cfg.Auth.AdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("Admin email or password is not configured. Skipping admin seeding.")
		return nil
	}

	var adminUser models.User
	result := db.Where("email = ?", adminEmail).First(&adminUser)
	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found. Creating first admin...", "email", adminEmail)

	hashedPassword, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Email:        adminEmail,
		PasswordHash: hashedPassword,
		Name:         cfg.Auth.AdminName,
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
		IsVerified:   true,
	}

	if err := db.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("First admin created", "email", adminEmail)
	return nil
}
