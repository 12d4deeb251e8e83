package services

import (
	"aiforge_backend/internal/email"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService         AuthService
	UserService         UserService
	PlanService         PlanService
	SubscriptionService SubscriptionService
	GenerationService   GenerationService
	EmailService        email.Provider
}
