package services

import (
	"strings"
	"time"

	"aiforge_backend/internal/models"
	"aiforge_backend/internal/repositories"
	"aiforge_backend/internal/services/dto"
	"aiforge_backend/pkg/apperrors"
)

// creditTier - потолки кредитов одного тарифного тира.
// Таблица несет только тройку script/voice/image; потолок видео
// снимается с самого плана в момент создания подписки.
type creditTier struct {
	Script int
	Voice  int
	Image  int
}

// Таблица потолков по имени тарифа. Скриптовые кредиты - в символах,
// остальные - в штуках генераций.
var creditTiers = map[string]creditTier{
	"Старт":    {Script: 10000, Voice: 10, Image: 20},
	"Базовый":  {Script: 30000, Voice: 30, Image: 60},
	"Стандарт": {Script: 60000, Voice: 60, Image: 120},
	"Бизнес":   {Script: 150000, Voice: 150, Image: 300},
	"Про":      {Script: 400000, Voice: 400, Image: 800},
}

// lowestTier - фолбэк для тарифа, не найденного в таблице.
// Неизвестное имя трактуется как самый младший тир, а не как ошибка.
var lowestTier = creditTiers["Старт"]

func tierForPlan(planName string) creditTier {
	if tier, ok := creditTiers[strings.TrimSpace(planName)]; ok {
		return tier
	}
	return lowestTier
}

type SubscriptionService interface {
	CreateSubscription(userID uint, req *dto.CreateSubscriptionRequest) (*models.Subscription, error)
	GetActiveSubscription(userID uint) (*models.Subscription, error)
	GetUserSubscriptions(userID uint) ([]models.Subscription, error)
	ListSubscriptions(limit, offset int) ([]models.Subscription, error)
	ConsumeCredit(userID uint, category models.CreditCategory, amount int) (*models.Subscription, error)
	ExpireOverdue() (int64, error)
}

type SubscriptionServiceImpl struct {
	subscriptionRepo repositories.SubscriptionRepository
	planRepo         repositories.PlanRepository
}

func NewSubscriptionService(
	subscriptionRepo repositories.SubscriptionRepository,
	planRepo repositories.PlanRepository,
) SubscriptionService {
	return &SubscriptionServiceImpl{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
	}
}

// CreateSubscription фиксирует подписку после внешней оплаты.
// Потолки кредитов снимаются с таблицы тиров в момент создания и
// дальше живут в самой подписке: последующее редактирование тарифа
// уже выданные подписки не трогает.
func (s *SubscriptionServiceImpl) CreateSubscription(userID uint, req *dto.CreateSubscriptionRequest) (*models.Subscription, error) {
	plan, err := s.planRepo.FindByName(req.PlanName)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPlanNotFound) {
			return nil, apperrors.NewNotFoundError("plan not found")
		}
		return nil, apperrors.InternalError(err)
	}

	endDate, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError("end_date must be RFC3339")
	}
	now := time.Now()
	if !endDate.After(now) {
		return nil, apperrors.NewBadRequestError("end_date must be in the future")
	}

	tier := tierForPlan(plan.Name)

	subscription := &models.Subscription{
		UserID:        userID,
		PlanID:        plan.ID,
		Status:        models.SubscriptionStatusActive,
		StartDate:     now,
		EndDate:       endDate,
		ScriptLimit:   tier.Script,
		VoiceLimit:    tier.Voice,
		ImageLimit:    tier.Image,
		VideoLimit:    plan.AllotmentFor(models.CreditVideo),
		PaymentMethod: req.PaymentMethod,
		TransactionID: req.TransactionID,
	}

	if err := s.subscriptionRepo.Create(subscription); err != nil {
		return nil, apperrors.InternalError(err)
	}

	subscription.Plan = *plan
	return subscription, nil
}

// GetActiveSubscription возвращает живую подписку пользователя
func (s *SubscriptionServiceImpl) GetActiveSubscription(userID uint) (*models.Subscription, error) {
	subscription, err := s.subscriptionRepo.FindActiveByUserID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrSubscriptionNotFound) {
			return nil, apperrors.ErrNoActiveSubscription
		}
		return nil, apperrors.InternalError(err)
	}
	return subscription, nil
}

func (s *SubscriptionServiceImpl) GetUserSubscriptions(userID uint) ([]models.Subscription, error) {
	subscriptions, err := s.subscriptionRepo.FindByUserID(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return subscriptions, nil
}

func (s *SubscriptionServiceImpl) ListSubscriptions(limit, offset int) ([]models.Subscription, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}
	subscriptions, err := s.subscriptionRepo.FindAll(limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return subscriptions, nil
}

// ConsumeCredit атомарно списывает кредиты активной подписки.
// Условный UPDATE used + amount <= limit гарантирует, что счетчик
// никогда не превысит потолок даже при конкурентных списаниях.
func (s *SubscriptionServiceImpl) ConsumeCredit(userID uint, category models.CreditCategory, amount int) (*models.Subscription, error) {
	if !models.ValidCreditCategory(category) {
		return nil, apperrors.NewBadRequestError("unknown credit category")
	}
	if amount <= 0 {
		return nil, apperrors.NewBadRequestError("amount must be positive")
	}

	subscription, err := s.GetActiveSubscription(userID)
	if err != nil {
		return nil, err
	}

	ok, err := s.subscriptionRepo.IncrementUsage(subscription.ID, category, amount)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !ok {
		return nil, apperrors.ErrCreditLimitExceeded
	}

	// Перечитываем ради актуального счетчика в ответе
	return s.subscriptionRepo.FindActiveByUserID(userID)
}

// ExpireOverdue помечает дожившие до end_date подписки как expired
func (s *SubscriptionServiceImpl) ExpireOverdue() (int64, error) {
	return s.subscriptionRepo.MarkExpired()
}

// BuildPlanEntitlement собирает представление entitlement'а клиенту
func BuildPlanEntitlement(subscription *models.Subscription) *dto.PlanEntitlement {
	credits := make(map[models.CreditCategory]dto.CreditUsage, 4)
	for _, category := range []models.CreditCategory{
		models.CreditScript, models.CreditVoice, models.CreditImage, models.CreditVideo,
	} {
		credits[category] = dto.CreditUsage{
			Used:      subscription.UsedFor(category),
			Limit:     subscription.LimitFor(category),
			Remaining: subscription.RemainingFor(category),
		}
	}

	return &dto.PlanEntitlement{
		PlanID:    subscription.PlanID,
		PlanName:  subscription.Plan.Name,
		Price:     subscription.Plan.Price,
		StartDate: subscription.StartDate.Format(time.RFC3339),
		EndDate:   subscription.EndDate.Format(time.RFC3339),
		Credits:   credits,
	}
}
