package services

import (
	"context"

	"aiforge_backend/internal/generation"
	"aiforge_backend/internal/models"
	"aiforge_backend/internal/services/dto"
	"aiforge_backend/pkg/apperrors"
)

type GenerationService interface {
	Generate(ctx context.Context, userID uint, category models.CreditCategory, req *dto.GenerateRequest) (*dto.GenerateResponse, error)
}

type GenerationServiceImpl struct {
	subscriptionService SubscriptionService
	generator           generation.Generator
}

func NewGenerationService(subscriptionService SubscriptionService, generator generation.Generator) GenerationService {
	return &GenerationServiceImpl{
		subscriptionService: subscriptionService,
		generator:           generator,
	}
}

// Generate списывает кредиты и вызывает генеративный провайдер.
// Списание идет до вызова провайдера: при нехватке кредитов внешний
// сервис вообще не дергается.
func (s *GenerationServiceImpl) Generate(ctx context.Context, userID uint, category models.CreditCategory, req *dto.GenerateRequest) (*dto.GenerateResponse, error) {
	if !models.ValidCreditCategory(category) {
		return nil, apperrors.NewBadRequestError("unknown generation category")
	}

	cost := generation.EstimateCost(category, req.Prompt)

	subscription, err := s.subscriptionService.ConsumeCredit(userID, category, cost)
	if err != nil {
		return nil, err
	}

	result, err := s.generator.Generate(ctx, category, req.Prompt)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.GenerateResponse{
		Result:    result.Output,
		Cost:      cost,
		Remaining: subscription.RemainingFor(category),
	}, nil
}
