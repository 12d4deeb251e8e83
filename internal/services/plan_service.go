package services

import (
	"encoding/json"

	"gorm.io/datatypes"

	"aiforge_backend/internal/models"
	"aiforge_backend/internal/repositories"
	"aiforge_backend/internal/services/dto"
	"aiforge_backend/pkg/apperrors"
)

type PlanService interface {
	GetAllPlans() ([]models.Plan, error)
	GetPlanByID(id uint) (*models.Plan, error)
	CreatePlan(req *dto.CreatePlanRequest) (*models.Plan, error)
	UpdatePlan(id uint, req *dto.UpdatePlanRequest) (*models.Plan, error)
	DeletePlan(id uint) error
}

type PlanServiceImpl struct {
	planRepo repositories.PlanRepository
}

func NewPlanService(planRepo repositories.PlanRepository) PlanService {
	return &PlanServiceImpl{planRepo: planRepo}
}

// GetAllPlans - публичный каталог, отсортирован по цене
func (s *PlanServiceImpl) GetAllPlans() ([]models.Plan, error) {
	plans, err := s.planRepo.FindAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return plans, nil
}

func (s *PlanServiceImpl) GetPlanByID(id uint) (*models.Plan, error) {
	plan, err := s.planRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPlanNotFound) {
			return nil, apperrors.NewNotFoundError("plan not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return plan, nil
}

// CreatePlan создает тариф. Попытка второго popular-плана отклоняется
// внутри транзакции репозитория.
func (s *PlanServiceImpl) CreatePlan(req *dto.CreatePlanRequest) (*models.Plan, error) {
	descriptions, err := marshalDescriptions(req.Descriptions)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	plan := &models.Plan{
		Name:          req.Name,
		Price:         req.Price,
		ScriptCredits: req.ScriptCredits,
		VoiceCredits:  req.VoiceCredits,
		ImageCredits:  req.ImageCredits,
		VideoCredits:  req.VideoCredits,
		Descriptions:  descriptions,
		Popular:       req.Popular,
	}

	if err := s.planRepo.Create(plan); err != nil {
		if apperrors.Is(err, repositories.ErrPopularPlanExists) {
			return nil, apperrors.ErrPopularPlanExists
		}
		return nil, apperrors.InternalError(err)
	}
	return plan, nil
}

// UpdatePlan - частичное обновление: nil-поля не трогаются
func (s *PlanServiceImpl) UpdatePlan(id uint, req *dto.UpdatePlanRequest) (*models.Plan, error) {
	plan, err := s.planRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPlanNotFound) {
			return nil, apperrors.NewNotFoundError("plan not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Name != nil {
		plan.Name = *req.Name
	}
	if req.Price != nil {
		plan.Price = *req.Price
	}
	if req.ScriptCredits != nil {
		plan.ScriptCredits = *req.ScriptCredits
	}
	if req.VoiceCredits != nil {
		plan.VoiceCredits = *req.VoiceCredits
	}
	if req.ImageCredits != nil {
		plan.ImageCredits = *req.ImageCredits
	}
	if req.VideoCredits != nil {
		plan.VideoCredits = *req.VideoCredits
	}
	if req.Descriptions != nil {
		descriptions, err := marshalDescriptions(req.Descriptions)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		plan.Descriptions = descriptions
	}
	if req.Popular != nil {
		plan.Popular = *req.Popular
	}

	if err := s.planRepo.Update(plan); err != nil {
		if apperrors.Is(err, repositories.ErrPopularPlanExists) {
			return nil, apperrors.ErrPopularPlanExists
		}
		return nil, apperrors.InternalError(err)
	}
	return plan, nil
}

// DeletePlan отклоняет удаление тарифа, на который ссылаются подписки
func (s *PlanServiceImpl) DeletePlan(id uint) error {
	if err := s.planRepo.Delete(id); err != nil {
		switch {
		case apperrors.Is(err, repositories.ErrPlanNotFound):
			return apperrors.NewNotFoundError("plan not found")
		case apperrors.Is(err, repositories.ErrPlanReferenced):
			return apperrors.ErrPlanInUse
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func marshalDescriptions(descriptions map[string]string) (datatypes.JSON, error) {
	if descriptions == nil {
		return nil, nil
	}
	raw, err := json.Marshal(descriptions)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
