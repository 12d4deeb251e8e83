package repositories

import (
	"errors"

	"aiforge_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrPlanNotFound      = errors.New("plan not found")
	ErrPopularPlanExists = errors.New("another plan is already marked as popular")
	ErrPlanReferenced    = errors.New("plan is referenced by subscriptions")
)

type PlanRepository interface {
	FindByID(id uint) (*models.Plan, error)
	FindByName(name string) (*models.Plan, error)
	FindAll() ([]models.Plan, error)
	// Create вставляет план; проверка "не более одного popular"
	// и вставка идут в одной транзакции, чтобы закрыть гонку
	// read-then-write между конкурентными запросами.
	Create(plan *models.Plan) error
	// Update сохраняет план; popular-проверка исключает сам обновляемый план
	Update(plan *models.Plan) error
	Delete(id uint) error
}

type PlanRepositoryImpl struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &PlanRepositoryImpl{db: db}
}

func (r *PlanRepositoryImpl) FindByID(id uint) (*models.Plan, error) {
	var plan models.Plan
	err := r.db.First(&plan, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepositoryImpl) FindByName(name string) (*models.Plan, error) {
	var plan models.Plan
	err := r.db.First(&plan, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepositoryImpl) FindAll() ([]models.Plan, error) {
	var plans []models.Plan
	err := r.db.Order("price ASC").Find(&plans).Error
	return plans, err
}

func (r *PlanRepositoryImpl) Create(plan *models.Plan) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if plan.Popular {
			var count int64
			if err := tx.Model(&models.Plan{}).Where("popular = true").Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrPopularPlanExists
			}
		}
		return tx.Create(plan).Error
	})
}

func (r *PlanRepositoryImpl) Update(plan *models.Plan) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if plan.Popular {
			var count int64
			if err := tx.Model(&models.Plan{}).
				Where("popular = true AND id <> ?", plan.ID).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrPopularPlanExists
			}
		}

		result := tx.Model(plan).Updates(map[string]interface{}{
			"name":           plan.Name,
			"price":          plan.Price,
			"script_credits": plan.ScriptCredits,
			"voice_credits":  plan.VoiceCredits,
			"image_credits":  plan.ImageCredits,
			"video_credits":  plan.VideoCredits,
			"descriptions":   plan.Descriptions,
			"popular":        plan.Popular,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPlanNotFound
		}
		return nil
	})
}

func (r *PlanRepositoryImpl) Delete(id uint) error {
	// FK на подписках стоит RESTRICT, но проверяем заранее,
	// чтобы вернуть понятную доменную ошибку вместо ошибки драйвера
	var refs int64
	if err := r.db.Model(&models.Subscription{}).Where("plan_id = ?", id).Count(&refs).Error; err != nil {
		return err
	}
	if refs > 0 {
		return ErrPlanReferenced
	}

	result := r.db.Delete(&models.Plan{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPlanNotFound
	}
	return nil
}
