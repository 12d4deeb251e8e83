package repositories

import (
	"errors"
	"fmt"
	"time"

	"aiforge_backend/internal/models"

	"gorm.io/gorm"
)

var ErrSubscriptionNotFound = errors.New("subscription not found")

type SubscriptionRepository interface {
	Create(sub *models.Subscription) error
	// FindActiveByUserID возвращает подписку со status=active и end_date > now,
	// с предзагруженным планом. Отсутствие - ErrSubscriptionNotFound.
	FindActiveByUserID(userID uint) (*models.Subscription, error)
	FindByUserID(userID uint) ([]models.Subscription, error)
	FindAll(limit, offset int) ([]models.Subscription, error)
	// IncrementUsage атомарно увеличивает счетчик категории, не давая
	// ему пересечь потолок. false - потолок не позволил списание.
	IncrementUsage(subID uint, category models.CreditCategory, amount int) (bool, error)
	MarkExpired() (int64, error)
}

type SubscriptionRepositoryImpl struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &SubscriptionRepositoryImpl{db: db}
}

func (r *SubscriptionRepositoryImpl) Create(sub *models.Subscription) error {
	return r.db.Create(sub).Error
}

func (r *SubscriptionRepositoryImpl) FindActiveByUserID(userID uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Preload("Plan").
		Where("user_id = ? AND status = ? AND end_date > ?", userID, models.SubscriptionStatusActive, time.Now()).
		Order("end_date DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepositoryImpl) FindByUserID(userID uint) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.db.Preload("Plan").Where("user_id = ?", userID).Order("created_at DESC").Find(&subs).Error
	return subs, err
}

func (r *SubscriptionRepositoryImpl) FindAll(limit, offset int) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.db.Preload("Plan").Order("created_at DESC").Limit(limit).Offset(offset).Find(&subs).Error
	return subs, err
}

// usageColumns сопоставляет категории паре колонок (счетчик, потолок)
func usageColumns(category models.CreditCategory) (used, limit string, err error) {
	switch category {
	case models.CreditScript:
		return "script_used", "script_limit", nil
	case models.CreditVoice:
		return "voice_used", "voice_limit", nil
	case models.CreditImage:
		return "image_used", "image_limit", nil
	case models.CreditVideo:
		return "video_used", "video_limit", nil
	}
	return "", "", fmt.Errorf("unknown credit category: %s", category)
}

func (r *SubscriptionRepositoryImpl) IncrementUsage(subID uint, category models.CreditCategory, amount int) (bool, error) {
	usedCol, limitCol, err := usageColumns(category)
	if err != nil {
		return false, err
	}

	// Условный UPDATE: счетчик монотонный, граница проверяется в той же
	// команде - конкурентные списания не пробьют потолок.
	result := r.db.Model(&models.Subscription{}).
		Where(fmt.Sprintf("id = ? AND %s + ? <= %s", usedCol, limitCol), subID, amount).
		Updates(map[string]interface{}{
			usedCol:      gorm.Expr(fmt.Sprintf("%s + ?", usedCol), amount),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// MarkExpired помечает истекшие подписки; read-path все равно
// проверяет end_date > now, это только сверка статуса
func (r *SubscriptionRepositoryImpl) MarkExpired() (int64, error) {
	result := r.db.Model(&models.Subscription{}).
		Where("status = ? AND end_date < ?", models.SubscriptionStatusActive, time.Now()).
		Updates(map[string]interface{}{
			"status":     models.SubscriptionStatusExpired,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}
