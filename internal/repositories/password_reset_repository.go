package repositories

import (
	"errors"
	"time"

	"aiforge_backend/internal/models"

	"gorm.io/gorm"
)

var ErrResetCodeNotFound = errors.New("password reset code not found")

type PasswordResetRepository interface {
	Create(code *models.PasswordResetCode) error
	// FindLatestByEmail возвращает последний неиспользованный код для email
	FindLatestByEmail(email string) (*models.PasswordResetCode, error)
	MarkUsed(id uint) error
	DeleteExpired() (int64, error)
}

type PasswordResetRepositoryImpl struct {
	db *gorm.DB
}

func NewPasswordResetRepository(db *gorm.DB) PasswordResetRepository {
	return &PasswordResetRepositoryImpl{db: db}
}

func (r *PasswordResetRepositoryImpl) Create(code *models.PasswordResetCode) error {
	return r.db.Create(code).Error
}

func (r *PasswordResetRepositoryImpl) FindLatestByEmail(email string) (*models.PasswordResetCode, error) {
	var code models.PasswordResetCode
	err := r.db.Where("email = ? AND used = false", email).
		Order("created_at DESC").
		First(&code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResetCodeNotFound
		}
		return nil, err
	}
	return &code, nil
}

// MarkUsed гасит код - потребляется ровно один раз
func (r *PasswordResetRepositoryImpl) MarkUsed(id uint) error {
	result := r.db.Model(&models.PasswordResetCode{}).Where("id = ? AND used = false", id).Updates(map[string]interface{}{
		"used":       true,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrResetCodeNotFound
	}
	return nil
}

func (r *PasswordResetRepositoryImpl) DeleteExpired() (int64, error) {
	result := r.db.Delete(&models.PasswordResetCode{}, "expires_at < ?", time.Now())
	return result.RowsAffected, result.Error
}
