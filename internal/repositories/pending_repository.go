package repositories

import (
	"errors"
	"time"

	"aiforge_backend/internal/models"

	"gorm.io/gorm"
)

var ErrPendingNotFound = errors.New("pending registration not found")

type PendingRegistrationRepository interface {
	FindByEmail(email string) (*models.PendingRegistration, error)
	// Replace удаляет старую заявку для email (если есть) и вставляет новую.
	// Last-writer-wins: никакого слияния, повторный signup затирает прежний.
	Replace(pending *models.PendingRegistration) error
	UpdateCode(email, code string, expiresAt time.Time) error
	DeleteByEmail(email string) error
}

type PendingRegistrationRepositoryImpl struct {
	db *gorm.DB
}

func NewPendingRegistrationRepository(db *gorm.DB) PendingRegistrationRepository {
	return &PendingRegistrationRepositoryImpl{db: db}
}

func (r *PendingRegistrationRepositoryImpl) FindByEmail(email string) (*models.PendingRegistration, error) {
	var pending models.PendingRegistration
	err := r.db.First(&pending, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPendingNotFound
		}
		return nil, err
	}
	return &pending, nil
}

func (r *PendingRegistrationRepositoryImpl) Replace(pending *models.PendingRegistration) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.PendingRegistration{}, "email = ?", pending.Email).Error; err != nil {
			return err
		}
		return tx.Create(pending).Error
	})
}

// UpdateCode перезаписывает код и срок действия - старый код
// становится невалидным немедленно
func (r *PendingRegistrationRepositoryImpl) UpdateCode(email, code string, expiresAt time.Time) error {
	result := r.db.Model(&models.PendingRegistration{}).Where("email = ?", email).Updates(map[string]interface{}{
		"code":       code,
		"expires_at": expiresAt,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPendingNotFound
	}
	return nil
}

func (r *PendingRegistrationRepositoryImpl) DeleteByEmail(email string) error {
	result := r.db.Delete(&models.PendingRegistration{}, "email = ?", email)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPendingNotFound
	}
	return nil
}
