package models

import "time"

// CreditCategory - категория метрируемого ресурса
type CreditCategory string

const (
	CreditScript CreditCategory = "script"
	CreditVoice  CreditCategory = "voice"
	CreditImage  CreditCategory = "image"
	CreditVideo  CreditCategory = "video"
)

// ValidCreditCategory проверяет категорию из запроса
func ValidCreditCategory(c CreditCategory) bool {
	switch c {
	case CreditScript, CreditVoice, CreditImage, CreditVideo:
		return true
	}
	return false
}

// Subscription - подписка пользователя на план.
// Счетчики потребления монотонно растут и ограничены сверху
// потолками, зафиксированными при создании подписки.
// "Есть доступ" <=> status=active И end_date > now.
type Subscription struct {
	BaseModel
	UserID uint `gorm:"not null;index" json:"user_id"`
	PlanID uint `gorm:"not null;index" json:"plan_id"`

	Status    SubscriptionStatus `gorm:"type:varchar(20);default:'active'" json:"status"`
	StartDate time.Time          `gorm:"not null" json:"start_date"`
	EndDate   time.Time          `gorm:"not null" json:"end_date"`

	// Счетчики потребления
	ScriptUsed int `gorm:"not null;default:0" json:"script_used"`
	VoiceUsed  int `gorm:"not null;default:0" json:"voice_used"`
	ImageUsed  int `gorm:"not null;default:0" json:"image_used"`
	VideoUsed  int `gorm:"not null;default:0" json:"video_used"`

	// Потолки, зафиксированные при создании (из таблицы тиров)
	ScriptLimit int `gorm:"not null;default:0" json:"script_limit"`
	VoiceLimit  int `gorm:"not null;default:0" json:"voice_limit"`
	ImageLimit  int `gorm:"not null;default:0" json:"image_limit"`
	VideoLimit  int `gorm:"not null;default:0" json:"video_limit"`

	// Платежная ссылка (сам платеж уже авторизован снаружи)
	PaymentMethod string `json:"payment_method"`
	TransactionID string `gorm:"uniqueIndex" json:"transaction_id"`

	// Relations. RESTRICT: план с живыми подписками удалить нельзя.
	Plan Plan `gorm:"foreignKey:PlanID;constraint:OnDelete:RESTRICT" json:"plan"`
}

// IsActive сообщает, дает ли подписка доступ прямо сейчас
func (s *Subscription) IsActive(now time.Time) bool {
	return s.Status == SubscriptionStatusActive && s.EndDate.After(now)
}

// UsedFor возвращает текущий счетчик категории
func (s *Subscription) UsedFor(category CreditCategory) int {
	switch category {
	case CreditScript:
		return s.ScriptUsed
	case CreditVoice:
		return s.VoiceUsed
	case CreditImage:
		return s.ImageUsed
	case CreditVideo:
		return s.VideoUsed
	}
	return 0
}

// LimitFor возвращает потолок категории
func (s *Subscription) LimitFor(category CreditCategory) int {
	switch category {
	case CreditScript:
		return s.ScriptLimit
	case CreditVoice:
		return s.VoiceLimit
	case CreditImage:
		return s.ImageLimit
	case CreditVideo:
		return s.VideoLimit
	}
	return 0
}

// RemainingFor возвращает остаток кредитов категории
func (s *Subscription) RemainingFor(category CreditCategory) int {
	remaining := s.LimitFor(category) - s.UsedFor(category)
	if remaining < 0 {
		return 0
	}
	return remaining
}
