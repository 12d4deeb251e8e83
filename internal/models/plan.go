package models

import (
	"gorm.io/datatypes"
)

// Plan - тариф из каталога. Четыре независимых кредитных лимита
// по категориям генерации. Не более одного плана с Popular=true
// во всем каталоге (инвариант проверяется при записи).
type Plan struct {
	BaseModel
	Name  string  `gorm:"uniqueIndex;not null" json:"name"`
	Price float64 `gorm:"not null" json:"price"`

	// Кредитные лимиты по категориям
	ScriptCredits int `gorm:"not null;default:0" json:"script_credits"` // бюджет в символах
	VoiceCredits  int `gorm:"not null;default:0" json:"voice_credits"`
	ImageCredits  int `gorm:"not null;default:0" json:"image_credits"`
	VideoCredits  int `gorm:"not null;default:0" json:"video_credits"`

	// Описательный текст по категориям: {"script": "...", "voice": "...", ...}
	Descriptions datatypes.JSON `gorm:"type:jsonb" json:"descriptions"`

	Popular bool `gorm:"default:false" json:"popular"`
}

// AllotmentFor возвращает лимит плана для категории кредитов
func (p *Plan) AllotmentFor(category CreditCategory) int {
	switch category {
	case CreditScript:
		return p.ScriptCredits
	case CreditVoice:
		return p.VoiceCredits
	case CreditImage:
		return p.ImageCredits
	case CreditVideo:
		return p.VideoCredits
	}
	return 0
}
