package models

import "time"

type User struct {
	BaseModel
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Role         UserRole   `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	Status       UserStatus `gorm:"type:varchar(20);default:'active'" json:"status"`
	IsVerified   bool       `gorm:"default:false" json:"is_verified"`
	Name         string     `json:"name"`
	Phone        string     `json:"phone"`
	Address      string     `json:"address"`
	ProfileImage string     `json:"profile_image"`
	RegisteredIP string     `json:"-"`

	// Relations
	Subscriptions []Subscription `gorm:"foreignKey:UserID" json:"-"`
}

// PendingRegistration - неподтвержденная заявка на регистрацию.
// На email одновременно живет либо PendingRegistration, либо User, но не оба.
// Хранится только хеш пароля; plaintext не сохраняется нигде.
type PendingRegistration struct {
	BaseModel
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Name         string    `json:"name"`
	Role         UserRole  `gorm:"type:varchar(20);not null" json:"role"`
	IP           string    `json:"-"`
	Code         string    `gorm:"type:varchar(6);not null" json:"-"`
	ExpiresAt    time.Time `gorm:"not null" json:"expires_at"`
}

// PasswordResetCode - одноразовый код сброса пароля
type PasswordResetCode struct {
	BaseModel
	Email     string    `gorm:"index;not null" json:"email"`
	Code      string    `gorm:"type:varchar(6);not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Used      bool      `gorm:"default:false" json:"used"`
}
