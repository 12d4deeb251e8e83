package models

type UserStatus string
type UserRole string
type SubscriptionStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
	UserStatusBlocked  UserStatus = "blocked"

	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"

	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusPending   SubscriptionStatus = "pending"
)

// ValidRole проверяет, что роль входит в закрытый список.
// user_type из запроса - свободная строка, все прочие значения отклоняются.
func ValidRole(role UserRole) bool {
	return role == UserRoleAdmin || role == UserRoleUser
}
