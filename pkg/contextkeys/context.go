package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

// UserIDContextKey - ключ, по которому access gate кладет ID аккаунта в контекст
const UserIDContextKey = contextKey("userID")

// UserRoleContextKey - ключ для роли аккаунта
const UserRoleContextKey = contextKey("userRole")

// ClaimsContextKey - ключ для полных JWT claims
const ClaimsContextKey = contextKey("claims")
