package validator

import (
	"aiforge_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует доменные правила.
// user_type в запросах - свободная строка; валидируем против закрытого
// списка, вместо того чтобы молча подставлять значение по умолчанию.
func registerCustomRules(v *validator.Validate) {
	_ = v.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		return models.ValidRole(models.UserRole(fl.Field().String()))
	})

	_ = v.RegisterValidation("credit_category", func(fl validator.FieldLevel) bool {
		return models.ValidCreditCategory(models.CreditCategory(fl.Field().String()))
	})
}
