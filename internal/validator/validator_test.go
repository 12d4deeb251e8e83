package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Code     string `json:"code" validate:"required,len=6"`
	UserType string `json:"user_type" validate:"required,user_role"`
}

func TestValidateOK(t *testing.T) {
	v := New()

	err := v.Validate(&sampleRequest{
		Email:    "ivan@gmail.com",
		Code:     "123456",
		UserType: "user",
	})
	assert.NoError(t, err)
}

func TestValidateCollectsFieldErrors(t *testing.T) {
	v := New()

	err := v.Validate(&sampleRequest{
		Email:    "not-an-email",
		Code:     "123",
		UserType: "superadmin",
	})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)

	// Ключи - json-теги полей
	assert.Contains(t, vErr.Errors, "email")
	assert.Contains(t, vErr.Errors, "code")
	assert.Contains(t, vErr.Errors, "user_type")
}

func TestValidateCreditCategoryRule(t *testing.T) {
	v := New()

	type categoryRequest struct {
		Category string `json:"category" validate:"required,credit_category"`
	}

	assert.NoError(t, v.Validate(&categoryRequest{Category: "script"}))
	assert.Error(t, v.Validate(&categoryRequest{Category: "music"}))
}
