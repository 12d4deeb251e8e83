package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aiforge_backend/internal/services/dto"
	"aiforge_backend/pkg/apperrors"
)

func newPlanFixture() (PlanService, *fakePlanRepo) {
	planRepo := newFakePlanRepo()
	return NewPlanService(planRepo), planRepo
}

func createPlanRequest(name string, price float64, popular bool) *dto.CreatePlanRequest {
	return &dto.CreatePlanRequest{
		Name:          name,
		Price:         price,
		ScriptCredits: 10000,
		VoiceCredits:  10,
		ImageCredits:  20,
		VideoCredits:  2,
		Descriptions:  map[string]string{"script": "до 10000 символов"},
		Popular:       popular,
	}
}

func TestCreatePlan(t *testing.T) {
	service, _ := newPlanFixture()

	plan, err := service.CreatePlan(createPlanRequest("Старт", 990, false))
	require.NoError(t, err)
	assert.NotZero(t, plan.ID)
	assert.Equal(t, "Старт", plan.Name)
	assert.Equal(t, 10000, plan.ScriptCredits)
	assert.NotEmpty(t, plan.Descriptions)
}

func TestCreateSecondPopularPlanRejected(t *testing.T) {
	service, _ := newPlanFixture()

	_, err := service.CreatePlan(createPlanRequest("Старт", 990, true))
	require.NoError(t, err)

	_, err = service.CreatePlan(createPlanRequest("Про", 4990, true))
	assert.ErrorIs(t, err, apperrors.ErrPopularPlanExists)
}

func TestUpdatePlanPopularExclusivity(t *testing.T) {
	service, _ := newPlanFixture()

	_, err := service.CreatePlan(createPlanRequest("Старт", 990, true))
	require.NoError(t, err)
	second, err := service.CreatePlan(createPlanRequest("Про", 4990, false))
	require.NoError(t, err)

	popular := true
	_, err = service.UpdatePlan(second.ID, &dto.UpdatePlanRequest{Popular: &popular})
	assert.ErrorIs(t, err, apperrors.ErrPopularPlanExists)

	// Повторное сохранение уже популярного плана проходит:
	// план не конфликтует сам с собой
	first, err := service.GetAllPlans()
	require.NoError(t, err)
	_, err = service.UpdatePlan(first[0].ID, &dto.UpdatePlanRequest{Popular: &popular})
	assert.NoError(t, err)
}

func TestUpdatePlanCoalesce(t *testing.T) {
	service, _ := newPlanFixture()

	plan, err := service.CreatePlan(createPlanRequest("Старт", 990, false))
	require.NoError(t, err)

	newPrice := 1290.0
	updated, err := service.UpdatePlan(plan.ID, &dto.UpdatePlanRequest{Price: &newPrice})
	require.NoError(t, err)

	// Непереданные поля не тронуты
	assert.Equal(t, 1290.0, updated.Price)
	assert.Equal(t, "Старт", updated.Name)
	assert.Equal(t, 10000, updated.ScriptCredits)
	assert.False(t, updated.Popular)
}

func TestUpdateMissingPlan(t *testing.T) {
	service, _ := newPlanFixture()

	name := "Новый"
	_, err := service.UpdatePlan(999, &dto.UpdatePlanRequest{Name: &name})
	assert.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestDeleteReferencedPlanRejected(t *testing.T) {
	service, planRepo := newPlanFixture()

	plan, err := service.CreatePlan(createPlanRequest("Старт", 990, false))
	require.NoError(t, err)

	planRepo.referenced[plan.ID] = true

	err = service.DeletePlan(plan.ID)
	assert.ErrorIs(t, err, apperrors.ErrPlanInUse)

	// План на месте
	_, err = service.GetPlanByID(plan.ID)
	assert.NoError(t, err)
}

func TestGetAllPlansSortedByPrice(t *testing.T) {
	service, _ := newPlanFixture()

	_, err := service.CreatePlan(createPlanRequest("Про", 4990, false))
	require.NoError(t, err)
	_, err = service.CreatePlan(createPlanRequest("Старт", 990, false))
	require.NoError(t, err)

	plans, err := service.GetAllPlans()
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "Старт", plans[0].Name)
	assert.Equal(t, "Про", plans[1].Name)
}
