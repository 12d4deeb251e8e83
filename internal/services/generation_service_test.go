package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aiforge_backend/internal/generation"
	"aiforge_backend/internal/models"
	"aiforge_backend/internal/services/dto"
	"aiforge_backend/pkg/apperrors"
)

func newGenerationFixture(t *testing.T) (GenerationService, *subscriptionFixture) {
	t.Helper()
	subFx := newSubscriptionFixture(t)
	return NewGenerationService(subFx.service, &generation.StubGenerator{}), subFx
}

func TestGenerateChargesScriptByLength(t *testing.T) {
	service, subFx := newGenerationFixture(t)

	_, err := subFx.service.CreateSubscription(1, subscriptionRequest("Старт", "tx-1"))
	require.NoError(t, err)

	prompt := "напиши сценарий для короткого ролика"
	resp, err := service.Generate(context.Background(), 1, models.CreditScript, &dto.GenerateRequest{Prompt: prompt})
	require.NoError(t, err)
	assert.Equal(t, len(prompt), resp.Cost)
	assert.Equal(t, 10000-len(prompt), resp.Remaining)
	assert.NotEmpty(t, resp.Result)
}

func TestGenerateChargesOneCreditForMedia(t *testing.T) {
	service, subFx := newGenerationFixture(t)

	_, err := subFx.service.CreateSubscription(1, subscriptionRequest("Старт", "tx-1"))
	require.NoError(t, err)

	resp, err := service.Generate(context.Background(), 1, models.CreditImage, &dto.GenerateRequest{Prompt: "закат над городом"})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Cost)
	assert.Equal(t, 19, resp.Remaining)
}

func TestGenerateWithoutSubscription(t *testing.T) {
	service, _ := newGenerationFixture(t)

	_, err := service.Generate(context.Background(), 1, models.CreditImage, &dto.GenerateRequest{Prompt: "закат"})
	assert.ErrorIs(t, err, apperrors.ErrNoActiveSubscription)
}

func TestGenerateExhaustedCredits(t *testing.T) {
	service, subFx := newGenerationFixture(t)

	_, err := subFx.service.CreateSubscription(1, subscriptionRequest("Старт", "tx-1"))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err = service.Generate(context.Background(), 1, models.CreditVideo, &dto.GenerateRequest{Prompt: "ролик"})
		require.NoError(t, err)
	}

	_, err = service.Generate(context.Background(), 1, models.CreditVideo, &dto.GenerateRequest{Prompt: "ролик"})
	assert.ErrorIs(t, err, apperrors.ErrCreditLimitExceeded)
}

func TestGenerateUnknownCategory(t *testing.T) {
	service, _ := newGenerationFixture(t)

	_, err := service.Generate(context.Background(), 1, models.CreditCategory("music"), &dto.GenerateRequest{Prompt: "трек"})
	assert.Error(t, err)
}
