package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aiforge_backend/internal/models"
	"aiforge_backend/internal/services/dto"
	"aiforge_backend/pkg/apperrors"
)

type userFixture struct {
	service  UserService
	users    *fakeUserRepo
	planRepo *fakePlanRepo
	subRepo  *fakeSubscriptionRepo
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()

	users := newFakeUserRepo()
	planRepo := newFakePlanRepo()
	subRepo := newFakeSubscriptionRepo(planRepo)

	return &userFixture{
		service:  NewUserService(users, subRepo),
		users:    users,
		planRepo: planRepo,
		subRepo:  subRepo,
	}
}

func (fx *userFixture) seedUser(t *testing.T, emailAddr string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        emailAddr,
		PasswordHash: "hash",
		Name:         "Иван Петров",
		Role:         models.UserRoleUser,
		Status:       models.UserStatusActive,
		IsVerified:   true,
	}
	require.NoError(t, fx.users.Create(user))
	return user
}

func TestGetCurrentUserWithoutSubscription(t *testing.T) {
	fx := newUserFixture(t)
	user := fx.seedUser(t, "ivan@gmail.com")

	resp, err := fx.service.GetCurrentUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ivan@gmail.com", resp.User.Email)

	// plan == nil - сигнал "выберите план"
	assert.Nil(t, resp.Plan)
}

func TestGetCurrentUserWithSubscription(t *testing.T) {
	fx := newUserFixture(t)
	user := fx.seedUser(t, "ivan@gmail.com")

	require.NoError(t, fx.planRepo.Create(&models.Plan{Name: "Старт", Price: 990}))
	require.NoError(t, fx.subRepo.Create(&models.Subscription{
		UserID:      user.ID,
		PlanID:      1,
		Status:      models.SubscriptionStatusActive,
		StartDate:   time.Now(),
		EndDate:     time.Now().Add(30 * 24 * time.Hour),
		VoiceLimit:  10,
		VoiceUsed:   4,
		ScriptLimit: 10000,
		ImageLimit:  20,
		VideoLimit:  2,
	}))

	resp, err := fx.service.GetCurrentUser(user.ID)
	require.NoError(t, err)
	require.NotNil(t, resp.Plan)
	assert.Equal(t, "Старт", resp.Plan.PlanName)
	assert.Equal(t, dto.CreditUsage{Used: 4, Limit: 10, Remaining: 6}, resp.Plan.Credits[models.CreditVoice])
}

func TestGetCurrentUserExpiredSubscription(t *testing.T) {
	fx := newUserFixture(t)
	user := fx.seedUser(t, "ivan@gmail.com")

	require.NoError(t, fx.planRepo.Create(&models.Plan{Name: "Старт", Price: 990}))
	require.NoError(t, fx.subRepo.Create(&models.Subscription{
		UserID:    user.ID,
		PlanID:    1,
		Status:    models.SubscriptionStatusActive,
		StartDate: time.Now().Add(-60 * 24 * time.Hour),
		EndDate:   time.Now().Add(-time.Hour),
	}))

	resp, err := fx.service.GetCurrentUser(user.ID)
	require.NoError(t, err)

	// Дожившая до end_date подписка доступа не дает
	assert.Nil(t, resp.Plan)
}

func TestUpdateProfile(t *testing.T) {
	fx := newUserFixture(t)
	user := fx.seedUser(t, "ivan@gmail.com")

	resp, err := fx.service.UpdateProfile(user.ID, &dto.UpdateProfileRequest{
		Name:    "Петр Иванов",
		Phone:   "+77001234567",
		Address: "Алматы",
	})
	require.NoError(t, err)
	assert.Equal(t, "Петр Иванов", resp.Name)

	stored, err := fx.users.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "+77001234567", stored.Phone)
	// Роль и статус через профиль недостижимы
	assert.Equal(t, models.UserRoleUser, stored.Role)
	assert.Equal(t, models.UserStatusActive, stored.Status)
}

func TestAdminUpdateUserClosedRoleEnum(t *testing.T) {
	fx := newUserFixture(t)
	user := fx.seedUser(t, "ivan@gmail.com")

	badRole := "superadmin"
	_, err := fx.service.AdminUpdateUser(user.ID, &dto.AdminUpdateUserRequest{Role: &badRole})
	assert.ErrorIs(t, err, apperrors.ErrInvalidUserRole)

	goodRole := "admin"
	resp, err := fx.service.AdminUpdateUser(user.ID, &dto.AdminUpdateUserRequest{Role: &goodRole})
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleAdmin, resp.Role)
}

func TestListUsersPagination(t *testing.T) {
	fx := newUserFixture(t)
	fx.seedUser(t, "a@gmail.com")
	fx.seedUser(t, "b@gmail.com")
	fx.seedUser(t, "c@gmail.com")

	resp, err := fx.service.ListUsers(1, 2)
	require.NoError(t, err)
	assert.Len(t, resp.Users, 2)
	assert.Equal(t, int64(3), resp.Total)

	resp, err = fx.service.ListUsers(2, 2)
	require.NoError(t, err)
	assert.Len(t, resp.Users, 1)
}
