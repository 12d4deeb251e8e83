package services

import (
	"aiforge_backend/internal/models"
	"aiforge_backend/internal/repositories"
	"aiforge_backend/internal/services/dto"
	"aiforge_backend/pkg/apperrors"
)

type UserService interface {
	GetCurrentUser(userID uint) (*dto.CurrentUserResponse, error)
	UpdateProfile(userID uint, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	ListUsers(page, limit int) (*dto.UserListResponse, error)
	AdminUpdateUser(userID uint, req *dto.AdminUpdateUserRequest) (*dto.UserResponse, error)
	DeleteUser(userID uint) error
}

type UserServiceImpl struct {
	userRepo         repositories.UserRepository
	subscriptionRepo repositories.SubscriptionRepository
}

func NewUserService(userRepo repositories.UserRepository, subscriptionRepo repositories.SubscriptionRepository) UserService {
	return &UserServiceImpl{
		userRepo:         userRepo,
		subscriptionRepo: subscriptionRepo,
	}
}

// GetCurrentUser возвращает аккаунт вместе с актуальным entitlement.
// plan == null - сигнал фронту показать выбор тарифа.
func (s *UserServiceImpl) GetCurrentUser(userID uint) (*dto.CurrentUserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.CurrentUserResponse{User: BuildUserResponse(user)}

	subscription, err := s.subscriptionRepo.FindActiveByUserID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrSubscriptionNotFound) {
			return resp, nil
		}
		return nil, apperrors.InternalError(err)
	}

	resp.Plan = BuildPlanEntitlement(subscription)
	return resp, nil
}

// UpdateProfile меняет только name/phone/address; роль и статус
// через этот путь недостижимы
func (s *UserServiceImpl) UpdateProfile(userID uint, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		return nil, apperrors.InternalError(err)
	}

	user.Name = req.Name
	user.Phone = req.Phone
	user.Address = req.Address

	if err := s.userRepo.UpdateProfile(userID, req.Name, req.Phone, req.Address); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return BuildUserResponse(user), nil
}

func (s *UserServiceImpl) ListUsers(page, limit int) (*dto.UserListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	users, err := s.userRepo.FindAll(limit, (page-1)*limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	total, err := s.userRepo.CountAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, *BuildUserResponse(&users[i]))
	}

	return &dto.UserListResponse{
		Users: items,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

// AdminUpdateUser меняет роль/статус аккаунта. Роль проверяется по
// закрытому перечислению, произвольная строка отклоняется.
func (s *UserServiceImpl) AdminUpdateUser(userID uint, req *dto.AdminUpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Role != nil {
		role := models.UserRole(*req.Role)
		if !models.ValidRole(role) {
			return nil, apperrors.ErrInvalidUserRole
		}
		user.Role = role
	}
	if req.Status != nil {
		user.Status = models.UserStatus(*req.Status)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return BuildUserResponse(user), nil
}

func (s *UserServiceImpl) DeleteUser(userID uint) error {
	if err := s.userRepo.Delete(userID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewNotFoundError("user not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}
