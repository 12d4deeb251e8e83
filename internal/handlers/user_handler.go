package handlers

import (
	"github.com/gin-gonic/gin"

	"aiforge_backend/internal/services"
	"aiforge_backend/internal/services/dto"
)

// UserHandler - админский CRUD по аккаунтам
type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

// ListUsers - GET /admin/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	resp, err := h.userService.ListUsers(page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, "Users", resp)
}

// UpdateUser - PUT /admin/users/:id: смена роли/статуса
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.AdminUpdateUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.userService.AdminUpdateUser(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, "User updated", resp)
}

// DeleteUser - DELETE /admin/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.userService.DeleteUser(userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, "User deleted", nil)
}
