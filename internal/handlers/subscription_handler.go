package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aiforge_backend/internal/services"
	"aiforge_backend/internal/services/dto"
)

type SubscriptionHandler struct {
	*BaseHandler
	subscriptionService services.SubscriptionService
}

func NewSubscriptionHandler(base *BaseHandler, subscriptionService services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		BaseHandler:         base,
		subscriptionService: subscriptionService,
	}
}

// CreateSubscription - POST /subscription/create.
// Платеж уже авторизован снаружи; здесь фиксируется только его результат.
func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateSubscriptionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	subscription, err := h.subscriptionService.CreateSubscription(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Success(c, http.StatusCreated, "Subscription created", subscription)
}

// GetMySubscription - GET /subscription/my: активная подписка
func (h *SubscriptionHandler) GetMySubscription(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	subscription, err := h.subscriptionService.GetActiveSubscription(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, "Active subscription", subscription)
}

// GetMySubscriptionHistory - GET /subscription/history
func (h *SubscriptionHandler) GetMySubscriptionHistory(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	subscriptions, err := h.subscriptionService.GetUserSubscriptions(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, "Subscriptions", subscriptions)
}

// ListSubscriptions - GET /subscription/ (только админ)
func (h *SubscriptionHandler) ListSubscriptions(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	subscriptions, err := h.subscriptionService.ListSubscriptions(pageSize, (page-1)*pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, "Subscriptions", subscriptions)
}
