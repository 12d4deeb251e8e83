package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aiforge_backend/internal/services"
	"aiforge_backend/internal/services/dto"
)

type PlanHandler struct {
	*BaseHandler
	planService services.PlanService
}

func NewPlanHandler(base *BaseHandler, planService services.PlanService) *PlanHandler {
	return &PlanHandler{
		BaseHandler: base,
		planService: planService,
	}
}

// GetAllPlans - GET /plan/all: публичный каталог
func (h *PlanHandler) GetAllPlans(c *gin.Context) {
	plans, err := h.planService.GetAllPlans()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, "Plans", plans)
}

// GetPlan - GET /plan/:id
func (h *PlanHandler) GetPlan(c *gin.Context) {
	planID, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	plan, err := h.planService.GetPlanByID(planID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, "Plan", plan)
}

// CreatePlan - POST /plan/create (только админ)
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req dto.CreatePlanRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	plan, err := h.planService.CreatePlan(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Success(c, http.StatusCreated, "Plan created", plan)
}

// UpdatePlan - PUT /plan/update/:id (только админ)
func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	planID, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.UpdatePlanRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	plan, err := h.planService.UpdatePlan(planID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, "Plan updated", plan)
}

// DeletePlan - DELETE /plan/delete/:id (только админ)
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	planID, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.planService.DeletePlan(planID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, "Plan deleted", nil)
}
