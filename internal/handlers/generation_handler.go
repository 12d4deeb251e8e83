package handlers

import (
	"github.com/gin-gonic/gin"

	"aiforge_backend/internal/models"
	"aiforge_backend/internal/services"
	"aiforge_backend/internal/services/dto"
	"aiforge_backend/pkg/apperrors"
)

type GenerationHandler struct {
	*BaseHandler
	generationService services.GenerationService
}

func NewGenerationHandler(base *BaseHandler, generationService services.GenerationService) *GenerationHandler {
	return &GenerationHandler{
		BaseHandler:       base,
		generationService: generationService,
	}
}

// Generate - POST /generate/:category.
// Категория приходит в пути: script, voice, image, video.
func (h *GenerationHandler) Generate(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	category := models.CreditCategory(c.Param("category"))
	if !models.ValidCreditCategory(category) {
		h.HandleServiceError(c, apperrors.NewBadRequestError("unknown generation category"))
		return
	}

	var req dto.GenerateRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.generationService.Generate(c.Request.Context(), userID, category, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, "Generation complete", resp)
}
