package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"awards-backend/internal/domains/nomination/model"
	"awards-backend/internal/domains/nomination/service"
	"awards-backend/internal/shared/response"
	"awards-backend/pkg/logger"
)

type NominationHandler struct {
	nominationService service.ServiceInterface
}

func NewNominationHandler(nominationService service.ServiceInterface) *NominationHandler {
	return &NominationHandler{nominationService: nominationService}
}

// CreateNomination
// POST /api/v1/nominations
func (h *NominationHandler) CreateNomination(c *gin.Context) {
	var req model.CreateNominationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	nomination, err := h.nominationService.Create(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"id":      nomination.ID,
		"message": "Thank you! Your nomination has been received.",
	})
}

// ListNominations
// GET /api/v1/admin/nominations?category_id=&page=&limit=
func (h *NominationHandler) ListNominations(c *gin.Context) {
	var req model.ListNominationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	req.Normalize()

	nominations, total, err := h.nominationService.List(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, nominations, &response.Meta{
		Page:  req.Page,
		Limit: req.Limit,
		Total: total,
	})
}

func (h *NominationHandler) handleError(c *gin.Context, err error) {
	var nomErr *model.NominationError
	if !errors.As(err, &nomErr) {
		logger.Error("Unexpected nomination error", err)
		response.InternalServerError(c, "Internal server error")
		return
	}

	switch nomErr.Code {
	case model.ErrCodeInvalidInput, model.ErrCodeCategoryNotFound:
		response.ErrorResponse(c, http.StatusBadRequest, nomErr.Code, nomErr.Message)
	case model.ErrCodeStorageUnavailable:
		logger.Error("Nomination storage unavailable", err)
		response.ErrorResponse(c, http.StatusServiceUnavailable, nomErr.Code, nomErr.Message)
	default:
		response.InternalServerError(c, "Internal server error")
	}
}
