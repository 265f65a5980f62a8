package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"awards-backend/internal/domains/engagement/model"
	"awards-backend/internal/domains/engagement/service"
	"awards-backend/internal/shared/identity"
	"awards-backend/internal/shared/response"
	"awards-backend/pkg/logger"
)

type EngagementHandler struct {
	engagementService service.ServiceInterface
	resolver          identity.Resolver
}

func NewEngagementHandler(engagementService service.ServiceInterface, resolver identity.Resolver) *EngagementHandler {
	return &EngagementHandler{engagementService: engagementService, resolver: resolver}
}

// GetNominee returns a nominee with likes and recent comments
// GET /api/v1/nominees/:id
func (h *EngagementHandler) GetNominee(c *gin.Context) {
	detail, err := h.engagementService.NomineeDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, detail)
}

// ListComments
// GET /api/v1/nominees/:id/comments?limit=50
func (h *EngagementHandler) ListComments(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(model.DefaultCommentsLimit)))

	comments, err := h.engagementService.ListComments(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, comments)
}

// AddComment
// POST /api/v1/nominees/:id/comments
func (h *EngagementHandler) AddComment(c *gin.Context) {
	var req model.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	voter, ok := h.resolveVoter(c, req.Email)
	if !ok {
		return
	}

	comment, err := h.engagementService.AddComment(c.Request.Context(), voter, c.Param("id"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, comment)
}

// LikeNominee
// POST /api/v1/nominees/:id/likes
func (h *EngagementHandler) LikeNominee(c *gin.Context) {
	var req model.LikeRequest
	// an empty body is fine under the user scheme
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body")
			return
		}
	}

	voter, ok := h.resolveVoter(c, req.Email)
	if !ok {
		return
	}

	result, err := h.engagementService.Like(c.Request.Context(), voter, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

func (h *EngagementHandler) resolveVoter(c *gin.Context, email string) (identity.Voter, bool) {
	return identity.FromRequest(c, h.resolver, email, identity.Rejection{
		Code:   model.ErrCodeInvalidInput,
		SignIn: "Sign in to continue",
	})
}

func (h *EngagementHandler) handleError(c *gin.Context, err error) {
	var engErr *model.EngagementError
	if !errors.As(err, &engErr) {
		logger.Error("Unexpected engagement error", err)
		response.InternalServerError(c, "Internal server error")
		return
	}

	switch engErr.Code {
	case model.ErrCodeInvalidInput:
		response.ErrorResponse(c, http.StatusBadRequest, engErr.Code, engErr.Message)
	case model.ErrCodeNomineeNotFound:
		response.ErrorResponse(c, http.StatusNotFound, engErr.Code, engErr.Message)
	case model.ErrCodeAlreadyLiked:
		response.ErrorResponse(c, http.StatusConflict, engErr.Code, engErr.Message)
	case model.ErrCodeStorageUnavailable:
		logger.Error("Engagement storage unavailable", err)
		response.ErrorResponse(c, http.StatusServiceUnavailable, engErr.Code, engErr.Message)
	default:
		response.InternalServerError(c, "Internal server error")
	}
}
