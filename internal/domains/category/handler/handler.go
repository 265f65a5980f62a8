package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"awards-backend/internal/domains/category/model"
	"awards-backend/internal/domains/category/service"
	"awards-backend/internal/shared/response"
)

type CategoryHandler struct {
	categoryService service.ServiceInterface
}

func NewCategoryHandler(categoryService service.ServiceInterface) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// =====================================================
// PUBLIC ENDPOINTS
// =====================================================

// ListCategories returns the ballot snapshot
// GET /api/v1/categories
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	snapshot, err := h.categoryService.Snapshot(c.Request.Context())
	if err != nil {
		respondCategoryError(c, err)
		return
	}
	response.Success(c, http.StatusOK, snapshot.Categories)
}

// =====================================================
// ADMIN ENDPOINTS
// =====================================================

// UpsertCategory creates or replaces a category
// PUT /api/v1/admin/categories/:id
func (h *CategoryHandler) UpsertCategory(c *gin.Context) {
	var req model.UpsertCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	category, err := h.categoryService.UpsertCategory(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondCategoryError(c, err)
		return
	}
	response.Success(c, http.StatusOK, category)
}

// CreateNominee adds a nominee to a category
// POST /api/v1/admin/nominees
func (h *CategoryHandler) CreateNominee(c *gin.Context) {
	var req model.SaveNomineeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	nominee, err := h.categoryService.CreateNominee(c.Request.Context(), req)
	if err != nil {
		respondCategoryError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, nominee)
}

// UpdateNominee replaces a nominee's fields
// PUT /api/v1/admin/nominees/:id
func (h *CategoryHandler) UpdateNominee(c *gin.Context) {
	var req model.SaveNomineeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	nominee, err := h.categoryService.UpdateNominee(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondCategoryError(c, err)
		return
	}
	response.Success(c, http.StatusOK, nominee)
}

// DeleteNominee removes a nominee
// DELETE /api/v1/admin/nominees/:id
func (h *CategoryHandler) DeleteNominee(c *gin.Context) {
	if err := h.categoryService.DeleteNominee(c.Request.Context(), c.Param("id")); err != nil {
		respondCategoryError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": c.Param("id")})
}

// =====================================================
// HELPERS
// =====================================================

func respondCategoryError(c *gin.Context, err error) {
	status, code := mapCategoryError(err)
	message := "Internal server error"
	var catErr *model.CategoryError
	if errors.As(err, &catErr) {
		message = catErr.Message
	}
	response.ErrorResponse(c, status, code, message)
}

// mapCategoryError maps category error codes to HTTP status codes
func mapCategoryError(err error) (int, string) {
	var catErr *model.CategoryError
	if errors.As(err, &catErr) {
		switch catErr.Code {
		case model.ErrCodeCategoryNotFound, model.ErrCodeNomineeNotFound:
			return http.StatusNotFound, catErr.Code
		case model.ErrCodeInvalidInput:
			return http.StatusBadRequest, catErr.Code
		case model.ErrCodeStorageUnavailable:
			return http.StatusServiceUnavailable, catErr.Code
		}
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}
