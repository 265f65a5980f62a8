package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"awards-backend/internal/domains/admin/model"
	"awards-backend/internal/domains/admin/service"
	"awards-backend/internal/shared/identity"
	"awards-backend/internal/shared/middleware"
	"awards-backend/internal/shared/response"
)

type AdminHandler struct {
	adminService service.ServiceInterface
	cookieSecure bool
}

func NewAdminHandler(adminService service.ServiceInterface, cookieSecure bool) *AdminHandler {
	return &AdminHandler{adminService: adminService, cookieSecure: cookieSecure}
}

// Login exchanges the admin password for a session cookie
// POST /api/v1/admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Password is required")
		return
	}

	resp, err := h.adminService.Login(c.Request.Context(), req.Password)
	if err != nil {
		respondAdminError(c, err)
		return
	}

	maxAge := int(time.Until(resp.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AdminSessionCookie, resp.Token, maxAge, "/", "", h.cookieSecure, true)

	response.Success(c, http.StatusOK, resp)
}

// Logout clears the session cookie. Tokens are stateless so a copied
// bearer token stays valid until it expires.
// POST /api/v1/admin/logout
func (h *AdminHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AdminSessionCookie, "", -1, "/", "", h.cookieSecure, true)
	response.Success(c, http.StatusOK, gin.H{"message": "Logged out"})
}

// Session reports whether the caller holds a valid admin session
// GET /api/v1/admin/session
func (h *AdminHandler) Session(c *gin.Context) {
	token, err := c.Cookie(middleware.AdminSessionCookie)
	if err != nil || token == "" {
		token = identity.BearerToken(c.GetHeader("Authorization"))
	}
	if token == "" {
		response.Unauthorized(c, "Admin session required")
		return
	}

	session, err := h.adminService.Session(token)
	if err != nil {
		respondAdminError(c, err)
		return
	}
	response.Success(c, http.StatusOK, session)
}

func respondAdminError(c *gin.Context, err error) {
	var adminErr *model.AdminError
	if !errors.As(err, &adminErr) {
		response.InternalServerError(c, "Internal server error")
		return
	}

	switch adminErr.Code {
	case model.ErrCodeInvalidCredentials:
		response.ErrorResponse(c, http.StatusUnauthorized, adminErr.Code, adminErr.Message)
	case model.ErrCodeNotConfigured:
		response.ErrorResponse(c, http.StatusServiceUnavailable, adminErr.Code, adminErr.Message)
	default:
		response.InternalServerError(c, adminErr.Message)
	}
}
