package middleware

import (
	"github.com/gin-gonic/gin"

	"awards-backend/internal/shared/identity"
	"awards-backend/internal/shared/response"
	"awards-backend/pkg/jwt"
)

const (
	AdminSessionCookie = "admin_session"
	ContextAdminKey    = "admin_subject"
)

// SessionValidator is satisfied by *jwt.Manager
type SessionValidator interface {
	ValidateSessionToken(token string) (*jwt.Claims, error)
}

// AdminMiddleware accepts the admin_session cookie or an Authorization
// bearer token carrying an admin session.
func AdminMiddleware(sessions SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(AdminSessionCookie)
		if err != nil || token == "" {
			token = identity.BearerToken(c.GetHeader("Authorization"))
		}
		if token == "" {
			response.Unauthorized(c, "Admin session required")
			c.Abort()
			return
		}

		claims, err := sessions.ValidateSessionToken(token)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired admin session")
			c.Abort()
			return
		}
		if claims.Role != jwt.RoleAdmin {
			response.Forbidden(c, "Access denied: admin role required")
			c.Abort()
			return
		}

		c.Set(ContextAdminKey, claims.Subject)
		c.Next()
	}
}
