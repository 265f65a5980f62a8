package identity

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"awards-backend/internal/shared/response"
)

// Rejection shapes the response written when a request carries no usable identity
type Rejection struct {
	// Code is the domain error code sent under the email scheme
	Code string
	// SignIn is the 401 message sent under the user scheme
	SignIn string
}

// FromRequest resolves the caller from an email value and the Authorization
// header. On failure it writes the error response and returns false.
func FromRequest(c *gin.Context, r Resolver, email string, onErr Rejection) (Voter, bool) {
	voter, err := r.Resolve(Credentials{
		Email:       email,
		BearerToken: BearerToken(c.GetHeader("Authorization")),
	})
	if err == nil {
		return voter, true
	}

	if r.Scheme() == SchemeUser {
		response.Unauthorized(c, onErr.SignIn)
		return Voter{}, false
	}
	message := "A valid email address is required"
	if errors.Is(err, ErrMissingIdentity) {
		message = "Email is required"
	}
	response.ErrorResponse(c, http.StatusBadRequest, onErr.Code, message)
	return Voter{}, false
}
