package model

import (
	"errors"
	"fmt"
	"time"
)

// AdminSubject is the subject of every admin session token
const AdminSubject = "admin"

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SessionResponse struct {
	Subject   string    `json:"subject"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

const (
	ErrCodeInvalidCredentials = "ADM001"
	ErrCodeNotConfigured      = "ADM002"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotConfigured      = errors.New("admin password not configured")
)

type AdminError struct {
	Code    string
	Message string
	Err     error
}

func (e *AdminError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AdminError) Unwrap() error {
	return e.Err
}

func NewInvalidCredentialsError() *AdminError {
	return &AdminError{Code: ErrCodeInvalidCredentials, Message: "Invalid password", Err: ErrInvalidCredentials}
}

func NewNotConfiguredError() *AdminError {
	return &AdminError{Code: ErrCodeNotConfigured, Message: "Admin login is not configured", Err: ErrNotConfigured}
}
