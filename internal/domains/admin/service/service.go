package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"awards-backend/internal/config"
	"awards-backend/internal/domains/admin/model"
	"awards-backend/pkg/jwt"
	"awards-backend/pkg/logger"
)

type ServiceInterface interface {
	Login(ctx context.Context, password string) (*model.LoginResponse, error)
	Session(token string) (*model.SessionResponse, error)
}

type adminService struct {
	passwordHash []byte
	tokens       *jwt.Manager
}

// NewAdminService prefers a bcrypt hash; a plaintext password is hashed
// once here so it is never compared directly.
func NewAdminService(cfg config.AdminConfig, tokens *jwt.Manager) (ServiceInterface, error) {
	s := &adminService{tokens: tokens}

	switch {
	case cfg.PasswordHash != "":
		if _, err := bcrypt.Cost([]byte(cfg.PasswordHash)); err != nil {
			return nil, fmt.Errorf("ADMIN_PASSWORD_HASH is not a bcrypt hash: %w", err)
		}
		s.passwordHash = []byte(cfg.PasswordHash)
	case cfg.Password != "":
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
		s.passwordHash = hash
	default:
		logger.Warn("No admin password configured; admin login is disabled", map[string]interface{}{})
	}
	return s, nil
}

func (s *adminService) Login(ctx context.Context, password string) (*model.LoginResponse, error) {
	if s.passwordHash == nil {
		return nil, model.NewNotConfiguredError()
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		logger.Warn("Failed admin login", map[string]interface{}{})
		return nil, model.NewInvalidCredentialsError()
	}

	token, expiresAt, err := s.tokens.GenerateSessionToken(model.AdminSubject, jwt.RoleAdmin)
	if err != nil {
		return nil, err
	}
	return &model.LoginResponse{Token: token, ExpiresAt: expiresAt}, nil
}

func (s *adminService) Session(token string) (*model.SessionResponse, error) {
	claims, err := s.tokens.ValidateSessionToken(token)
	if err != nil {
		return nil, model.NewInvalidCredentialsError()
	}
	resp := &model.SessionResponse{Subject: claims.Subject, Role: claims.Role}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Time
	}
	return resp, nil
}
