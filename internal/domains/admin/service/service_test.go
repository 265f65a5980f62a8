package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"awards-backend/internal/config"
	"awards-backend/internal/domains/admin/model"
	"awards-backend/pkg/jwt"
)

func TestLogin_PlainPassword(t *testing.T) {
	svc, err := NewAdminService(config.AdminConfig{Password: "s3cret"}, jwt.NewManager("k", time.Hour))
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	session, err := svc.Session(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, jwt.RoleAdmin, session.Role)

	_, err = svc.Login(context.Background(), "wrong")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLogin_Hash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	svc, err := NewAdminService(config.AdminConfig{PasswordHash: string(hash), Password: "ignored"}, jwt.NewManager("k", time.Hour))
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "hunter2")
	assert.NoError(t, err)
	_, err = svc.Login(context.Background(), "ignored")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestNewAdminService_BadHash(t *testing.T) {
	_, err := NewAdminService(config.AdminConfig{PasswordHash: "plaintext"}, jwt.NewManager("k", time.Hour))
	assert.Error(t, err)
}

func TestLogin_NotConfigured(t *testing.T) {
	svc, err := NewAdminService(config.AdminConfig{}, jwt.NewManager("k", time.Hour))
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "")
	assert.ErrorIs(t, err, model.ErrNotConfigured)
}

func TestSession_RejectsForeignToken(t *testing.T) {
	svc, err := NewAdminService(config.AdminConfig{Password: "x"}, jwt.NewManager("k", time.Hour))
	require.NoError(t, err)

	other, _, err := jwt.NewManager("other", time.Hour).GenerateSessionToken("admin", jwt.RoleAdmin)
	require.NoError(t, err)

	_, err = svc.Session(other)
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}
