package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"awards-backend/internal/domains/admin/model"
	"awards-backend/internal/shared/middleware"
)

type mockAdminService struct {
	mock.Mock
}

func (m *mockAdminService) Login(ctx context.Context, password string) (*model.LoginResponse, error) {
	args := m.Called(ctx, password)
	if r, ok := args.Get(0).(*model.LoginResponse); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAdminService) Session(token string) (*model.SessionResponse, error) {
	args := m.Called(token)
	if r, ok := args.Get(0).(*model.SessionResponse); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func setupRouter(svc *mockAdminService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAdminHandler(svc, true)
	r := gin.New()
	r.POST("/admin/login", h.Login)
	r.POST("/admin/logout", h.Logout)
	r.GET("/admin/session", h.Session)
	return r
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.AdminSessionCookie {
			return c
		}
	}
	return nil
}

func TestLogin_SetsCookie(t *testing.T) {
	svc := new(mockAdminService)
	svc.On("Login", mock.Anything, "hunter22").
		Return(&model.LoginResponse{Token: "tok", ExpiresAt: time.Now().Add(time.Hour)}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewBufferString(`{"password":"hunter22"}`))
	req.Header.Set("Content-Type", "application/json")
	setupRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.Equal(t, "tok", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Contains(t, rec.Body.String(), `"token":"tok"`)
}

func TestLogin_Errors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"wrong password", model.NewInvalidCredentialsError(), http.StatusUnauthorized},
		{"not configured", model.NewNotConfiguredError(), http.StatusServiceUnavailable},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(mockAdminService)
			svc.On("Login", mock.Anything, "x").Return(nil, tc.err)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewBufferString(`{"password":"x"}`))
			req.Header.Set("Content-Type", "application/json")
			setupRouter(svc).ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			assert.Nil(t, sessionCookie(rec))
		})
	}
}

func TestLogin_MissingPassword(t *testing.T) {
	svc := new(mockAdminService)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	setupRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}

func TestLogout_ClearsCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	setupRouter(new(mockAdminService)).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/logout", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.True(t, cookie.MaxAge < 0)
}

func TestSession(t *testing.T) {
	svc := new(mockAdminService)
	svc.On("Session", "good").Return(&model.SessionResponse{Subject: "admin", Role: "admin"}, nil)
	svc.On("Session", "bad").Return(nil, model.NewInvalidCredentialsError())
	r := setupRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/admin/session", nil)
	req.AddCookie(&http.Cookie{Name: middleware.AdminSessionCookie, Value: "good"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin/session", nil)
	req.Header.Set("Authorization", "Bearer bad")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/session", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
