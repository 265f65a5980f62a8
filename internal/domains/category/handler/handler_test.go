package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"awards-backend/internal/domains/category/model"
)

type mockCategoryService struct {
	mock.Mock
}

func (m *mockCategoryService) Snapshot(ctx context.Context) (*model.Snapshot, error) {
	args := m.Called(ctx)
	if s, ok := args.Get(0).(*model.Snapshot); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryService) GetNominee(ctx context.Context, id string) (*model.Nominee, error) {
	args := m.Called(ctx, id)
	if n, ok := args.Get(0).(*model.Nominee); ok {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryService) UpsertCategory(ctx context.Context, id string, req model.UpsertCategoryRequest) (*model.Category, error) {
	args := m.Called(ctx, id, req)
	if c, ok := args.Get(0).(*model.Category); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryService) CreateNominee(ctx context.Context, req model.SaveNomineeRequest) (*model.Nominee, error) {
	args := m.Called(ctx, req)
	if n, ok := args.Get(0).(*model.Nominee); ok {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryService) UpdateNominee(ctx context.Context, id string, req model.SaveNomineeRequest) (*model.Nominee, error) {
	args := m.Called(ctx, id, req)
	if n, ok := args.Get(0).(*model.Nominee); ok {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryService) DeleteNominee(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCategoryService) Seed(ctx context.Context, categories []model.SeedCategory) error {
	return m.Called(ctx, categories).Error(0)
}

func setupRouter(svc *mockCategoryService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewCategoryHandler(svc)
	r.GET("/categories", h.ListCategories)
	r.POST("/admin/nominees", h.CreateNominee)
	r.DELETE("/admin/nominees/:id", h.DeleteNominee)
	return r
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Details map[string]interface{} `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestListCategories(t *testing.T) {
	svc := &mockCategoryService{}
	svc.On("Snapshot", mock.Anything).Return(&model.Snapshot{Categories: []model.CategoryWithNominees{
		{Category: model.Category{ID: "business-award", Title: "Business Award"}, Nominees: []model.Nominee{
			{ID: "john-smith", Name: "John Smith", CategoryID: "business-award"},
		}},
	}}, nil)

	rec := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/categories", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.True(t, env.Success)

	var cats []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &cats))
	require.Len(t, cats, 1)
	assert.Equal(t, "business-award", cats[0]["id"])
	assert.Len(t, cats[0]["nominees"], 1)
}

func TestListCategories_StorageUnavailable(t *testing.T) {
	svc := &mockCategoryService{}
	svc.On("Snapshot", mock.Anything).Return(nil, model.NewStorageUnavailableError(errors.New("down")))

	rec := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/categories", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, model.ErrCodeStorageUnavailable, decode(t, rec).Error.Code)
}

func TestCreateNominee_ValidationDetails(t *testing.T) {
	svc := &mockCategoryService{}

	body, _ := json.Marshal(map[string]string{"name": "Someone"})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/nominees", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	setupRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Details, "organization")
	assert.Contains(t, env.Error.Details, "category_id")
	svc.AssertNotCalled(t, "CreateNominee", mock.Anything, mock.Anything)
}

func TestCreateNominee_Created(t *testing.T) {
	svc := &mockCategoryService{}
	svc.On("CreateNominee", mock.Anything, mock.AnythingOfType("model.SaveNomineeRequest")).
		Return(&model.Nominee{ID: "peter-jones-ab12c", Name: "Peter Jones"}, nil)

	body, _ := json.Marshal(map[string]string{
		"name": "Peter Jones", "organization": "Jones Inc.", "category_id": "business-award",
	})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/nominees", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	setupRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}

func TestDeleteNominee_NotFound(t *testing.T) {
	svc := &mockCategoryService{}
	svc.On("DeleteNominee", mock.Anything, "ghost").Return(model.NewNomineeNotFoundError("ghost"))

	rec := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/admin/nominees/ghost", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, model.ErrCodeNomineeNotFound, decode(t, rec).Error.Code)
}
