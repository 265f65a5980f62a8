package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"awards-backend/internal/domains/nomination/model"
)

type mockNominationService struct {
	mock.Mock
}

func (m *mockNominationService) Create(ctx context.Context, req model.CreateNominationRequest) (*model.Nomination, error) {
	args := m.Called(ctx, req)
	if n, ok := args.Get(0).(*model.Nomination); ok {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNominationService) List(ctx context.Context, req model.ListNominationsRequest) ([]model.Nomination, int, error) {
	args := m.Called(ctx, req)
	list, _ := args.Get(0).([]model.Nomination)
	return list, args.Int(1), args.Error(2)
}

func setupRouter(svc *mockNominationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewNominationHandler(svc)
	r.POST("/nominations", h.CreateNomination)
	r.GET("/admin/nominations", h.ListNominations)
	return r
}

func post(r *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/nominations", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateNomination(t *testing.T) {
	svc := &mockNominationService{}
	svc.On("Create", mock.Anything, mock.AnythingOfType("model.CreateNominationRequest")).
		Return(&model.Nomination{ID: uuid.New()}, nil)

	rec := post(setupRouter(svc), map[string]string{
		"nominee_name":    "Grace Okafor",
		"category_id":     "business",
		"reason":          "Built a supply chain that employs forty growers.",
		"nominator_name":  "Sam",
		"nominator_email": "sam@example.com",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}

func TestCreateNomination_ValidationDetails(t *testing.T) {
	svc := &mockNominationService{}

	rec := post(setupRouter(svc), map[string]string{
		"nominee_name": "Grace", "category_id": "business", "reason": "short",
		"nominator_name": "Sam", "nominator_email": "bad",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Error struct {
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Reason must be at least 20 characters", body.Error.Details["reason"])
	assert.Contains(t, body.Error.Details, "nominator_email")
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateNomination_UnknownCategory(t *testing.T) {
	svc := &mockNominationService{}
	svc.On("Create", mock.Anything, mock.Anything).Return(nil, model.NewCategoryNotFoundError("astronomy"))

	rec := post(setupRouter(svc), map[string]string{
		"nominee_name": "Grace", "category_id": "astronomy",
		"reason":         "A long enough reason for the nomination.",
		"nominator_name": "Sam", "nominator_email": "sam@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), model.ErrCodeCategoryNotFound)
}

func TestListNominations(t *testing.T) {
	svc := &mockNominationService{}
	svc.On("List", mock.Anything, model.ListNominationsRequest{CategoryID: "business", Page: 1, Limit: 20}).
		Return([]model.Nomination{{NomineeName: "Grace"}}, 1, nil)

	rec := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/nominations?category_id=business", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":1`)
}
