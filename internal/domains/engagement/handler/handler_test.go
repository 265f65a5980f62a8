package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	catmodel "awards-backend/internal/domains/category/model"
	"awards-backend/internal/domains/engagement/model"
	"awards-backend/internal/shared/identity"
)

type mockEngagementService struct {
	mock.Mock
}

func (m *mockEngagementService) NomineeDetail(ctx context.Context, id string) (*model.NomineeDetail, error) {
	args := m.Called(ctx, id)
	if d, ok := args.Get(0).(*model.NomineeDetail); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEngagementService) AddComment(ctx context.Context, voter identity.Voter, id string, req model.CreateCommentRequest) (*model.Comment, error) {
	args := m.Called(ctx, voter, id, req)
	if c, ok := args.Get(0).(*model.Comment); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEngagementService) ListComments(ctx context.Context, id string, limit int) ([]model.Comment, error) {
	args := m.Called(ctx, id, limit)
	list, _ := args.Get(0).([]model.Comment)
	return list, args.Error(1)
}

func (m *mockEngagementService) Like(ctx context.Context, voter identity.Voter, id string) (*model.LikeResult, error) {
	args := m.Called(ctx, voter, id)
	if r, ok := args.Get(0).(*model.LikeResult); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func setupRouter(svc *mockEngagementService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewEngagementHandler(svc, identity.EmailResolver{})
	r.GET("/nominees/:id", h.GetNominee)
	r.GET("/nominees/:id/comments", h.ListComments)
	r.POST("/nominees/:id/comments", h.AddComment)
	r.POST("/nominees/:id/likes", h.LikeNominee)
	return r
}

func do(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestGetNominee(t *testing.T) {
	svc := &mockEngagementService{}
	svc.On("NomineeDetail", mock.Anything, "n1").Return(&model.NomineeDetail{
		Nominee: catmodel.Nominee{ID: "n1", Name: "John Smith"}, Likes: 3, Comments: []model.Comment{},
	}, nil)
	svc.On("NomineeDetail", mock.Anything, "ghost").Return(nil, model.NewNomineeNotFoundError("ghost"))

	rec := do(setupRouter(svc), http.MethodGet, "/nominees/n1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"likes":3`)

	rec = do(setupRouter(svc), http.MethodGet, "/nominees/ghost", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLikeNominee_AlreadyLiked(t *testing.T) {
	svc := &mockEngagementService{}
	v := identity.Voter{Scheme: identity.SchemeEmail, Key: "a@x.co"}
	svc.On("Like", mock.Anything, v, "n1").Return(&model.LikeResult{NomineeID: "n1", Likes: 1}, nil).Once()
	svc.On("Like", mock.Anything, v, "n1").Return(nil, model.NewAlreadyLikedError()).Once()

	r := setupRouter(svc)
	assert.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/nominees/n1/likes", map[string]string{"email": "A@x.co"}).Code)

	rec := do(r, http.MethodPost, "/nominees/n1/likes", map[string]string{"email": "a@x.co"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), model.ErrCodeAlreadyLiked)
}

func TestLikeNominee_MissingEmail(t *testing.T) {
	svc := &mockEngagementService{}

	rec := do(setupRouter(svc), http.MethodPost, "/nominees/n1/likes", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Like", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddComment_TooLong(t *testing.T) {
	svc := &mockEngagementService{}
	long := make([]byte, model.MaxCommentLength+1)
	for i := range long {
		long[i] = 'x'
	}

	rec := do(setupRouter(svc), http.MethodPost, "/nominees/n1/comments", map[string]string{
		"email": "a@x.co", "content": string(long),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "content")
}

func TestListComments_Limit(t *testing.T) {
	svc := &mockEngagementService{}
	svc.On("ListComments", mock.Anything, "n1", 5).Return([]model.Comment{{Content: "hi"}}, nil)

	rec := do(setupRouter(svc), http.MethodGet, "/nominees/n1/comments?limit=5", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}
