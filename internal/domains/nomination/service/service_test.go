package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	catmodel "awards-backend/internal/domains/category/model"
	"awards-backend/internal/domains/nomination/model"
	"awards-backend/internal/shared"
)

type fakeRepo struct {
	mu          sync.Mutex
	nominations []model.Nomination
	createErr   error
}

func (f *fakeRepo) Create(ctx context.Context, n *model.Nomination) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	n.CreatedAt = time.Now()
	f.nominations = append(f.nominations, *n)
	return nil
}

func (f *fakeRepo) List(ctx context.Context, categoryID string, offset, limit int) ([]model.Nomination, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	filtered := make([]model.Nomination, 0)
	for _, n := range f.nominations {
		if categoryID == "" || n.CategoryID == categoryID {
			filtered = append(filtered, n)
		}
	}
	total := len(filtered)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return filtered[offset:end], total, nil
}

type staticSnapshot struct {
	err error
}

func (s staticSnapshot) Snapshot(context.Context) (*catmodel.Snapshot, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &catmodel.Snapshot{Categories: []catmodel.CategoryWithNominees{
		{Category: catmodel.Category{ID: "business", Title: "Business Award"}},
		{Category: catmodel.Category{ID: "ministry", Title: "Ministry Award", TBD: true}},
	}}, nil
}

type mockEnqueuer struct {
	mock.Mock
}

func (m *mockEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(ctx, task)
	return nil, args.Error(1)
}

func validRequest() model.CreateNominationRequest {
	return model.CreateNominationRequest{
		NomineeName:    "Grace Okafor",
		NomineeOrg:     "Okafor Foods",
		CategoryID:     "business",
		Reason:         "Built a supply chain that employs forty local growers.",
		NominatorName:  "Sam",
		NominatorEmail: "sam@example.com",
	}
}

func codeOf(t *testing.T, err error) string {
	t.Helper()
	var nomErr *model.NominationError
	require.ErrorAs(t, err, &nomErr)
	return nomErr.Code
}

func TestCreate_RecordsAndAcknowledges(t *testing.T) {
	repo := &fakeRepo{}
	enq := &mockEnqueuer{}
	enq.On("EnqueueContext", mock.Anything, mock.MatchedBy(func(task *asynq.Task) bool {
		return task.Type() == shared.TypeSendNominationAck
	})).Return(nil, nil).Once()

	n, err := NewNominationService(repo, staticSnapshot{}, enq).Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "Grace Okafor", n.NomineeName)
	assert.Len(t, repo.nominations, 1)
	enq.AssertExpectations(t)
}

func TestCreate_TBDCategoryAccepted(t *testing.T) {
	req := validRequest()
	req.CategoryID = "ministry"

	_, err := NewNominationService(&fakeRepo{}, staticSnapshot{}, nil).Create(context.Background(), req)
	assert.NoError(t, err)
}

func TestCreate_Errors(t *testing.T) {
	ctx := context.Background()

	short := validRequest()
	short.Reason = "too short"
	_, err := NewNominationService(&fakeRepo{}, staticSnapshot{}, nil).Create(ctx, short)
	assert.Equal(t, model.ErrCodeInvalidInput, codeOf(t, err))

	unknown := validRequest()
	unknown.CategoryID = "astronomy"
	_, err = NewNominationService(&fakeRepo{}, staticSnapshot{}, nil).Create(ctx, unknown)
	assert.Equal(t, model.ErrCodeCategoryNotFound, codeOf(t, err))

	_, err = NewNominationService(&fakeRepo{}, staticSnapshot{err: errors.New("down")}, nil).Create(ctx, validRequest())
	assert.Equal(t, model.ErrCodeStorageUnavailable, codeOf(t, err))

	_, err = NewNominationService(&fakeRepo{createErr: model.ErrCategoryNotFound}, staticSnapshot{}, nil).Create(ctx, validRequest())
	assert.Equal(t, model.ErrCodeCategoryNotFound, codeOf(t, err))
}

func TestCreate_EnqueueFailureStillSucceeds(t *testing.T) {
	enq := &mockEnqueuer{}
	enq.On("EnqueueContext", mock.Anything, mock.Anything).Return(nil, errors.New("redis down"))

	_, err := NewNominationService(&fakeRepo{}, staticSnapshot{}, enq).Create(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestList_FiltersByCategory(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewNominationService(repo, staticSnapshot{}, nil)
	ctx := context.Background()

	for _, cat := range []string{"business", "business", "ministry"} {
		req := validRequest()
		req.CategoryID = cat
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}

	list, total, err := svc.List(ctx, model.ListNominationsRequest{CategoryID: "business"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, list, 2)
}
