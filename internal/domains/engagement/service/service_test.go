package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catmodel "awards-backend/internal/domains/category/model"
	"awards-backend/internal/domains/engagement/model"
	"awards-backend/internal/shared/identity"
)

type fakeRepo struct {
	mu       sync.Mutex
	nominees map[string]bool
	comments []model.Comment
	likes    map[[2]string]bool
	countErr error
}

func newFakeRepo(nominees ...string) *fakeRepo {
	f := &fakeRepo{nominees: map[string]bool{}, likes: map[[2]string]bool{}}
	for _, n := range nominees {
		f.nominees[n] = true
	}
	return f
}

func (f *fakeRepo) CreateComment(ctx context.Context, c *model.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.nominees[c.NomineeID] {
		return model.ErrNomineeNotFound
	}
	c.CreatedAt = time.Now()
	f.comments = append(f.comments, *c)
	return nil
}

func (f *fakeRepo) ListComments(ctx context.Context, nomineeID string, limit int) ([]model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Comment, 0)
	for i := len(f.comments) - 1; i >= 0 && len(out) < limit; i-- {
		if f.comments[i].NomineeID == nomineeID {
			out = append(out, f.comments[i])
		}
	}
	return out, nil
}

func (f *fakeRepo) AddLike(ctx context.Context, nomineeID, voter string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.nominees[nomineeID] {
		return model.ErrNomineeNotFound
	}
	key := [2]string{nomineeID, voter}
	if f.likes[key] {
		return model.ErrAlreadyLiked
	}
	f.likes[key] = true
	return nil
}

func (f *fakeRepo) CountLikes(ctx context.Context, nomineeID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.countErr != nil {
		return 0, f.countErr
	}
	n := 0
	for k := range f.likes {
		if k[0] == nomineeID {
			n++
		}
	}
	return n, nil
}

type fakeNominees struct {
	err error
}

func (f fakeNominees) GetNominee(ctx context.Context, id string) (*catmodel.Nominee, error) {
	if f.err != nil {
		return nil, f.err
	}
	if id != "n1" {
		return nil, catmodel.NewNomineeNotFoundError(id)
	}
	return &catmodel.Nominee{ID: "n1", Name: "John Smith", CategoryID: "biz"}, nil
}

func voter(key string) identity.Voter {
	return identity.Voter{Scheme: identity.SchemeEmail, Key: key}
}

func codeOf(t *testing.T, err error) string {
	t.Helper()
	var engErr *model.EngagementError
	require.ErrorAs(t, err, &engErr)
	return engErr.Code
}

func TestLike_OncePerVoter(t *testing.T) {
	svc := NewEngagementService(newFakeRepo("n1"), fakeNominees{})
	ctx := context.Background()

	res, err := svc.Like(ctx, voter("a@x.co"), "n1")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Likes)

	_, err = svc.Like(ctx, voter("a@x.co"), "n1")
	assert.Equal(t, model.ErrCodeAlreadyLiked, codeOf(t, err))

	res, err = svc.Like(ctx, voter("b@x.co"), "n1")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Likes)

	_, err = svc.Like(ctx, voter("a@x.co"), "ghost")
	assert.Equal(t, model.ErrCodeNomineeNotFound, codeOf(t, err))

	_, err = svc.Like(ctx, identity.Voter{}, "n1")
	assert.Equal(t, model.ErrCodeInvalidInput, codeOf(t, err))
}

func TestLike_Concurrent(t *testing.T) {
	repo := newFakeRepo("n1")
	svc := NewEngagementService(repo, fakeNominees{})

	var wg sync.WaitGroup
	var ok atomic.Int32
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Like(context.Background(), voter("a@x.co"), "n1"); err == nil {
				ok.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok.Load())
	count, _ := repo.CountLikes(context.Background(), "n1")
	assert.Equal(t, 1, count)
}

func TestAddComment(t *testing.T) {
	svc := NewEngagementService(newFakeRepo("n1"), fakeNominees{})
	ctx := context.Background()

	c, err := svc.AddComment(ctx, voter("ann@x.co"), "n1", model.CreateCommentRequest{Content: " Well deserved "})
	require.NoError(t, err)
	assert.Equal(t, "Well deserved", c.Content)
	assert.Equal(t, "a**@x.co", c.Author)

	_, err = svc.AddComment(ctx, voter("ann@x.co"), "n1", model.CreateCommentRequest{Content: ""})
	assert.Equal(t, model.ErrCodeInvalidInput, codeOf(t, err))

	_, err = svc.AddComment(ctx, voter("ann@x.co"), "ghost", model.CreateCommentRequest{Content: "hi"})
	assert.Equal(t, model.ErrCodeNomineeNotFound, codeOf(t, err))
}

func TestNomineeDetail(t *testing.T) {
	repo := newFakeRepo("n1")
	svc := NewEngagementService(repo, fakeNominees{})
	ctx := context.Background()

	_, err := svc.Like(ctx, voter("a@x.co"), "n1")
	require.NoError(t, err)
	_, err = svc.AddComment(ctx, voter("a@x.co"), "n1", model.CreateCommentRequest{Content: "first"})
	require.NoError(t, err)
	_, err = svc.AddComment(ctx, voter("b@x.co"), "n1", model.CreateCommentRequest{Content: "second"})
	require.NoError(t, err)

	detail, err := svc.NomineeDetail(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, "John Smith", detail.Name)
	assert.Equal(t, 1, detail.Likes)
	require.Len(t, detail.Comments, 2)
	assert.Equal(t, "second", detail.Comments[0].Content)

	_, err = svc.NomineeDetail(ctx, "ghost")
	assert.Equal(t, model.ErrCodeNomineeNotFound, codeOf(t, err))

	_, err = NewEngagementService(repo, fakeNominees{err: catmodel.NewStorageUnavailableError(errors.New("down"))}).NomineeDetail(ctx, "n1")
	assert.Equal(t, model.ErrCodeStorageUnavailable, codeOf(t, err))
}
