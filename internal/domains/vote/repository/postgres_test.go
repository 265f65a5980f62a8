package repository

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"awards-backend/internal/domains/vote/model"
	"awards-backend/internal/infrastructure/database/dbtest"
)

func TestClassifyWriteError(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "votes_voter_identity_key"}
	assert.ErrorIs(t, classifyWriteError(dup), model.ErrDuplicateVote)

	otherUnique := &pgconn.PgError{Code: "23505", ConstraintName: "votes_pkey"}
	assert.ErrorIs(t, classifyWriteError(otherUnique), model.ErrStorageUnavailable)

	checkFailed := &pgconn.PgError{Code: "23514"}
	assert.ErrorIs(t, classifyWriteError(checkFailed), model.ErrStorageUnavailable)

	assert.ErrorIs(t, classifyWriteError(context.DeadlineExceeded), model.ErrWriteOutcomeUnknown)
	assert.ErrorIs(t, classifyWriteError(errors.New("broken pipe")), model.ErrWriteOutcomeUnknown)
}

func newVote(voter string) *model.Vote {
	return &model.Vote{
		ID:             uuid.New(),
		VoterIdentity:  voter,
		IdentityScheme: "email",
		Selections:     model.Selections{"biz": "n1"},
	}
}

func TestPostgresVoteRepository_InsertAndRead(t *testing.T) {
	pool := dbtest.OpenTestPool(t)
	repo := NewPostgresVoteRepository(pool)
	ctx := context.Background()

	_, err := repo.GetByVoter(ctx, "ann@example.com")
	assert.ErrorIs(t, err, model.ErrVoteNotFound)

	vote := newVote("ann@example.com")
	require.NoError(t, repo.Insert(ctx, vote))
	assert.False(t, vote.CreatedAt.IsZero())

	got, err := repo.GetByVoter(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, vote.ID, got.ID)
	assert.Equal(t, model.Selections{"biz": "n1"}, got.Selections)

	err = repo.Insert(ctx, newVote("ann@example.com"))
	assert.ErrorIs(t, err, model.ErrDuplicateVote)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPostgresVoteRepository_ConcurrentInsertSameVoter(t *testing.T) {
	pool := dbtest.OpenTestPool(t)
	repo := NewPostgresVoteRepository(pool)

	const n = 20
	var (
		wg         sync.WaitGroup
		successes  atomic.Int32
		duplicates atomic.Int32
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.Insert(context.Background(), newVote("race@example.com"))
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, model.ErrDuplicateVote):
				duplicates.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), successes.Load())
	assert.Equal(t, int32(n-1), duplicates.Load())

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPostgresVoteRepository_TallyAndList(t *testing.T) {
	pool := dbtest.OpenTestPool(t)
	repo := NewPostgresVoteRepository(pool)
	ctx := context.Background()

	for voter, sel := range map[string]model.Selections{
		"a@x.co": {"biz": "n1", "music": "m1"},
		"b@x.co": {"biz": "n1"},
		"c@x.co": {"biz": "n2"},
	} {
		v := newVote(voter)
		v.Selections = sel
		require.NoError(t, repo.Insert(ctx, v))
	}

	rows, err := repo.Tally(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []model.TallyRow{
		{CategoryID: "biz", NomineeID: "n1", Votes: 2},
		{CategoryID: "biz", NomineeID: "n2", Votes: 1},
		{CategoryID: "music", NomineeID: "m1", Votes: 1},
	}, rows)

	page, err := repo.List(ctx, 0, 2)
	require.NoError(t, err)
	assert.Len(t, page, 2)
	assert.False(t, page[0].CreatedAt.Before(page[1].CreatedAt))
}

func TestPostgresVoteRepository_ListBeforeSkipsNewRows(t *testing.T) {
	pool := dbtest.OpenTestPool(t)
	repo := NewPostgresVoteRepository(pool)
	ctx := context.Background()

	for _, voter := range []string{"a@x.co", "b@x.co", "c@x.co"} {
		require.NoError(t, repo.Insert(ctx, newVote(voter)))
	}

	first, err := repo.ListBefore(ctx, nil, 2)
	require.NoError(t, err)
	require.Len(t, first, 2)

	// a vote landing mid-export sorts ahead of the cursor
	require.NoError(t, repo.Insert(ctx, newVote("d@x.co")))

	last := first[len(first)-1]
	rest, err := repo.ListBefore(ctx, &model.VoteCursor{CreatedAt: last.CreatedAt, ID: last.ID}, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)

	seen := map[string]bool{}
	for _, v := range append(first, rest...) {
		assert.False(t, seen[v.VoterIdentity], v.VoterIdentity)
		seen[v.VoterIdentity] = true
	}
	assert.Len(t, seen, 3)
	assert.False(t, seen["d@x.co"])
}
