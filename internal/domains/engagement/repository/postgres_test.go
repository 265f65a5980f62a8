package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"awards-backend/internal/domains/engagement/model"
	"awards-backend/internal/infrastructure/database/dbtest"
)

func TestPostgresEngagementRepository(t *testing.T) {
	pool := dbtest.OpenTestPool(t)
	ctx := context.Background()
	_, err := pool.Exec(ctx, `
		INSERT INTO categories (id, title) VALUES ('biz', 'Business');
		INSERT INTO nominees (id, name, photo, category_id) VALUES ('n1', 'John', 'https://placehold.co/128x128.png', 'biz');
	`)
	require.NoError(t, err)

	repo := NewPostgresEngagementRepository(pool)

	require.NoError(t, repo.AddLike(ctx, "n1", "a@x.co"))
	assert.ErrorIs(t, repo.AddLike(ctx, "n1", "a@x.co"), model.ErrAlreadyLiked)
	assert.ErrorIs(t, repo.AddLike(ctx, "ghost", "a@x.co"), model.ErrNomineeNotFound)
	require.NoError(t, repo.AddLike(ctx, "n1", "b@x.co"))

	likes, err := repo.CountLikes(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, 2, likes)

	comment := &model.Comment{ID: uuid.New(), NomineeID: "n1", VoterIdentity: "ann@x.co", Content: "Great"}
	require.NoError(t, repo.CreateComment(ctx, comment))
	assert.ErrorIs(t, repo.CreateComment(ctx, &model.Comment{ID: uuid.New(), NomineeID: "ghost"}), model.ErrNomineeNotFound)

	comments, err := repo.ListComments(ctx, "n1", 10)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "a**@x.co", comments[0].Author)
}
