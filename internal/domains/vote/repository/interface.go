package repository

import (
	"context"

	"awards-backend/internal/domains/vote/model"
)

type VoteRepository interface {
	// Insert records a vote. The voter_identity unique constraint makes this
	// the atomic check-and-write: it returns model.ErrDuplicateVote on
	// conflict, model.ErrStorageUnavailable when nothing was written, and
	// model.ErrWriteOutcomeUnknown when the write may have committed.
	Insert(ctx context.Context, vote *model.Vote) error

	// GetByVoter returns model.ErrVoteNotFound when the voter has not voted
	GetByVoter(ctx context.Context, voterIdentity string) (*model.Vote, error)

	Tally(ctx context.Context) ([]model.TallyRow, error)
	Count(ctx context.Context) (int, error)

	// List returns votes newest first
	List(ctx context.Context, offset, limit int) ([]model.Vote, error)

	// ListBefore returns up to limit votes strictly older than cursor, newest
	// first. A nil cursor starts from the newest vote. Rows inserted while
	// paging sort ahead of the cursor and are never returned twice.
	ListBefore(ctx context.Context, cursor *model.VoteCursor, limit int) ([]model.Vote, error)
}
