package repository

import (
	"context"

	"awards-backend/internal/domains/engagement/model"
)

type EngagementRepository interface {
	// CreateComment returns model.ErrNomineeNotFound when the nominee has no row
	CreateComment(ctx context.Context, comment *model.Comment) error
	// ListComments returns newest first
	ListComments(ctx context.Context, nomineeID string, limit int) ([]model.Comment, error)

	// AddLike returns model.ErrAlreadyLiked on a repeat (nominee, identity) pair
	AddLike(ctx context.Context, nomineeID, voterIdentity string) error
	CountLikes(ctx context.Context, nomineeID string) (int, error)
}
