package service

import (
	"context"

	catmodel "awards-backend/internal/domains/category/model"
	"awards-backend/internal/domains/engagement/model"
	"awards-backend/internal/shared/identity"
)

// NomineeGetter looks nominees up in the category domain
type NomineeGetter interface {
	GetNominee(ctx context.Context, id string) (*catmodel.Nominee, error)
}

type ServiceInterface interface {
	NomineeDetail(ctx context.Context, nomineeID string) (*model.NomineeDetail, error)

	AddComment(ctx context.Context, voter identity.Voter, nomineeID string, req model.CreateCommentRequest) (*model.Comment, error)
	ListComments(ctx context.Context, nomineeID string, limit int) ([]model.Comment, error)

	// Like records one like per (nominee, voter) and returns the new count
	Like(ctx context.Context, voter identity.Voter, nomineeID string) (*model.LikeResult, error)
}
