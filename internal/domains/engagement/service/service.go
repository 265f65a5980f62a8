package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	catmodel "awards-backend/internal/domains/category/model"
	"awards-backend/internal/domains/engagement/model"
	"awards-backend/internal/domains/engagement/repository"
	"awards-backend/internal/shared/identity"
	"awards-backend/pkg/logger"
	"awards-backend/pkg/metrics"
)

type engagementService struct {
	repo     repository.EngagementRepository
	nominees NomineeGetter
}

func NewEngagementService(repo repository.EngagementRepository, nominees NomineeGetter) ServiceInterface {
	return &engagementService{repo: repo, nominees: nominees}
}

func (s *engagementService) NomineeDetail(ctx context.Context, nomineeID string) (*model.NomineeDetail, error) {
	nominee, err := s.nominees.GetNominee(ctx, nomineeID)
	if err != nil {
		return nil, mapNomineeError(err, nomineeID)
	}

	likes, err := s.repo.CountLikes(ctx, nomineeID)
	if err != nil {
		return nil, model.NewStorageUnavailableError(err)
	}
	comments, err := s.repo.ListComments(ctx, nomineeID, model.DefaultCommentsLimit)
	if err != nil {
		return nil, model.NewStorageUnavailableError(err)
	}

	return &model.NomineeDetail{Nominee: *nominee, Likes: likes, Comments: comments}, nil
}

// =====================================================
// COMMENTS
// =====================================================

func (s *engagementService) AddComment(ctx context.Context, voter identity.Voter, nomineeID string, req model.CreateCommentRequest) (*model.Comment, error) {
	// Step 1: Validate
	if voter.Key == "" {
		return nil, model.NewInvalidInputError(identity.ErrMissingIdentity)
	}
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidInputError(err)
	}

	// Step 2: Insert; the foreign key rejects unknown nominees
	comment := &model.Comment{
		ID:            uuid.New(),
		NomineeID:     nomineeID,
		VoterIdentity: voter.Key,
		Author:        model.MaskIdentity(voter.Key),
		Content:       req.Content,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		if errors.Is(err, model.ErrNomineeNotFound) {
			return nil, model.NewNomineeNotFoundError(nomineeID)
		}
		return nil, model.NewStorageUnavailableError(err)
	}

	logger.Info("Comment added", map[string]interface{}{"nominee_id": nomineeID, "comment_id": comment.ID.String()})
	return comment, nil
}

func (s *engagementService) ListComments(ctx context.Context, nomineeID string, limit int) ([]model.Comment, error) {
	if limit <= 0 {
		limit = model.DefaultCommentsLimit
	}
	if limit > model.MaxCommentsLimit {
		limit = model.MaxCommentsLimit
	}

	comments, err := s.repo.ListComments(ctx, nomineeID, limit)
	if err != nil {
		return nil, model.NewStorageUnavailableError(err)
	}
	return comments, nil
}

// =====================================================
// LIKES
// =====================================================

func (s *engagementService) Like(ctx context.Context, voter identity.Voter, nomineeID string) (*model.LikeResult, error) {
	if voter.Key == "" {
		return nil, model.NewInvalidInputError(identity.ErrMissingIdentity)
	}

	err := s.repo.AddLike(ctx, nomineeID, voter.Key)
	switch {
	case err == nil:
		metrics.RecordLike("accepted")
	case errors.Is(err, model.ErrAlreadyLiked):
		metrics.RecordLike("duplicate")
		return nil, model.NewAlreadyLikedError()
	case errors.Is(err, model.ErrNomineeNotFound):
		return nil, model.NewNomineeNotFoundError(nomineeID)
	default:
		metrics.RecordLike("unavailable")
		return nil, model.NewStorageUnavailableError(err)
	}

	count, err := s.repo.CountLikes(ctx, nomineeID)
	if err != nil {
		return nil, model.NewStorageUnavailableError(err)
	}
	return &model.LikeResult{NomineeID: nomineeID, Likes: count}, nil
}

func mapNomineeError(err error, nomineeID string) error {
	if errors.Is(err, catmodel.ErrNomineeNotFound) {
		return model.NewNomineeNotFoundError(nomineeID)
	}
	return model.NewStorageUnavailableError(err)
}
