package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"awards-backend/internal/domains/nomination/model"
	"awards-backend/internal/domains/nomination/repository"
	"awards-backend/internal/infrastructure/queue"
	"awards-backend/internal/shared"
	"awards-backend/internal/shared/utils"
	"awards-backend/pkg/logger"
	"awards-backend/pkg/metrics"
)

type nominationService struct {
	repo       repository.NominationRepository
	categories SnapshotProvider
	enqueuer   queue.Enqueuer
}

func NewNominationService(
	repo repository.NominationRepository,
	categories SnapshotProvider,
	enqueuer queue.Enqueuer,
) ServiceInterface {
	return &nominationService{repo: repo, categories: categories, enqueuer: enqueuer}
}

func (s *nominationService) Create(ctx context.Context, req model.CreateNominationRequest) (*model.Nomination, error) {
	// Step 1: Validate
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidInputError(err)
	}

	// Step 2: Category must exist
	snapshot, err := s.categories.Snapshot(ctx)
	if err != nil {
		return nil, model.NewStorageUnavailableError(err)
	}
	category, ok := snapshot.FindCategory(req.CategoryID)
	if !ok {
		return nil, model.NewCategoryNotFoundError(req.CategoryID)
	}

	// Step 3: Insert
	nomination := &model.Nomination{
		ID:             uuid.New(),
		NomineeName:    req.NomineeName,
		NomineeOrg:     req.NomineeOrg,
		CategoryID:     req.CategoryID,
		Reason:         req.Reason,
		NominatorName:  req.NominatorName,
		NominatorEmail: req.NominatorEmail,
	}
	if err := s.repo.Create(ctx, nomination); err != nil {
		// category deleted between snapshot and insert
		if errors.Is(err, model.ErrCategoryNotFound) {
			return nil, model.NewCategoryNotFoundError(req.CategoryID)
		}
		return nil, model.NewStorageUnavailableError(err)
	}
	metrics.RecordNomination()

	logger.Info("Nomination received", map[string]interface{}{
		"nomination_id": nomination.ID.String(),
		"category_id":   nomination.CategoryID,
	})

	// Step 4: Acknowledge (best effort)
	s.enqueueAck(ctx, nomination, category.Title)

	return nomination, nil
}

func (s *nominationService) enqueueAck(ctx context.Context, n *model.Nomination, categoryTitle string) {
	if s.enqueuer == nil {
		return
	}

	task, err := utils.NewJSONTask(shared.TypeSendNominationAck, shared.NominationAckPayload{
		NominationID:   n.ID.String(),
		NominatorName:  n.NominatorName,
		NominatorEmail: n.NominatorEmail,
		NomineeName:    n.NomineeName,
		CategoryTitle:  categoryTitle,
	})
	if err == nil {
		_, err = s.enqueuer.EnqueueContext(ctx, task,
			asynq.Queue(shared.QueueLow),
			asynq.MaxRetry(5),
			asynq.TaskID("nomination-ack:"+n.ID.String()),
		)
	}
	metrics.RecordJobEnqueued(shared.TypeSendNominationAck, err)
	if err != nil {
		logger.ErrorWithFields("Failed to enqueue nomination acknowledgement", err, map[string]interface{}{
			"nomination_id": n.ID.String(),
		})
	}
}

func (s *nominationService) List(ctx context.Context, req model.ListNominationsRequest) ([]model.Nomination, int, error) {
	req.Normalize()

	nominations, total, err := s.repo.List(ctx, req.CategoryID, req.Offset(), req.Limit)
	if err != nil {
		return nil, 0, model.NewStorageUnavailableError(err)
	}
	return nominations, total, nil
}
