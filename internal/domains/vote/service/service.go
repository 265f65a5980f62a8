package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	catmodel "awards-backend/internal/domains/category/model"
	"awards-backend/internal/domains/vote/model"
	"awards-backend/internal/domains/vote/repository"
	"awards-backend/internal/infrastructure/queue"
	"awards-backend/internal/shared"
	"awards-backend/internal/shared/identity"
	"awards-backend/internal/shared/utils"
	"awards-backend/pkg/cache"
	"awards-backend/pkg/logger"
	"awards-backend/pkg/metrics"
)

type Config struct {
	TallyCacheTTL    time.Duration
	ReconcileTimeout time.Duration
}

type voteService struct {
	repo       repository.VoteRepository
	categories SnapshotProvider
	cache      cache.Cache
	enqueuer   queue.Enqueuer
	cfg        Config
	now        func() time.Time

	exportPageSize int
}

// NewVoteService wires the vote flow. enqueuer may be nil, in which case
// no confirmation emails are sent.
func NewVoteService(
	repo repository.VoteRepository,
	categories SnapshotProvider,
	cache cache.Cache,
	enqueuer queue.Enqueuer,
	cfg Config,
) ServiceInterface {
	if cfg.TallyCacheTTL <= 0 {
		cfg.TallyCacheTTL = model.DefaultTallyCacheTTL
	}
	if cfg.ReconcileTimeout <= 0 {
		cfg.ReconcileTimeout = model.DefaultReconcileTimeout
	}
	return &voteService{
		repo:       repo,
		categories: categories,
		cache:      cache,
		enqueuer:   enqueuer,
		cfg:        cfg,
		now:        time.Now,

		exportPageSize: model.ExportPageSize,
	}
}

// =====================================================
// SUBMIT
// =====================================================

func (s *voteService) Submit(ctx context.Context, voter identity.Voter, selections map[string]string) (*SubmitResult, error) {
	result, err := s.submit(ctx, voter, selections)
	metrics.RecordVoteSubmission(submissionOutcome(result, err))
	return result, err
}

func (s *voteService) submit(ctx context.Context, voter identity.Voter, selections map[string]string) (*SubmitResult, error) {
	// Step 1: Identity
	if voter.Key == "" {
		return nil, model.NewInvalidIdentityError(identity.ErrMissingIdentity)
	}

	// Step 2: Snapshot of votable categories
	snapshot, err := s.categories.Snapshot(ctx)
	if err != nil {
		return nil, model.NewStorageUnavailableError(err)
	}

	// Step 3: Validate and normalize the ballot
	normalized, err := model.NewBallot(snapshot).Normalize(selections)
	if err != nil {
		return nil, model.NewValidationError(err)
	}

	// Step 4: Advisory duplicate check. The insert below is authoritative;
	// this only lets a returning voter skip straight to their record.
	existing, err := s.repo.GetByVoter(ctx, voter.Key)
	switch {
	case err == nil:
		return nil, model.NewDuplicateVoteError(existing)
	case !errors.Is(err, model.ErrVoteNotFound):
		return nil, model.NewStorageUnavailableError(err)
	}

	// Step 5: Insert; the unique constraint decides
	vote := &model.Vote{
		ID:             uuid.New(),
		VoterIdentity:  voter.Key,
		IdentityScheme: string(voter.Scheme),
		Selections:     normalized,
	}
	result := &SubmitResult{Vote: vote}

	if err := s.repo.Insert(ctx, vote); err != nil {
		switch {
		case errors.Is(err, model.ErrDuplicateVote):
			return nil, model.NewDuplicateVoteError(nil)
		case errors.Is(err, model.ErrWriteOutcomeUnknown):
			result, err = s.reconcile(ctx, vote, err)
			if err != nil {
				return nil, err
			}
		default:
			return nil, model.NewStorageUnavailableError(err)
		}
	}

	logger.Info("Vote recorded", map[string]interface{}{
		"vote_id":    result.Vote.ID.String(),
		"scheme":     result.Vote.IdentityScheme,
		"categories": len(result.Vote.Selections),
		"reconciled": result.Reconciled,
	})

	// Step 6: Confirmation email (best effort)
	if voter.Scheme == identity.SchemeEmail {
		s.enqueueConfirmation(ctx, result.Vote, snapshot)
	}

	return result, nil
}

// reconcile resolves an insert whose outcome is unknown by reading the
// voter's row back. It never retries the write.
func (s *voteService) reconcile(ctx context.Context, vote *model.Vote, writeErr error) (*SubmitResult, error) {
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ReconcileTimeout)
	defer cancel()

	stored, err := s.repo.GetByVoter(rctx, vote.VoterIdentity)
	switch {
	case err == nil && stored.ID == vote.ID:
		logger.Warn("Ambiguous vote write confirmed by read-back", map[string]interface{}{
			"vote_id": vote.ID.String(),
		})
		return &SubmitResult{Vote: stored, Reconciled: true}, nil
	case err == nil:
		return nil, model.NewDuplicateVoteError(stored)
	case errors.Is(err, model.ErrVoteNotFound):
		return nil, model.NewStorageUnavailableError(writeErr)
	default:
		logger.ErrorWithFields("Failed to reconcile ambiguous vote write", err, map[string]interface{}{
			"vote_id": vote.ID.String(),
		})
		return nil, model.NewStorageUnavailableError(errors.Join(writeErr, err))
	}
}

func (s *voteService) enqueueConfirmation(ctx context.Context, vote *model.Vote, snapshot *catmodel.Snapshot) {
	if s.enqueuer == nil {
		return
	}

	task, err := utils.NewJSONTask(shared.TypeSendVoteConfirmation, shared.VoteConfirmationPayload{
		VoteID:      vote.ID.String(),
		Email:       vote.VoterIdentity,
		Selections:  selectionLines(vote.Selections, snapshot),
		SubmittedAt: vote.CreatedAt,
	})
	if err == nil {
		_, err = s.enqueuer.EnqueueContext(ctx, task,
			asynq.Queue(shared.QueueDefault),
			asynq.MaxRetry(5),
			asynq.TaskID("vote-confirmation:"+vote.ID.String()),
		)
	}
	metrics.RecordJobEnqueued(shared.TypeSendVoteConfirmation, err)
	if err != nil {
		logger.ErrorWithFields("Failed to enqueue vote confirmation", err, map[string]interface{}{
			"vote_id": vote.ID.String(),
		})
	}
}

// =====================================================
// STATUS
// =====================================================

func (s *voteService) Status(ctx context.Context, voter identity.Voter) (*model.VoteStatusResponse, error) {
	if voter.Key == "" {
		return nil, model.NewInvalidIdentityError(identity.ErrMissingIdentity)
	}

	vote, err := s.repo.GetByVoter(ctx, voter.Key)
	if errors.Is(err, model.ErrVoteNotFound) {
		return &model.VoteStatusResponse{HasVoted: false}, nil
	}
	if err != nil {
		return nil, model.NewStorageUnavailableError(err)
	}
	return &model.VoteStatusResponse{HasVoted: true, VotedAt: &vote.CreatedAt}, nil
}

func (s *voteService) MyVote(ctx context.Context, voter identity.Voter) (*model.MyVoteResponse, error) {
	if voter.Key == "" {
		return nil, model.NewInvalidIdentityError(identity.ErrMissingIdentity)
	}

	// Step 1: Load the stored ballot
	vote, err := s.repo.GetByVoter(ctx, voter.Key)
	if errors.Is(err, model.ErrVoteNotFound) {
		return nil, model.NewVoteNotFoundError()
	}
	if err != nil {
		return nil, model.NewStorageUnavailableError(err)
	}

	// Step 2: Resolve display names
	snapshot, err := s.categories.Snapshot(ctx)
	if err != nil {
		return nil, model.NewStorageUnavailableError(err)
	}

	return &model.MyVoteResponse{
		VoteID:      vote.ID,
		Selections:  vote.Selections,
		Lines:       selectionLines(vote.Selections, snapshot),
		SubmittedAt: vote.CreatedAt,
	}, nil
}

func (s *voteService) Results(ctx context.Context) (*model.Tally, error) {
	return s.Tally(ctx, false)
}

// =====================================================
// ADMIN
// =====================================================

func (s *voteService) Tally(ctx context.Context, fresh bool) (*model.Tally, error) {
	if !fresh {
		var cached model.Tally
		found, err := s.cache.Get(ctx, model.TallyCacheKey, &cached)
		if err != nil {
			logger.Error("Failed to read tally from cache", err)
		}
		metrics.RecordCacheLookup("tally", found)
		if found {
			return &cached, nil
		}
	}
	return s.RefreshTally(ctx)
}

// RefreshTally recomputes the tally from storage and stores it in the cache
func (s *voteService) RefreshTally(ctx context.Context) (*model.Tally, error) {
	snapshot, err := s.categories.Snapshot(ctx)
	if err != nil {
		return nil, model.NewStorageUnavailableError(err)
	}
	rows, err := s.repo.Tally(ctx)
	if err != nil {
		return nil, model.NewStorageUnavailableError(err)
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, model.NewStorageUnavailableError(err)
	}

	tally := buildTally(snapshot, rows, total, s.now().UTC())

	if err := s.cache.Set(ctx, model.TallyCacheKey, tally, s.cfg.TallyCacheTTL); err != nil {
		logger.Error("Failed to cache tally", err)
	}
	return tally, nil
}

func (s *voteService) ListVoters(ctx context.Context, req model.ListVotersRequest) ([]model.Vote, int, error) {
	req.Normalize()

	votes, err := s.repo.List(ctx, req.Offset(), req.Limit)
	if err != nil {
		return nil, 0, model.NewStorageUnavailableError(err)
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, model.NewStorageUnavailableError(err)
	}
	return votes, total, nil
}

// =====================================================
// HELPERS
// =====================================================

func submissionOutcome(result *SubmitResult, err error) string {
	if err == nil {
		if result.Reconciled {
			return metrics.OutcomeReconciled
		}
		return metrics.OutcomeAccepted
	}
	var voteErr *model.VoteError
	if errors.As(err, &voteErr) {
		switch voteErr.Code {
		case model.ErrCodeDuplicateVote:
			return metrics.OutcomeDuplicate
		case model.ErrCodeValidation, model.ErrCodeInvalidIdentity:
			return metrics.OutcomeInvalid
		}
	}
	return metrics.OutcomeUnavailable
}

// selectionLines renders selections with display names, in ballot order
func selectionLines(selections model.Selections, snapshot *catmodel.Snapshot) []shared.SelectionLine {
	lines := make([]shared.SelectionLine, 0, len(selections))
	seen := make(map[string]bool, len(selections))
	names := snapshot.NomineeNames()

	for _, c := range snapshot.Categories {
		nomineeID, ok := selections[c.ID]
		if !ok {
			continue
		}
		seen[c.ID] = true
		lines = append(lines, shared.SelectionLine{Category: c.Title, Nominee: displayName(names, nomineeID)})
	}

	// categories removed since the vote was cast
	rest := make([]string, 0)
	for categoryID := range selections {
		if !seen[categoryID] {
			rest = append(rest, categoryID)
		}
	}
	sort.Strings(rest)
	for _, categoryID := range rest {
		lines = append(lines, shared.SelectionLine{
			Category: categoryID,
			Nominee:  displayName(names, selections[categoryID]),
		})
	}
	return lines
}

func displayName(names map[string]string, nomineeID string) string {
	if name, ok := names[nomineeID]; ok {
		return name
	}
	return fmt.Sprintf("%s (removed)", nomineeID)
}
