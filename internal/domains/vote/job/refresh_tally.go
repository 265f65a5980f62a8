package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"awards-backend/internal/domains/vote/model"
	"awards-backend/internal/shared"
	"awards-backend/internal/shared/utils"
)

type tallyRefresher interface {
	RefreshTally(ctx context.Context) (*model.Tally, error)
}

// RefreshTallyHandler keeps the admin tally cache warm
type RefreshTallyHandler struct {
	votes tallyRefresher
}

func NewRefreshTallyHandler(votes tallyRefresher) *RefreshTallyHandler {
	return &RefreshTallyHandler{votes: votes}
}

func (h *RefreshTallyHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.RefreshTallyPayload
	if err := utils.UnmarshalTask(task, &payload); err != nil {
		return err
	}

	tally, err := h.votes.RefreshTally(ctx)
	if err != nil {
		return fmt.Errorf("refresh tally: %w", err)
	}

	log.Info().
		Int("total_ballots", tally.TotalBallots).
		Int("categories", len(tally.Categories)).
		Msg("Tally cache refreshed")
	return nil
}
