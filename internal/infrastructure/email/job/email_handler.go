package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"awards-backend/internal/infrastructure/email"
	"awards-backend/internal/shared"
	"awards-backend/internal/shared/utils"
)

// ============================================
// Vote Confirmation Handler
// ============================================

type VoteConfirmationHandler struct {
	emailService email.EmailService
}

func NewVoteConfirmationHandler(emailService email.EmailService) *VoteConfirmationHandler {
	return &VoteConfirmationHandler{emailService: emailService}
}

func (h *VoteConfirmationHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.VoteConfirmationPayload
	if err := utils.UnmarshalTask(task, &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal VoteConfirmation payload")
		return err
	}

	log.Info().
		Str("vote_id", payload.VoteID).
		Msg("Processing vote confirmation email")

	if err := h.emailService.SendEmail(ctx, email.VoteConfirmationEmail(payload)); err != nil {
		log.Error().Err(err).Str("vote_id", payload.VoteID).Msg("Failed to send vote confirmation")
		return fmt.Errorf("send vote confirmation: %w", err)
	}

	log.Info().
		Str("vote_id", payload.VoteID).
		Msg("Vote confirmation sent")
	return nil
}

// ============================================
// Nomination Acknowledgement Handler
// ============================================

type NominationAckHandler struct {
	emailService email.EmailService
}

func NewNominationAckHandler(emailService email.EmailService) *NominationAckHandler {
	return &NominationAckHandler{emailService: emailService}
}

func (h *NominationAckHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.NominationAckPayload
	if err := utils.UnmarshalTask(task, &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal NominationAck payload")
		return err
	}

	if err := h.emailService.SendEmail(ctx, email.NominationAckEmail(payload)); err != nil {
		log.Error().Err(err).Str("nomination_id", payload.NominationID).Msg("Failed to send nomination acknowledgement")
		return fmt.Errorf("send nomination acknowledgement: %w", err)
	}

	log.Info().
		Str("nomination_id", payload.NominationID).
		Msg("Nomination acknowledgement sent")
	return nil
}
