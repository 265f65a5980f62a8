package main

import (
	"github.com/hibiken/asynq"

	voteJob "awards-backend/internal/domains/vote/job"
	"awards-backend/internal/infrastructure/email"
	emailjob "awards-backend/internal/infrastructure/email/job"
	"awards-backend/internal/shared"
	"awards-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	// Email handlers
	voteConfirmation *emailjob.VoteConfirmationHandler
	nominationAck    *emailjob.NominationAckHandler

	// Maintenance handlers
	refreshTally *voteJob.RefreshTallyHandler
}

func initializeHandlers(c *container.Container, cfg *workerConfig) *HandlerRegistry {
	emailSvc := email.NewSMTPEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom)

	return &HandlerRegistry{
		voteConfirmation: emailjob.NewVoteConfirmationHandler(emailSvc),
		nominationAck:    emailjob.NewNominationAckHandler(emailSvc),
		refreshTally:     voteJob.NewRefreshTallyHandler(c.VoteService),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeSendVoteConfirmation, h.voteConfirmation.ProcessTask)
	mux.HandleFunc(shared.TypeSendNominationAck, h.nominationAck.ProcessTask)
	mux.HandleFunc(shared.TypeRefreshTally, h.refreshTally.ProcessTask)
}
