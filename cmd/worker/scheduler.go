package main

import (
	"github.com/rs/zerolog/log"

	"awards-backend/internal/infrastructure/queue"
)

// asynqScheduler wraps queue.Scheduler with startup logging
type asynqScheduler struct {
	*queue.Scheduler
}

func setupScheduler(cfg *workerConfig) *asynqScheduler {
	scheduler := queue.NewScheduler(cfg.RedisOpt, cfg.TallyCron)

	if err := scheduler.RegisterJobs(); err != nil {
		log.Fatal().Err(err).Msg("[Scheduler] Failed to register")
	}

	go func() {
		log.Info().Msg("[Scheduler] Starting...")
		if err := scheduler.Start(); err != nil {
			log.Fatal().Err(err).Msg("[Scheduler] Failed")
		}
	}()

	return &asynqScheduler{Scheduler: scheduler}
}

func (s *asynqScheduler) Shutdown() {
	log.Info().Msg("[Scheduler] Shutting down...")
	s.Scheduler.Shutdown()
	log.Info().Msg("[Scheduler] Stopped")
}
