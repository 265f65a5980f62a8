package queue

import (
	"time"

	"github.com/hibiken/asynq"

	"awards-backend/internal/shared"
	"awards-backend/internal/shared/utils"
	"awards-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	tallyCron string
}

func NewScheduler(redisOpt asynq.RedisClientOpt, tallyCron string) *Scheduler {
	scheduler := asynq.NewScheduler(
		redisOpt,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		tallyCron: tallyCron,
	}
}

func (s *Scheduler) RegisterJobs() error {
	return s.registerRefreshTallyJob()
}

// ================================================
// Refresh Tally Cache
// ================================================
func (s *Scheduler) registerRefreshTallyJob() error {
	if s.tallyCron == "" {
		logger.Info("Tally refresh disabled", map[string]interface{}{})
		return nil
	}

	task, err := utils.NewJSONTask(shared.TypeRefreshTally, shared.RefreshTallyPayload{})
	if err != nil {
		return err
	}

	_, err = s.scheduler.Register(
		s.tallyCron,
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(time.Minute),
		asynq.Unique(time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register RefreshTally job", err)
		return err
	}

	logger.Info("Registered RefreshTally", map[string]interface{}{"cron": s.tallyCron})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
