package main

import (
	"github.com/hibiken/asynq"

	"awards-backend/internal/config"
	"awards-backend/pkg/logger"
)

const defaultHealthPort = "9999"

// workerConfig is the subset of the app config the worker process needs
type workerConfig struct {
	RedisOpt    asynq.RedisClientOpt
	Concurrency int
	TallyCron   string
	SMTPHost    string
	SMTPPort    string
	SMTPFrom    string
	HealthPort  string
}

func loadConfig(cfg *config.Config) *workerConfig {
	wc := &workerConfig{
		RedisOpt: asynq.RedisClientOpt{
			Addr:     cfg.Redis.Host,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		Concurrency: cfg.Queue.Concurrency,
		TallyCron:   cfg.Queue.TallyRefreshCron,
		SMTPHost:    cfg.SMTP.Host,
		SMTPPort:    cfg.SMTP.Port,
		SMTPFrom:    cfg.SMTP.From,
		HealthPort:  getEnv("WORKER_HEALTH_PORT", defaultHealthPort),
	}
	if wc.Concurrency <= 0 {
		wc.Concurrency = 10
	}

	logger.Info("Worker config loaded", map[string]interface{}{
		"redis":       wc.RedisOpt.Addr,
		"smtp":        wc.SMTPHost + ":" + wc.SMTPPort,
		"concurrency": wc.Concurrency,
		"tally_cron":  wc.TallyCron,
	})
	return wc
}
