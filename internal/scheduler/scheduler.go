// Package scheduler runs background maintenance tasks.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"lavka/internal/infrastructure/storage/jsonstore"
	"lavka/pkg/logger"
)

// Scheduler manages scheduled maintenance tasks.
type Scheduler struct {
	cron  *cron.Cron
	store *jsonstore.Store
	spec  string
	log   *logger.Logger
}

// New creates a scheduler. spec is a standard 5-field cron expression
// for the backup retention sweep.
func New(store *jsonstore.Store, spec string, log *logger.Logger) *Scheduler {
	if log == nil {
		log = logger.Default()
	}
	log = log.WithComponent("scheduler")

	return &Scheduler{
		cron:  cron.New(),
		store: store,
		spec:  spec,
		log:   log,
	}
}

// Start registers the tasks and starts the cron loop.
func (s *Scheduler) Start() {
	s.log.Infow("starting scheduler", "cleanup_cron", s.spec)

	if _, err := s.cron.AddFunc(s.spec, s.cleanupBackups); err != nil {
		s.log.Errorw("failed to schedule backup cleanup", "error", err)
	}

	s.cron.Start()
}

// Stop stops the cron loop. Running tasks finish on their own.
func (s *Scheduler) Stop() {
	s.log.Infow("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) cleanupBackups() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	ctx = logger.WithLogger(ctx, s.log)

	if err := s.store.CleanupOldBackups(ctx); err != nil {
		s.log.Errorw("backup cleanup failed", "error", err)
		return
	}
	s.log.Infow("backup cleanup completed")
}
