// Package scheduler runs periodic maintenance via cron schedules.
package scheduler

import (
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/livraria-app/livraria/internal/config"
	"github.com/livraria-app/livraria/internal/tasks"
)

// CleanupScheduler enqueues orphan cleanup runs on a cron schedule.
type CleanupScheduler struct {
	taskClient *tasks.Client
	config     config.Cleanup

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.Mutex
	isRunning bool
}

// NewCleanupScheduler creates a new scheduler instance.
func NewCleanupScheduler(taskClient *tasks.Client, cfg config.Cleanup) *CleanupScheduler {
	return &CleanupScheduler{
		taskClient: taskClient,
		config:     cfg,
		cron:       cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if cleanup is enabled.
func (s *CleanupScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.config.Enabled {
		log.Printf("Orphan cleanup scheduler: disabled")
		return nil
	}

	if s.taskClient == nil {
		log.Printf("Orphan cleanup scheduler: task queue not available, skipping")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.config.Schedule, func() {
		if _, err := s.taskClient.Add(tasks.CleanupOrphanCatalogTask{}).Save(); err != nil {
			log.Printf("Orphan cleanup scheduler: failed to enqueue: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.config.Schedule, err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	log.Printf("Orphan cleanup scheduler: started with schedule '%s'", s.config.Schedule)
	return nil
}

// Stop halts the scheduler. Already-enqueued tasks are unaffected.
func (s *CleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	s.cron.Remove(s.entryID)
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.isRunning = false

	log.Printf("Orphan cleanup scheduler: stopped")
}
