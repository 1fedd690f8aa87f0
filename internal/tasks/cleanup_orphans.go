package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// OrphanCleaner deletes rows no longer referenced by any book.
type OrphanCleaner interface {
	DeleteOrphans() (int64, error)
}

// CleanupOrphanCatalogTask removes people with no author link and no user
// account, and themes no book links to.
type CleanupOrphanCatalogTask struct{}

// Config returns the queue configuration for cleanup tasks.
func (t CleanupOrphanCatalogTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_orphan_catalog",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CleanupOrphanCatalogProcessor creates a processor function for
// CleanupOrphanCatalogTask.
func CleanupOrphanCatalogProcessor(people, themes OrphanCleaner) backlite.QueueProcessor[CleanupOrphanCatalogTask] {
	return func(ctx context.Context, task CleanupOrphanCatalogTask) error {
		if people == nil || themes == nil {
			return fmt.Errorf("orphan cleaners not configured")
		}

		deletedPeople, err := people.DeleteOrphans()
		if err != nil {
			return fmt.Errorf("cleanup orphan people: %w", err)
		}

		deletedThemes, err := themes.DeleteOrphans()
		if err != nil {
			return fmt.Errorf("cleanup orphan themes: %w", err)
		}

		log.Printf("[TASK] Cleaned up %d orphan people and %d orphan themes", deletedPeople, deletedThemes)
		return nil
	}
}

// NewCleanupOrphanCatalogQueue creates a backlite queue for catalog cleanup
// tasks.
func NewCleanupOrphanCatalogQueue(people, themes OrphanCleaner) backlite.Queue {
	return backlite.NewQueue(CleanupOrphanCatalogProcessor(people, themes))
}
