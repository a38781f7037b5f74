package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// DefaultSearchRetentionDays is used when a prune task carries no retention.
const DefaultSearchRetentionDays = 90

// SearchPruner deletes logged searches.
type SearchPruner interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// PruneSearchesTask removes searches older than the retention period.
type PruneSearchesTask struct {
	RetentionDays int `json:"retention_days"`
}

// Config returns the queue configuration for search pruning.
func (t PruneSearchesTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "prune_searches",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// PruneSearchesProcessor creates a processor function for PruneSearchesTask.
func PruneSearchesProcessor(pruner SearchPruner) backlite.QueueProcessor[PruneSearchesTask] {
	return func(ctx context.Context, task PruneSearchesTask) error {
		if pruner == nil {
			return fmt.Errorf("search pruner not configured")
		}

		retentionDays := task.RetentionDays
		if retentionDays <= 0 {
			retentionDays = DefaultSearchRetentionDays
		}
		cutoff := time.Now().AddDate(0, 0, -retentionDays)

		deleted, err := pruner.DeleteOlderThan(ctx, cutoff)
		if err != nil {
			return fmt.Errorf("prune searches: %w", err)
		}

		remaining, err := pruner.Count(ctx)
		if err != nil {
			log.Printf("[TASK] Pruned %d searches older than %d days (count failed: %v)", deleted, retentionDays, err)
			return nil
		}
		log.Printf("[TASK] Pruned %d searches older than %d days, %d remain", deleted, retentionDays, remaining)
		return nil
	}
}

// NewPruneSearchesQueue creates a backlite queue for search pruning.
func NewPruneSearchesQueue(pruner SearchPruner) backlite.Queue {
	return backlite.NewQueue(PruneSearchesProcessor(pruner))
}
