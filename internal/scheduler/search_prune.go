package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// PruneEnqueuer queues a search-log pruning run.
type PruneEnqueuer interface {
	EnqueueSearchPrune(ctx context.Context, retentionDays int) error
}

// SearchPruneScheduler periodically queues removal of old searches.
type SearchPruneScheduler struct {
	enqueuer      PruneEnqueuer
	schedule      string
	retentionDays int

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewSearchPruneScheduler creates a new scheduler instance. An empty schedule
// disables it.
func NewSearchPruneScheduler(enqueuer PruneEnqueuer, schedule string, retentionDays int) *SearchPruneScheduler {
	return &SearchPruneScheduler{
		enqueuer:      enqueuer,
		schedule:      schedule,
		retentionDays: retentionDays,
		cron:          cron.New(cron.WithParser(parser)),
	}
}

// Start begins the scheduler if a schedule is configured.
func (s *SearchPruneScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if s.schedule == "" || s.enqueuer == nil {
		log.Printf("[SCHEDULER] Search prune: disabled")
		return nil
	}

	if err := ValidateSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, s.runPrune)
	if err != nil {
		return fmt.Errorf("failed to schedule prune job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	nextRun, _ := NextRunTime(s.schedule, time.Now())
	log.Printf("[SCHEDULER] Search prune: started with schedule '%s' (%s), retention %d days. Next run: %v",
		s.schedule, Describe(s.schedule), s.retentionDays, nextRun)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler
func (s *SearchPruneScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	// Stop accepting new jobs and wait for running jobs to complete
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.cron.Remove(s.entryID)
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("[SCHEDULER] Search prune: stopped")
}

// RunNow queues a prune immediately.
func (s *SearchPruneScheduler) RunNow() {
	s.runPrune()
}

// IsRunning returns whether the scheduler is active
func (s *SearchPruneScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns when the next prune will be queued, or nil when stopped.
func (s *SearchPruneScheduler) NextRun() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *SearchPruneScheduler) runPrune() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.enqueuer.EnqueueSearchPrune(ctx, s.retentionDays); err != nil {
		log.Printf("[SCHEDULER] Search prune: failed to enqueue: %v", err)
		return
	}
	log.Printf("[SCHEDULER] Search prune: queued (retention %d days)", s.retentionDays)
}
