// Package scheduler runs the periodic photo refresh. The actual work is
// done by the task queue; the scheduler only enqueues the fan-out task on
// its cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/cognicard/cognicard/internal/tasks"
)

// PhotoSyncScheduler manages the periodic refresh of cached contact photos.
type PhotoSyncScheduler struct {
	enqueuer tasks.TaskEnqueuer
	enabled  bool
	schedule string

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewPhotoSyncScheduler creates a new scheduler instance.
func NewPhotoSyncScheduler(enqueuer tasks.TaskEnqueuer, enabled bool, schedule string) *PhotoSyncScheduler {
	return &PhotoSyncScheduler{
		enqueuer: enqueuer,
		enabled:  enabled,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if photo sync is enabled.
func (s *PhotoSyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.enabled {
		log.Printf("Photo sync scheduler: disabled")
		return nil
	}

	if s.enqueuer == nil {
		log.Printf("Photo sync scheduler: task queue not configured, skipping")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runSync()
	})
	if err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Photo sync scheduler: started with schedule '%s'", s.schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler.
func (s *PhotoSyncScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	// Stop accepting new jobs and wait for running jobs to complete
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Photo sync scheduler: stopped")
}

// RunNow triggers an immediate refresh.
func (s *PhotoSyncScheduler) RunNow() error {
	if s.enqueuer == nil {
		return fmt.Errorf("task queue not configured")
	}
	_, err := s.enqueuer.Add(tasks.RefreshAllPhotosTask{}).Save()
	return err
}

// IsRunning returns whether the scheduler is active.
func (s *PhotoSyncScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next refresh will occur.
func (s *PhotoSyncScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	entries := s.cron.Entries()
	for _, entry := range entries {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// runSync enqueues the fan-out task.
func (s *PhotoSyncScheduler) runSync() {
	log.Printf("Photo sync: enqueueing bulk photo refresh")
	if _, err := s.enqueuer.Add(tasks.RefreshAllPhotosTask{}).Save(); err != nil {
		log.Printf("Photo sync: failed to enqueue refresh: %v", err)
	}
}
