package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/cognicard/cognicard/internal/entities"
)

// ContactLister provides the contact set for fan-out tasks.
type ContactLister interface {
	List() ([]entities.Contact, error)
}

// TaskEnqueuer lets a processor enqueue follow-up tasks.
type TaskEnqueuer interface {
	Add(tasks ...backlite.Task) *backlite.TaskAddOp
}

// RefreshAllPhotosTask fans out one RefreshPhotoTask per stored contact.
// Contacts with embedded photos carry no cacheable URL and are skipped by
// the per-contact processor.
type RefreshAllPhotosTask struct{}

// Config returns the queue configuration for bulk photo refresh tasks.
func (t RefreshAllPhotosTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "refresh_all_photos",
		MaxAttempts: 2,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// RefreshAllPhotosProcessor creates a processor function for
// RefreshAllPhotosTask.
func RefreshAllPhotosProcessor(lister ContactLister, enqueuer TaskEnqueuer) backlite.QueueProcessor[RefreshAllPhotosTask] {
	return func(ctx context.Context, task RefreshAllPhotosTask) error {
		if lister == nil || enqueuer == nil {
			return fmt.Errorf("photo refresh fan-out not configured")
		}

		contacts, err := lister.List()
		if err != nil {
			return fmt.Errorf("list contacts for photo refresh: %w", err)
		}

		enqueued := 0
		for _, contact := range contacts {
			if contact.PhotoURL == "" {
				continue
			}
			op := enqueuer.Add(RefreshPhotoTask{
				ContactID: contact.ID,
				PhotoURL:  contact.PhotoURL,
			}).Ctx(ctx)
			if _, err := op.Save(); err != nil {
				log.Printf("[TASK ERROR] Failed to enqueue photo refresh for contact %s: %v", contact.ID, err)
				continue
			}
			enqueued++
		}

		log.Printf("[TASK] Enqueued photo refresh for %d of %d contacts", enqueued, len(contacts))
		return nil
	}
}

// NewRefreshAllPhotosQueue creates a backlite queue for bulk photo refresh.
func NewRefreshAllPhotosQueue(lister ContactLister, enqueuer TaskEnqueuer) backlite.Queue {
	return backlite.NewQueue(RefreshAllPhotosProcessor(lister, enqueuer))
}
