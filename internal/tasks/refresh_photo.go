package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/cognicard/cognicard/internal/photo"
)

// RefreshPhotoTask re-fetches the cached photo for a single contact.
type RefreshPhotoTask struct {
	ContactID string `json:"contact_id"`
	PhotoURL  string `json:"photo_url"`
}

// Config returns the queue configuration for photo refresh tasks.
func (t RefreshPhotoTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "refresh_photo",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     1 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// RefreshPhotoProcessor creates a processor function for RefreshPhotoTask.
// The stale cache entry is dropped first so the fetch always lands a fresh
// copy.
func RefreshPhotoProcessor(cache *photo.Cache) backlite.QueueProcessor[RefreshPhotoTask] {
	return func(ctx context.Context, task RefreshPhotoTask) error {
		if cache == nil {
			return fmt.Errorf("photo cache not configured")
		}

		if err := cache.InvalidatePhoto(task.ContactID); err != nil {
			return fmt.Errorf("invalidate photo for contact %s: %w", task.ContactID, err)
		}

		path, err := cache.GetPhoto(task.ContactID, task.PhotoURL)
		if err != nil {
			return fmt.Errorf("refresh photo for contact %s: %w", task.ContactID, err)
		}

		if path != "" {
			log.Printf("[TASK] Refreshed photo for contact %s: %s", task.ContactID, path)
		}
		return nil
	}
}

// NewRefreshPhotoQueue creates a backlite queue for photo refresh tasks.
func NewRefreshPhotoQueue(cache *photo.Cache) backlite.Queue {
	return backlite.NewQueue(RefreshPhotoProcessor(cache))
}
