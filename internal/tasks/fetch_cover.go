package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// CoverDownloader fetches an image and returns it as a data URI.
type CoverDownloader interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// CoverStore stores a cover payload on a book.
type CoverStore interface {
	SetCover(ctx context.Context, id string, cover string) (bool, error)
}

// FetchCoverTask downloads a cover image and stores it on a book.
type FetchCoverTask struct {
	BookID string `json:"book_id"`
	URL    string `json:"url"`
}

// Config returns the queue configuration for cover downloads.
func (t FetchCoverTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "fetch_cover",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// FetchCoverProcessor creates a processor function for FetchCoverTask.
func FetchCoverProcessor(downloader CoverDownloader, store CoverStore) backlite.QueueProcessor[FetchCoverTask] {
	return func(ctx context.Context, task FetchCoverTask) error {
		if downloader == nil || store == nil {
			return fmt.Errorf("cover fetching not configured")
		}

		cover, err := downloader.Fetch(ctx, task.URL)
		if err != nil {
			return fmt.Errorf("fetch cover for book %s: %w", task.BookID, err)
		}

		found, err := store.SetCover(ctx, task.BookID, cover)
		if err != nil {
			return fmt.Errorf("store cover for book %s: %w", task.BookID, err)
		}
		if !found {
			// Deleted while the task was queued.
			log.Printf("[TASK] Book %s no longer exists, dropping cover", task.BookID)
			return nil
		}

		log.Printf("[TASK] Stored cover for book %s (%d bytes encoded)", task.BookID, len(cover))
		return nil
	}
}

// NewFetchCoverQueue creates a backlite queue for cover downloads.
func NewFetchCoverQueue(downloader CoverDownloader, store CoverStore) backlite.Queue {
	return backlite.NewQueue(FetchCoverProcessor(downloader, store))
}
